package billing

import (
	"testing"

	"github.com/armonia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFee(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates flat fee", func(t *testing.T) {
		fee, err := NewFee(tenantID, "Administración", valueobject.NewMoneyCOPFromFloat(250000), FeeTypeMonthly, false)

		require.NoError(t, err)
		assert.True(t, fee.Active)
		assert.False(t, fee.PerUnit)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewFee(tenantID, "", valueobject.NewMoneyCOPFromFloat(1000), FeeTypeMonthly, false)
		assert.Error(t, err)
	})

	t.Run("fails with unknown type", func(t *testing.T) {
		_, err := NewFee(tenantID, "Cuota", valueobject.NewMoneyCOPFromFloat(1000), FeeType("WEEKLY"), false)
		assert.Error(t, err)
	})

	t.Run("fails with negative amount", func(t *testing.T) {
		_, err := NewFee(tenantID, "Cuota", valueobject.NewMoneyCOPFromFloat(-1), FeeTypeMonthly, false)
		assert.Error(t, err)
	})
}

func TestFee_AmountFor(t *testing.T) {
	tenantID := uuid.New()

	t.Run("flat fee ignores area", func(t *testing.T) {
		fee, err := NewFee(tenantID, "Administración", valueobject.NewMoneyCOPFromFloat(250000), FeeTypeMonthly, false)
		require.NoError(t, err)

		amount := fee.AmountFor(decimal.NewFromFloat(72.5))

		assert.True(t, amount.Equals(valueobject.NewMoneyCOPFromFloat(250000)))
	})

	t.Run("per-unit fee multiplies rate by area", func(t *testing.T) {
		fee, err := NewFee(tenantID, "Cuota por m²", valueobject.NewMoneyCOPFromFloat(3500), FeeTypeMonthly, true)
		require.NoError(t, err)

		amount := fee.AmountFor(decimal.NewFromFloat(72.5))

		assert.True(t, amount.Equals(valueobject.NewMoneyCOPFromFloat(253750)), "got %s", amount)
	})

	t.Run("per-unit fee with zero area bills zero", func(t *testing.T) {
		fee, err := NewFee(tenantID, "Cuota por m²", valueobject.NewMoneyCOPFromFloat(3500), FeeTypeMonthly, true)
		require.NoError(t, err)

		assert.True(t, fee.AmountFor(decimal.Zero).IsZero())
	})
}

func TestFee_ActivateDeactivate(t *testing.T) {
	fee, err := NewFee(uuid.New(), "Administración", valueobject.NewMoneyCOPFromFloat(250000), FeeTypeMonthly, false)
	require.NoError(t, err)

	require.NoError(t, fee.Deactivate())
	assert.False(t, fee.Active)
	assert.Error(t, fee.Deactivate())

	require.NoError(t, fee.Activate())
	assert.True(t, fee.Active)
}

func TestNewPayment(t *testing.T) {
	tenantID := uuid.New()
	billID := uuid.New()

	t.Run("creates completed payment", func(t *testing.T) {
		p, err := NewPayment(tenantID, billID, valueobject.NewMoneyCOPFromFloat(100000), PaymentMethodPSE, "ref-123")

		require.NoError(t, err)
		assert.Equal(t, PaymentStatusCompleted, p.Status)
		assert.True(t, p.Overpayment.IsZero())
		assert.Equal(t, "ref-123", p.Reference)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(tenantID, billID, valueobject.ZeroCOP(), PaymentMethodCash, "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(tenantID, billID, valueobject.NewMoneyCOPFromFloat(1000), PaymentMethod("BITCOIN"), "")
		assert.Error(t, err)
	})

	t.Run("records overpayment", func(t *testing.T) {
		p, err := NewPayment(tenantID, billID, valueobject.NewMoneyCOPFromFloat(400000), PaymentMethodBankTransfer, "")
		require.NoError(t, err)

		require.NoError(t, p.RecordOverpayment(valueobject.NewMoneyCOPFromFloat(70000)))
		assert.True(t, p.Overpayment.Equals(valueobject.NewMoneyCOPFromFloat(70000)))
	})

	t.Run("void is idempotent-guarded", func(t *testing.T) {
		p, err := NewPayment(tenantID, billID, valueobject.NewMoneyCOPFromFloat(1000), PaymentMethodCash, "")
		require.NoError(t, err)

		require.NoError(t, p.Void())
		assert.Error(t, p.Void())
	})
}
