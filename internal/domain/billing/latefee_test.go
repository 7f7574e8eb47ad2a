package billing

import (
	"testing"

	"github.com/armonia/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLateFee(t *testing.T) {
	principal := valueobject.NewMoneyCOPFromFloat(300000)
	rate := decimal.NewFromFloat(0.015)

	t.Run("full month late charges the full monthly rate", func(t *testing.T) {
		fee, err := CalculateLateFee(principal, 30, rate)

		require.NoError(t, err)
		assert.True(t, fee.Equals(valueobject.NewMoneyCOPFromFloat(4500)), "got %s", fee)
	})

	t.Run("prorates by days over a 30-day month", func(t *testing.T) {
		fee, err := CalculateLateFee(principal, 15, rate)

		require.NoError(t, err)
		assert.True(t, fee.Equals(valueobject.NewMoneyCOPFromFloat(2250)), "got %s", fee)
	})

	t.Run("zero days late is a zero fee", func(t *testing.T) {
		fee, err := CalculateLateFee(principal, 0, rate)

		require.NoError(t, err)
		assert.True(t, fee.IsZero())
	})

	t.Run("negative days late is a caller error", func(t *testing.T) {
		_, err := CalculateLateFee(principal, -1, rate)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		_, err := CalculateLateFee(principal, 10, decimal.NewFromFloat(-0.01))

		assert.Error(t, err)
	})

	t.Run("zero rate yields zero fee", func(t *testing.T) {
		fee, err := CalculateLateFee(principal, 45, decimal.Zero)

		require.NoError(t, err)
		assert.True(t, fee.IsZero())
	})

	t.Run("more than a month late keeps accruing", func(t *testing.T) {
		fee, err := CalculateLateFee(principal, 60, rate)

		require.NoError(t, err)
		assert.True(t, fee.Equals(valueobject.NewMoneyCOPFromFloat(9000)), "got %s", fee)
	})
}
