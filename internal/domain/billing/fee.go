package billing

import (
	"time"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeType represents how often a fee is charged
type FeeType string

const (
	FeeTypeMonthly       FeeType = "MONTHLY"
	FeeTypeExtraordinary FeeType = "EXTRAORDINARY"
	FeeTypeOneTime       FeeType = "ONE_TIME"
)

// IsValid checks if the fee type is known
func (t FeeType) IsValid() bool {
	switch t {
	case FeeTypeMonthly, FeeTypeExtraordinary, FeeTypeOneTime:
		return true
	}
	return false
}

// Fee is a charge definition for a complex. A flat fee bills its base amount
// as-is; a per-unit fee treats the base amount as a rate per square meter
// and multiplies by the property's area at generation time.
type Fee struct {
	shared.TenantAggregateRoot
	Name        string
	Description string
	BaseAmount  valueobject.Money
	Type        FeeType
	PerUnit     bool
	Active      bool
}

// NewFee creates a new fee definition
func NewFee(tenantID uuid.UUID, name string, baseAmount valueobject.Money, feeType FeeType, perUnit bool) (*Fee, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Fee name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Fee name cannot exceed 200 characters")
	}
	if !feeType.IsValid() {
		return nil, shared.NewDomainError("INVALID_FEE_TYPE", "Invalid fee type")
	}
	if baseAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Fee amount cannot be negative")
	}

	return &Fee{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		BaseAmount:          baseAmount,
		Type:                feeType,
		PerUnit:             perUnit,
		Active:              true,
	}, nil
}

// Update updates the fee definition
func (f *Fee) Update(name, description string, baseAmount valueobject.Money) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Fee name cannot be empty")
	}
	if baseAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Fee amount cannot be negative")
	}

	f.Name = name
	f.Description = description
	f.BaseAmount = baseAmount
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// Deactivate removes the fee from future bill generation
func (f *Fee) Deactivate() error {
	if !f.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Fee is already inactive")
	}

	f.Active = false
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// Activate restores the fee for future bill generation
func (f *Fee) Activate() error {
	if f.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Fee is already active")
	}

	f.Active = true
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// AmountFor computes the billable amount of this fee for a property area.
// Flat fees ignore the area; per-unit fees multiply rate by area.
func (f *Fee) AmountFor(area decimal.Decimal) valueobject.Money {
	if !f.PerUnit {
		return f.BaseAmount
	}
	return f.BaseAmount.Multiply(area)
}
