package billing

import (
	"context"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrDuplicatePeriod is returned when bill generation is attempted for a
// property/period combination that already has a bill.
var ErrDuplicatePeriod = shared.NewDomainError("DUPLICATE_PERIOD", "Ya existe facturación para el período")

// FeeRepository defines the interface for fee definition persistence
type FeeRepository interface {
	// FindByID finds a fee by its ID within a complex
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Fee, error)

	// FindAll finds all fees in a complex matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Fee, error)

	// FindActive finds all active fees in a complex
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]Fee, error)

	// Save creates or updates a fee
	Save(ctx context.Context, fee *Fee) error

	// Delete deletes a fee
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// BillRepository defines the interface for bill persistence
type BillRepository interface {
	// FindByID finds a bill by its ID within a complex
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Bill, error)

	// FindAll finds bills in a complex matching the filter. The filter's
	// Filters map may constrain status, period_year and period_month.
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Bill, error)

	// FindByProperty finds bills for a property
	FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, filter shared.Filter) ([]Bill, error)

	// FindByPeriod finds all bills for a billing period
	FindByPeriod(ctx context.Context, tenantID uuid.UUID, year, month int) ([]Bill, error)

	// FindByStatus finds bills by status
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status BillStatus, filter shared.Filter) ([]Bill, error)

	// FindOverdue finds unpaid bills whose due date has passed
	FindOverdue(ctx context.Context, tenantID uuid.UUID) ([]Bill, error)

	// ExistsForPeriod checks if any bill exists for the period in the complex
	ExistsForPeriod(ctx context.Context, tenantID uuid.UUID, year, month int) (bool, error)

	// Save creates or updates a bill
	Save(ctx context.Context, bill *Bill) error

	// SaveBatch persists a batch of bills. Callers wrap this in a transaction
	// so a period's generation is all-or-nothing.
	SaveBatch(ctx context.Context, bills []*Bill) error

	// SaveWithLock updates a bill guarded by its version for optimistic locking
	SaveWithLock(ctx context.Context, bill *Bill) error

	// Count counts bills in a complex matching the filter
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by its ID within a complex
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)

	// FindByBill finds all payments applied to a bill
	FindByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]Payment, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *Payment) error
}
