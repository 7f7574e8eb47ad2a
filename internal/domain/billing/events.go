package billing

import (
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

const AggregateTypeBill = "Bill"

const (
	EventTypeBillGenerated     = "BillGenerated"
	EventTypeBillPaid          = "BillPaid"
	EventTypeBillPartiallyPaid = "BillPartiallyPaid"
	EventTypeLateFeeAssessed   = "LateFeeAssessed"
)

// BillGeneratedEvent is published when a bill is issued to a property
type BillGeneratedEvent struct {
	shared.BaseDomainEvent
	PropertyID  uuid.UUID `json:"property_id"`
	Period      string    `json:"period"`
	TotalAmount string    `json:"total_amount"`
}

// NewBillGeneratedEvent creates a new BillGeneratedEvent
func NewBillGeneratedEvent(b *Bill) *BillGeneratedEvent {
	return &BillGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillGenerated, AggregateTypeBill, b.ID, b.TenantID),
		PropertyID:      b.PropertyID,
		Period:          b.Period.Label(),
		TotalAmount:     b.TotalAmount.String(),
	}
}

// BillPaidEvent is published when a payment settles a bill in full
type BillPaidEvent struct {
	shared.BaseDomainEvent
	PropertyID    uuid.UUID `json:"property_id"`
	PaymentAmount string    `json:"payment_amount"`
	TotalAmount   string    `json:"total_amount"`
}

// NewBillPaidEvent creates a new BillPaidEvent
func NewBillPaidEvent(b *Bill, payment valueobject.Money) *BillPaidEvent {
	return &BillPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillPaid, AggregateTypeBill, b.ID, b.TenantID),
		PropertyID:      b.PropertyID,
		PaymentAmount:   payment.String(),
		TotalAmount:     b.TotalAmount.String(),
	}
}

// BillPartiallyPaidEvent is published when a payment leaves a balance outstanding
type BillPartiallyPaidEvent struct {
	shared.BaseDomainEvent
	PropertyID        uuid.UUID `json:"property_id"`
	PaymentAmount     string    `json:"payment_amount"`
	OutstandingAmount string    `json:"outstanding_amount"`
}

// NewBillPartiallyPaidEvent creates a new BillPartiallyPaidEvent
func NewBillPartiallyPaidEvent(b *Bill, payment valueobject.Money) *BillPartiallyPaidEvent {
	return &BillPartiallyPaidEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeBillPartiallyPaid, AggregateTypeBill, b.ID, b.TenantID),
		PropertyID:        b.PropertyID,
		PaymentAmount:     payment.String(),
		OutstandingAmount: b.OutstandingAmount.String(),
	}
}

// LateFeeAssessedEvent is published when a late fee is added to an overdue bill
type LateFeeAssessedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	Amount     string    `json:"amount"`
}

// NewLateFeeAssessedEvent creates a new LateFeeAssessedEvent
func NewLateFeeAssessedEvent(b *Bill, amount valueobject.Money) *LateFeeAssessedEvent {
	return &LateFeeAssessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLateFeeAssessed, AggregateTypeBill, b.ID, b.TenantID),
		PropertyID:      b.PropertyID,
		Amount:          amount.String(),
	}
}
