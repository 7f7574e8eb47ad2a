package billing

import (
	"time"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodPSE          PaymentMethod = "PSE"
	PaymentMethodCheck        PaymentMethod = "CHECK"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodCreditCard,
		PaymentMethodPSE, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentStatus represents the state of a payment record
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusVoided    PaymentStatus = "VOIDED"
)

// Payment is an immutable record of money received against a bill.
// Corrections are made by voiding, never by editing.
type Payment struct {
	shared.BaseEntity
	TenantID    uuid.UUID
	BillID      uuid.UUID
	Amount      valueobject.Money
	Overpayment valueobject.Money
	Method      PaymentMethod
	Reference   string
	Status      PaymentStatus
	ReceivedBy  *uuid.UUID
	AppliedAt   time.Time
	Notes       string
}

// NewPayment creates a completed payment record against a bill
func NewPayment(tenantID, billID uuid.UUID, amount valueobject.Money, method PaymentMethod, reference string) (*Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID is required")
	}
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Bill ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Invalid payment method")
	}

	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		BillID:      billID,
		Amount:      amount,
		Overpayment: valueobject.Zero(amount.Currency()),
		Method:      method,
		Reference:   reference,
		Status:      PaymentStatusCompleted,
		AppliedAt:   time.Now(),
	}, nil
}

// RecordOverpayment notes the portion of the amount that exceeded the
// bill's outstanding balance when the payment was applied
func (p *Payment) RecordOverpayment(excess valueobject.Money) error {
	if excess.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Overpayment cannot be negative")
	}
	p.Overpayment = excess
	return nil
}

// Void marks the payment as voided
func (p *Payment) Void() error {
	if p.Status == PaymentStatusVoided {
		return shared.NewDomainError("ALREADY_VOIDED", "Payment is already voided")
	}
	p.Status = PaymentStatusVoided
	p.UpdatedAt = time.Now()
	return nil
}
