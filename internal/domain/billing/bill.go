package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BillStatus represents the payment status of a bill
type BillStatus string

const (
	BillStatusPending BillStatus = "PENDING"
	BillStatusPartial BillStatus = "PARTIAL"
	BillStatusPaid    BillStatus = "PAID"
)

// IsValid checks if the bill status is known
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusPending, BillStatusPartial, BillStatusPaid:
		return true
	}
	return false
}

// IsTerminal reports whether the status accepts no further payments
func (s BillStatus) IsTerminal() bool {
	return s == BillStatusPaid
}

// LineItem is a single charge on a bill, captured at generation time so
// later fee edits never alter issued bills.
type LineItem struct {
	FeeID   uuid.UUID         `json:"fee_id"`
	FeeName string            `json:"fee_name"`
	FeeType FeeType           `json:"fee_type"`
	Amount  valueobject.Money `json:"amount"`
	LateFee bool              `json:"late_fee,omitempty"`
}

// LineItems stores bill lines as JSONB
type LineItems []LineItem

// Value implements driver.Valuer for JSONB storage
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]LineItem{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LineItems: unsupported type")
	}
	if len(bytes) == 0 {
		*l = LineItems{}
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Total sums all line amounts
func (l LineItems) Total() valueobject.Money {
	total := valueobject.ZeroCOP()
	for _, item := range l {
		total = total.MustAdd(item.Amount)
	}
	return total
}

// Bill is a periodic charge issued to one property for one billing period.
// The total is fixed as the sum of line items at creation; payments move the
// status forward through PENDING, PARTIAL and PAID, never backwards.
type Bill struct {
	shared.TenantAggregateRoot
	PropertyID        uuid.UUID
	PropertyNumber    string
	Period            BillingPeriod
	LineItems         LineItems
	TotalAmount       valueobject.Money
	PaidAmount        valueobject.Money
	OutstandingAmount valueobject.Money
	Status            BillStatus
	DueDate           time.Time
	PaidAt            *time.Time
	Notes             string
}

// NewBill creates a bill for a property and period from its line items
func NewBill(tenantID, propertyID uuid.UUID, propertyNumber string, period BillingPeriod, dueDate time.Time, lines []LineItem) (*Bill, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID is required")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_BILL", "A bill must have at least one line item")
	}
	for _, line := range lines {
		if line.Amount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Line item amounts cannot be negative")
		}
	}

	total := LineItems(lines).Total()

	b := &Bill{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PropertyID:          propertyID,
		PropertyNumber:      propertyNumber,
		Period:              period,
		LineItems:           lines,
		TotalAmount:         total,
		PaidAmount:          valueobject.ZeroCOP(),
		OutstandingAmount:   total,
		Status:              BillStatusPending,
		DueDate:             dueDate,
	}

	b.AddDomainEvent(NewBillGeneratedEvent(b))

	return b, nil
}

// CanApplyPayment reports whether the bill accepts payments
func (b *Bill) CanApplyPayment() bool {
	return !b.Status.IsTerminal()
}

// IsOverdue reports whether the bill is unpaid past its due date
func (b *Bill) IsOverdue(asOf time.Time) bool {
	return !b.Status.IsTerminal() && asOf.After(b.DueDate)
}

// DaysLate returns whole days elapsed since the due date, never negative
func (b *Bill) DaysLate(asOf time.Time) int {
	if !asOf.After(b.DueDate) {
		return 0
	}
	return int(asOf.Sub(b.DueDate).Hours() / 24)
}

// ApplyPayment applies a payment amount to the bill. It returns true when
// the payment settles the bill in full; any excess over the outstanding
// amount is left for the caller to record as overpayment on the payment.
func (b *Bill) ApplyPayment(amount valueobject.Money) (bool, error) {
	if !b.CanApplyPayment() {
		return false, shared.NewDomainError("BILL_ALREADY_PAID", "Factura ya está pagada")
	}
	if !amount.IsPositive() {
		return false, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	settles, err := amount.GreaterThanOrEqual(b.OutstandingAmount)
	if err != nil {
		return false, err
	}

	if settles {
		applied := b.OutstandingAmount
		b.PaidAmount = b.PaidAmount.MustAdd(applied)
		b.OutstandingAmount = valueobject.Zero(b.TotalAmount.Currency())
		b.Status = BillStatusPaid
		now := time.Now()
		b.PaidAt = &now
		b.AddDomainEvent(NewBillPaidEvent(b, amount))
	} else {
		b.PaidAmount = b.PaidAmount.MustAdd(amount)
		outstanding, subErr := b.TotalAmount.Subtract(b.PaidAmount)
		if subErr != nil {
			return false, subErr
		}
		b.OutstandingAmount = outstanding
		b.Status = BillStatusPartial
		b.AddDomainEvent(NewBillPartiallyPaidEvent(b, amount))
	}

	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return settles, nil
}

// AddLateFee appends a late-fee line and raises the total and outstanding
// amounts accordingly. Paid bills never accrue late fees.
func (b *Bill) AddLateFee(amount valueobject.Money, name string) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("BILL_ALREADY_PAID", "Factura ya está pagada")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Late fee amount must be positive")
	}

	b.LineItems = append(b.LineItems, LineItem{
		FeeID:   uuid.Nil,
		FeeName: name,
		FeeType: FeeTypeOneTime,
		Amount:  amount,
		LateFee: true,
	})
	b.TotalAmount = b.TotalAmount.MustAdd(amount)
	b.OutstandingAmount = b.OutstandingAmount.MustAdd(amount)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewLateFeeAssessedEvent(b, amount))

	return nil
}

// HasLateFee reports whether a late-fee line is already present
func (b *Bill) HasLateFee() bool {
	for _, line := range b.LineItems {
		if line.LateFee {
			return true
		}
	}
	return false
}
