package billing

import (
	"time"

	"github.com/armonia/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Fee DTOs ====================

// CreateFeeRequest represents a request to define a recurring or one-off fee
type CreateFeeRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	BaseAmount  decimal.Decimal `json:"base_amount" binding:"required"`
	Currency    string          `json:"currency"`
	FeeType     string          `json:"fee_type" binding:"required"`
	PerUnit     bool            `json:"per_unit"`
}

// UpdateFeeRequest represents a request to update a fee definition
type UpdateFeeRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	BaseAmount  decimal.Decimal `json:"base_amount" binding:"required"`
}

// FeeResponse represents a fee definition in API responses
type FeeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	Currency    string          `json:"currency"`
	FeeType     string          `json:"fee_type"`
	PerUnit     bool            `json:"per_unit"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToFeeResponse converts a fee aggregate to its response representation
func ToFeeResponse(f *billing.Fee) FeeResponse {
	return FeeResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		BaseAmount:  f.BaseAmount.Amount(),
		Currency:    string(f.BaseAmount.Currency()),
		FeeType:     string(f.Type),
		PerUnit:     f.PerUnit,
		Active:      f.Active,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// ==================== Bill generation DTOs ====================

// GenerateBillsRequest identifies the calendar month to generate bills for
type GenerateBillsRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2100"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// GenerateBillsResult summarizes a completed generation run
type GenerateBillsResult struct {
	Period      string          `json:"period"`
	BillCount   int             `json:"bill_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	DueDate     time.Time       `json:"due_date"`
}

// ==================== Bill DTOs ====================

// LineItemResponse represents a single charge on a bill
type LineItemResponse struct {
	FeeID   uuid.UUID       `json:"fee_id"`
	FeeName string          `json:"fee_name"`
	FeeType string          `json:"fee_type"`
	Amount  decimal.Decimal `json:"amount"`
	LateFee bool            `json:"late_fee"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID                uuid.UUID          `json:"id"`
	PropertyID        uuid.UUID          `json:"property_id"`
	PropertyNumber    string             `json:"property_number"`
	PeriodYear        int                `json:"period_year"`
	PeriodMonth       int                `json:"period_month"`
	PeriodLabel       string             `json:"period_label"`
	LineItems         []LineItemResponse `json:"line_items"`
	TotalAmount       decimal.Decimal    `json:"total_amount"`
	PaidAmount        decimal.Decimal    `json:"paid_amount"`
	OutstandingAmount decimal.Decimal    `json:"outstanding_amount"`
	Currency          string             `json:"currency"`
	Status            string             `json:"status"`
	DueDate           time.Time          `json:"due_date"`
	PaidAt            *time.Time         `json:"paid_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// ToBillResponse converts a bill aggregate to its response representation
func ToBillResponse(b *billing.Bill) BillResponse {
	lines := make([]LineItemResponse, len(b.LineItems))
	for i, l := range b.LineItems {
		lines[i] = LineItemResponse{
			FeeID:   l.FeeID,
			FeeName: l.FeeName,
			FeeType: string(l.FeeType),
			Amount:  l.Amount.Amount(),
			LateFee: l.LateFee,
		}
	}
	return BillResponse{
		ID:                b.ID,
		PropertyID:        b.PropertyID,
		PropertyNumber:    b.PropertyNumber,
		PeriodYear:        b.Period.Year,
		PeriodMonth:       b.Period.Month,
		PeriodLabel:       b.Period.Label(),
		LineItems:         lines,
		TotalAmount:       b.TotalAmount.Amount(),
		PaidAmount:        b.PaidAmount.Amount(),
		OutstandingAmount: b.OutstandingAmount.Amount(),
		Currency:          string(b.TotalAmount.Currency()),
		Status:            string(b.Status),
		DueDate:           b.DueDate,
		PaidAt:            b.PaidAt,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// BillListFilter carries the query parameters for listing bills
type BillListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	SortBy     string     `form:"sort_by"`
	SortOrder  string     `form:"sort_order"`
	Status     string     `form:"status"`
	PropertyID *uuid.UUID `form:"property_id"`
	Year       int        `form:"year"`
	Month      int        `form:"month"`
}

// ==================== Payment DTOs ====================

// RegisterPaymentRequest represents a payment applied to a bill
type RegisterPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
}

// PaymentResponse represents a recorded payment. Settled reports whether
// this payment left the bill fully paid.
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	BillID     uuid.UUID       `json:"bill_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Overpaid   decimal.Decimal `json:"overpaid"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference"`
	Status     string          `json:"status"`
	Settled    bool            `json:"settled"`
	AppliedAt  time.Time       `json:"applied_at"`
	BillStatus string          `json:"bill_status"`
}

// ToPaymentResponse converts a payment and the bill it settled against
func ToPaymentResponse(p *billing.Payment, bill *billing.Bill, settled bool) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		BillID:     p.BillID,
		Amount:     p.Amount.Amount(),
		Currency:   string(p.Amount.Currency()),
		Overpaid:   p.Overpayment.Amount(),
		Method:     string(p.Method),
		Reference:  p.Reference,
		Status:     string(p.Status),
		Settled:    settled,
		AppliedAt:  p.AppliedAt,
		BillStatus: string(bill.Status),
	}
}

// ==================== Late fee DTOs ====================

// LateFeeRunResult summarizes a late fee assessment sweep
type LateFeeRunResult struct {
	Assessed int `json:"assessed"`
	Skipped  int `json:"skipped"`
}
