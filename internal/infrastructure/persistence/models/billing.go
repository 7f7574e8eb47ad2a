package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/armonia/backend/internal/domain/billing"
	"github.com/armonia/backend/internal/domain/shared/valueobject"
)

// moneyFrom rebuilds a Money value from its stored columns. An unknown
// currency falls back to COP rather than failing the whole read.
func moneyFrom(amount decimal.Decimal, currency string) valueobject.Money {
	m, err := valueobject.NewMoney(amount, valueobject.Currency(currency))
	if err != nil {
		return valueobject.NewMoneyCOP(amount)
	}
	return m
}

// FeeModel is the persistence model for a fee definition.
type FeeModel struct {
	TenantAggregateModel
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	BaseAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'COP'"`
	Type        billing.FeeType `gorm:"type:varchar(30);not null"`
	PerUnit     bool            `gorm:"not null;default:false"`
	Active      bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (FeeModel) TableName() string {
	return "fees"
}

// ToDomain converts the persistence model to a domain Fee.
func (m *FeeModel) ToDomain() *billing.Fee {
	return &billing.Fee{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		Description:         m.Description,
		BaseAmount:          moneyFrom(m.BaseAmount, m.Currency),
		Type:                m.Type,
		PerUnit:             m.PerUnit,
		Active:              m.Active,
	}
}

// FeeModelFromDomain builds the persistence model from a domain Fee.
func FeeModelFromDomain(f *billing.Fee) *FeeModel {
	m := &FeeModel{
		Name:        f.Name,
		Description: f.Description,
		BaseAmount:  f.BaseAmount.Amount(),
		Currency:    string(f.BaseAmount.Currency()),
		Type:        f.Type,
		PerUnit:     f.PerUnit,
		Active:      f.Active,
	}
	m.FromTenantAggregateRoot(f.TenantAggregateRoot)
	return m
}

// BillModel is the persistence model for a monthly bill. The composite
// unique index on (property_id, period_year, period_month) is the database
// level guarantee that a property is billed at most once per period.
type BillModel struct {
	TenantAggregateModel
	PropertyID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_bill_property_period,priority:1"`
	PropertyNumber    string             `gorm:"type:varchar(20);not null"`
	PeriodYear        int                `gorm:"not null;uniqueIndex:idx_bill_property_period,priority:2"`
	PeriodMonth       int                `gorm:"not null;uniqueIndex:idx_bill_property_period,priority:3"`
	LineItems         billing.LineItems  `gorm:"type:jsonb;not null"`
	TotalAmount       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount        decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	OutstandingAmount decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Currency          string             `gorm:"type:varchar(3);not null;default:'COP'"`
	Status            billing.BillStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DueDate           time.Time          `gorm:"not null;index"`
	PaidAt            *time.Time
	Notes             string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill.
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		PropertyID:          m.PropertyID,
		PropertyNumber:      m.PropertyNumber,
		Period:              billing.PeriodForMonth(m.PeriodYear, m.PeriodMonth),
		LineItems:           m.LineItems,
		TotalAmount:         moneyFrom(m.TotalAmount, m.Currency),
		PaidAmount:          moneyFrom(m.PaidAmount, m.Currency),
		OutstandingAmount:   moneyFrom(m.OutstandingAmount, m.Currency),
		Status:              m.Status,
		DueDate:             m.DueDate,
		PaidAt:              m.PaidAt,
		Notes:               m.Notes,
	}
}

// BillModelFromDomain builds the persistence model from a domain Bill.
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{
		PropertyID:        b.PropertyID,
		PropertyNumber:    b.PropertyNumber,
		PeriodYear:        b.Period.Year,
		PeriodMonth:       b.Period.Month,
		LineItems:         b.LineItems,
		TotalAmount:       b.TotalAmount.Amount(),
		PaidAmount:        b.PaidAmount.Amount(),
		OutstandingAmount: b.OutstandingAmount.Amount(),
		Currency:          string(b.TotalAmount.Currency()),
		Status:            b.Status,
		DueDate:           b.DueDate,
		PaidAt:            b.PaidAt,
		Notes:             b.Notes,
	}
	m.FromTenantAggregateRoot(b.TenantAggregateRoot)
	return m
}

// PaymentModel is the persistence model for a payment applied to a bill.
type PaymentModel struct {
	BaseModel
	TenantID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	BillID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Overpayment decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Currency    string                `gorm:"type:varchar(3);not null;default:'COP'"`
	Method      billing.PaymentMethod `gorm:"type:varchar(30);not null"`
	Reference   string                `gorm:"type:varchar(100)"`
	Status      billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'COMPLETED'"`
	ReceivedBy  *uuid.UUID            `gorm:"type:uuid"`
	AppliedAt   time.Time             `gorm:"not null;index"`
	Notes       string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity:  m.ToBaseEntity(),
		TenantID:    m.TenantID,
		BillID:      m.BillID,
		Amount:      moneyFrom(m.Amount, m.Currency),
		Overpayment: moneyFrom(m.Overpayment, m.Currency),
		Method:      m.Method,
		Reference:   m.Reference,
		Status:      m.Status,
		ReceivedBy:  m.ReceivedBy,
		AppliedAt:   m.AppliedAt,
		Notes:       m.Notes,
	}
}

// PaymentModelFromDomain builds the persistence model from a domain Payment.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{
		TenantID:    p.TenantID,
		BillID:      p.BillID,
		Amount:      p.Amount.Amount(),
		Overpayment: p.Overpayment.Amount(),
		Currency:    string(p.Amount.Currency()),
		Method:      p.Method,
		Reference:   p.Reference,
		Status:      p.Status,
		ReceivedBy:  p.ReceivedBy,
		AppliedAt:   p.AppliedAt,
		Notes:       p.Notes,
	}
	m.FromBaseEntity(p.BaseEntity)
	return m
}
