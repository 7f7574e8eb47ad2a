package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/armonia/backend/internal/domain/property"
)

// PropertyModel is the persistence model for a unit within a complex.
type PropertyModel struct {
	TenantAggregateModel
	Number      string                `gorm:"type:varchar(20);not null;uniqueIndex:idx_property_tenant_number,priority:2"`
	Type        property.PropertyType `gorm:"type:varchar(20);not null"`
	Area        decimal.Decimal       `gorm:"type:decimal(10,2);not null;default:0"`
	Coefficient decimal.Decimal       `gorm:"type:decimal(8,6);not null;default:0"`
	Active      bool                  `gorm:"not null;default:true;index"`
	OwnerID     *uuid.UUID            `gorm:"type:uuid;index"`
	ResidentIDs property.UUIDSlice    `gorm:"type:jsonb"`
	Notes       string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property.
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Number:              m.Number,
		Type:                m.Type,
		Area:                m.Area,
		Coefficient:         m.Coefficient,
		Active:              m.Active,
		OwnerID:             m.OwnerID,
		ResidentIDs:         m.ResidentIDs,
		Notes:               m.Notes,
	}
}

// PropertyModelFromDomain builds the persistence model from a domain Property.
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{
		Number:      p.Number,
		Type:        p.Type,
		Area:        p.Area,
		Coefficient: p.Coefficient,
		Active:      p.Active,
		OwnerID:     p.OwnerID,
		ResidentIDs: p.ResidentIDs,
		Notes:       p.Notes,
	}
	m.FromTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}
