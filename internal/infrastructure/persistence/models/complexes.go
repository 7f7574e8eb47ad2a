package models

import (
	"time"

	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/shared"
)

// ComplexModel is the persistence model for a residential complex.
// Complexes are the tenancy roots, so the model is not tenant scoped itself.
type ComplexModel struct {
	AggregateModel
	Code         string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string                  `gorm:"type:varchar(200);not null"`
	Status       complexes.ComplexStatus `gorm:"type:varchar(20);not null;default:'trial';index"`
	Plan         complexes.PlanTier      `gorm:"type:varchar(20);not null;default:'BASIC';index"`
	Address      string                  `gorm:"type:text"`
	City         string                  `gorm:"type:varchar(100)"`
	ContactName  string                  `gorm:"type:varchar(100)"`
	ContactPhone string                  `gorm:"type:varchar(50)"`
	ContactEmail string                  `gorm:"type:varchar(200)"`
	TrialEndsAt  *time.Time              `gorm:"index"`
	PQRSettings  complexes.PQRSettings   `gorm:"type:jsonb"`
	Notes        string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ComplexModel) TableName() string {
	return "complexes"
}

// ToDomain converts the persistence model to a domain ResidentialComplex.
func (m *ComplexModel) ToDomain() *complexes.ResidentialComplex {
	return &complexes.ResidentialComplex{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.ToBaseEntity(),
			Version:    m.Version,
		},
		Code:         m.Code,
		Name:         m.Name,
		Status:       m.Status,
		Plan:         m.Plan,
		Address:      m.Address,
		City:         m.City,
		ContactName:  m.ContactName,
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
		TrialEndsAt:  m.TrialEndsAt,
		PQRSettings:  m.PQRSettings,
		Notes:        m.Notes,
	}
}

// ComplexModelFromDomain builds the persistence model from a domain ResidentialComplex.
func ComplexModelFromDomain(c *complexes.ResidentialComplex) *ComplexModel {
	m := &ComplexModel{
		Code:         c.Code,
		Name:         c.Name,
		Status:       c.Status,
		Plan:         c.Plan,
		Address:      c.Address,
		City:         c.City,
		ContactName:  c.ContactName,
		ContactPhone: c.ContactPhone,
		ContactEmail: c.ContactEmail,
		TrialEndsAt:  c.TrialEndsAt,
		PQRSettings:  c.PQRSettings,
		Notes:        c.Notes,
	}
	m.FromBaseEntity(c.BaseEntity)
	m.Version = c.Version
	return m
}

// PlanFeatureModel is the persistence model for plan feature entitlements.
type PlanFeatureModel struct {
	BaseModel
	PlanID      complexes.PlanTier   `gorm:"type:varchar(20);not null;uniqueIndex:idx_plan_feature,priority:1"`
	FeatureKey  complexes.FeatureKey `gorm:"type:varchar(100);not null;uniqueIndex:idx_plan_feature,priority:2"`
	Enabled     bool                 `gorm:"not null;default:false"`
	Limit       *int                 `gorm:"column:feature_limit"`
	Description string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PlanFeatureModel) TableName() string {
	return "plan_features"
}

// ToDomain converts the persistence model to a domain PlanFeature.
func (m *PlanFeatureModel) ToDomain() *complexes.PlanFeature {
	return &complexes.PlanFeature{
		ID:          m.ID,
		PlanID:      m.PlanID,
		FeatureKey:  m.FeatureKey,
		Enabled:     m.Enabled,
		Limit:       m.Limit,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// PlanFeatureModelFromDomain builds the persistence model from a domain PlanFeature.
func PlanFeatureModelFromDomain(pf *complexes.PlanFeature) *PlanFeatureModel {
	return &PlanFeatureModel{
		BaseModel: BaseModel{
			ID:        pf.ID,
			CreatedAt: pf.CreatedAt,
			UpdatedAt: pf.UpdatedAt,
		},
		PlanID:      pf.PlanID,
		FeatureKey:  pf.FeatureKey,
		Enabled:     pf.Enabled,
		Limit:       pf.Limit,
		Description: pf.Description,
	}
}
