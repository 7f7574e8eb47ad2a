package complexes

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FeatureKey represents a unique identifier for a platform feature
type FeatureKey string

// Predefined feature keys for the platform
const (
	FeatureBillingEngine   FeatureKey = "billing_engine"
	FeatureLateFees        FeatureKey = "late_fees"
	FeatureAdvancedPQR     FeatureKey = "advanced_pqr"
	FeatureAssemblies      FeatureKey = "assemblies"
	FeatureReservations    FeatureKey = "reservations"
	FeatureVisitorLog      FeatureKey = "visitor_log"
	FeatureNotifications   FeatureKey = "notifications"
	FeatureFinancialReport FeatureKey = "financial_reports"
	FeatureDataExport      FeatureKey = "data_export"
)

// PlanFeature represents a feature mapping for a subscription tier.
// It defines which features are available for each plan and their limits.
type PlanFeature struct {
	ID          uuid.UUID
	PlanID      PlanTier
	FeatureKey  FeatureKey
	Enabled     bool
	Limit       *int // nil = unlimited
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPlanFeature creates a new PlanFeature with the given parameters
func NewPlanFeature(planID PlanTier, featureKey FeatureKey, enabled bool, description string) *PlanFeature {
	now := time.Now()
	return &PlanFeature{
		ID:          uuid.New(),
		PlanID:      planID,
		FeatureKey:  featureKey,
		Enabled:     enabled,
		Limit:       nil,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewPlanFeatureWithLimit creates a new PlanFeature with a limit
func NewPlanFeatureWithLimit(planID PlanTier, featureKey FeatureKey, enabled bool, limit int, description string) *PlanFeature {
	pf := NewPlanFeature(planID, featureKey, enabled, description)
	pf.Limit = &limit
	return pf
}

// Enable enables this feature
func (pf *PlanFeature) Enable() {
	pf.Enabled = true
	pf.UpdatedAt = time.Now()
}

// Disable disables this feature
func (pf *PlanFeature) Disable() {
	pf.Enabled = false
	pf.UpdatedAt = time.Now()
}

// IsUnlimited returns true if the feature has no limit
func (pf *PlanFeature) IsUnlimited() bool {
	return pf.Limit == nil
}

// PlanFeatureRepository defines the interface for plan feature persistence
type PlanFeatureRepository interface {
	// FindByPlan finds all features for a specific plan
	FindByPlan(ctx context.Context, planID PlanTier) ([]PlanFeature, error)

	// FindByPlanAndFeature finds a specific feature for a plan
	FindByPlanAndFeature(ctx context.Context, planID PlanTier, featureKey FeatureKey) (*PlanFeature, error)

	// HasFeature checks if a plan has a specific feature enabled
	HasFeature(ctx context.Context, planID PlanTier, featureKey FeatureKey) (bool, error)

	// Save creates or updates a plan feature
	Save(ctx context.Context, feature *PlanFeature) error

	// SaveBatch creates or updates multiple plan features
	SaveBatch(ctx context.Context, features []PlanFeature) error

	// DeleteByPlan deletes all features for a plan
	DeleteByPlan(ctx context.Context, planID PlanTier) error
}

// DefaultPlanFeatures returns the default feature set for a given tier.
// This defines which features are available for each subscription tier.
func DefaultPlanFeatures(plan PlanTier) []PlanFeature {
	switch plan {
	case PlanTierBasic:
		return defaultBasicPlanFeatures()
	case PlanTierStandard:
		return defaultStandardPlanFeatures()
	case PlanTierPremium:
		return defaultPremiumPlanFeatures()
	default:
		return defaultBasicPlanFeatures()
	}
}

// defaultBasicPlanFeatures returns features for the BASIC tier
func defaultBasicPlanFeatures() []PlanFeature {
	plan := PlanTierBasic
	return []PlanFeature{
		*NewPlanFeature(plan, FeatureBillingEngine, false, "Periodic fee billing and payment tracking"),
		*NewPlanFeature(plan, FeatureLateFees, false, "Automatic late fee assessment"),
		*NewPlanFeature(plan, FeatureAdvancedPQR, false, "PQR assignment, internal notes and SLA tracking"),
		*NewPlanFeature(plan, FeatureAssemblies, false, "Assembly scheduling and voting"),
		*NewPlanFeatureWithLimit(plan, FeatureReservations, true, 2, "Common-area reservations (2 areas)"),
		*NewPlanFeature(plan, FeatureVisitorLog, true, "Reception visitor log"),
		*NewPlanFeature(plan, FeatureNotifications, false, "Email/SMS resident notifications"),
		*NewPlanFeature(plan, FeatureFinancialReport, false, "Financial reports"),
		*NewPlanFeature(plan, FeatureDataExport, true, "Export data to CSV"),
	}
}

// defaultStandardPlanFeatures returns features for the STANDARD tier
func defaultStandardPlanFeatures() []PlanFeature {
	plan := PlanTierStandard
	return []PlanFeature{
		*NewPlanFeature(plan, FeatureBillingEngine, true, "Periodic fee billing and payment tracking"),
		*NewPlanFeature(plan, FeatureLateFees, true, "Automatic late fee assessment"),
		*NewPlanFeature(plan, FeatureAdvancedPQR, true, "PQR assignment, internal notes and SLA tracking"),
		*NewPlanFeature(plan, FeatureAssemblies, true, "Assembly scheduling and voting"),
		*NewPlanFeatureWithLimit(plan, FeatureReservations, true, 10, "Common-area reservations (10 areas)"),
		*NewPlanFeature(plan, FeatureVisitorLog, true, "Reception visitor log"),
		*NewPlanFeature(plan, FeatureNotifications, true, "Email/SMS resident notifications"),
		*NewPlanFeature(plan, FeatureFinancialReport, false, "Financial reports"),
		*NewPlanFeature(plan, FeatureDataExport, true, "Export data to CSV"),
	}
}

// defaultPremiumPlanFeatures returns features for the PREMIUM tier
func defaultPremiumPlanFeatures() []PlanFeature {
	plan := PlanTierPremium
	return []PlanFeature{
		*NewPlanFeature(plan, FeatureBillingEngine, true, "Periodic fee billing and payment tracking"),
		*NewPlanFeature(plan, FeatureLateFees, true, "Automatic late fee assessment"),
		*NewPlanFeature(plan, FeatureAdvancedPQR, true, "PQR assignment, internal notes and SLA tracking"),
		*NewPlanFeature(plan, FeatureAssemblies, true, "Assembly scheduling and voting"),
		*NewPlanFeature(plan, FeatureReservations, true, "Common-area reservations (unlimited)"),
		*NewPlanFeature(plan, FeatureVisitorLog, true, "Reception visitor log"),
		*NewPlanFeature(plan, FeatureNotifications, true, "Email/SMS resident notifications"),
		*NewPlanFeature(plan, FeatureFinancialReport, true, "Financial reports"),
		*NewPlanFeature(plan, FeatureDataExport, true, "Export data to CSV"),
	}
}

// GetAllFeatureKeys returns all defined feature keys
func GetAllFeatureKeys() []FeatureKey {
	return []FeatureKey{
		FeatureBillingEngine,
		FeatureLateFees,
		FeatureAdvancedPQR,
		FeatureAssemblies,
		FeatureReservations,
		FeatureVisitorLog,
		FeatureNotifications,
		FeatureFinancialReport,
		FeatureDataExport,
	}
}

// IsValidFeatureKey checks if a feature key is valid
func IsValidFeatureKey(key FeatureKey) bool {
	for _, k := range GetAllFeatureKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// PlanHasFeature checks if a tier has a feature enabled based on the
// default feature definitions. Repository-backed checks take precedence
// when a complex has customized features.
func PlanHasFeature(plan PlanTier, featureKey FeatureKey) bool {
	for _, f := range DefaultPlanFeatures(plan) {
		if f.FeatureKey == featureKey {
			return f.Enabled
		}
	}
	return false
}
