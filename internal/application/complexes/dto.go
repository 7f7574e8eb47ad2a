package complexes

import (
	"time"

	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/google/uuid"
)

// OnboardComplexRequest represents a request to register a new complex.
// New complexes start on a trial of the full feature set.
type OnboardComplexRequest struct {
	Code        string `json:"code" binding:"required,min=3,max=20"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Address     string `json:"address"`
	City        string `json:"city"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// UpdateComplexRequest represents a request to update complex details
type UpdateComplexRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// SetPlanRequest represents a subscription plan change
type SetPlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// UpdatePQRSettingsRequest adjusts the complex's incident workflow switches
type UpdatePQRSettingsRequest struct {
	ResidentCanClose  bool `json:"resident_can_close"`
	AutoAssignEnabled bool `json:"auto_assign_enabled"`
}

// ComplexResponse represents a complex in API responses
type ComplexResponse struct {
	ID          uuid.UUID            `json:"id"`
	Code        string               `json:"code"`
	Name        string               `json:"name"`
	Address     string               `json:"address"`
	City        string               `json:"city"`
	ContactName string               `json:"contact_name"`
	Phone       string               `json:"phone"`
	Email       string               `json:"email"`
	Status      string               `json:"status"`
	Plan        string               `json:"plan"`
	TrialEndsAt *time.Time           `json:"trial_ends_at,omitempty"`
	PQRSettings complexes.PQRSettings `json:"pqr_settings"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToComplexResponse converts a complex aggregate to its response representation
func ToComplexResponse(c *complexes.ResidentialComplex) ComplexResponse {
	return ComplexResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Address:     c.Address,
		City:        c.City,
		ContactName: c.ContactName,
		Phone:       c.ContactPhone,
		Email:       c.ContactEmail,
		Status:      string(c.Status),
		Plan:        string(c.Plan),
		TrialEndsAt: c.TrialEndsAt,
		PQRSettings: c.PQRSettings,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FeatureAccessResponse reports a single feature's availability for a complex
type FeatureAccessResponse struct {
	FeatureKey string `json:"feature_key"`
	Enabled    bool   `json:"enabled"`
}
