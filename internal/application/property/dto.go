package property

import (
	"time"

	"github.com/armonia/backend/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterPropertyRequest represents a request to register a unit
type RegisterPropertyRequest struct {
	Number      string          `json:"number" binding:"required,min=1,max=20"`
	Type        string          `json:"type" binding:"required"`
	Area        decimal.Decimal `json:"area" binding:"required"`
	Coefficient decimal.Decimal `json:"coefficient"`
	Notes       string          `json:"notes"`
	OwnerID     *uuid.UUID      `json:"owner_id"`
}

// UpdatePropertyRequest represents a request to update a unit's details
type UpdatePropertyRequest struct {
	Type        string          `json:"type" binding:"required"`
	Area        decimal.Decimal `json:"area" binding:"required"`
	Coefficient decimal.Decimal `json:"coefficient"`
	Notes       string          `json:"notes"`
}

// SetOwnerRequest assigns the unit's owner
type SetOwnerRequest struct {
	OwnerID uuid.UUID `json:"owner_id" binding:"required"`
}

// ResidentRequest adds or removes a resident on a unit
type ResidentRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// PropertyResponse represents a unit in API responses
type PropertyResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Type        string          `json:"type"`
	Area        decimal.Decimal `json:"area"`
	Coefficient decimal.Decimal `json:"coefficient"`
	Active      bool            `json:"active"`
	OwnerID     *uuid.UUID      `json:"owner_id,omitempty"`
	ResidentIDs []uuid.UUID     `json:"resident_ids"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToPropertyResponse converts a property aggregate to its response representation
func ToPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID,
		Number:      p.Number,
		Type:        string(p.Type),
		Area:        p.Area,
		Coefficient: p.Coefficient,
		Active:      p.Active,
		OwnerID:     p.OwnerID,
		ResidentIDs: p.ResidentIDs,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
