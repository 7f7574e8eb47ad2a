package property

import (
	"context"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for property persistence
type Repository interface {
	// FindByID finds a property by its ID within a complex
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Property, error)

	// FindByNumber finds a property by its unit number within a complex
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Property, error)

	// FindAll finds all properties in a complex matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Property, error)

	// FindActive finds all active properties in a complex
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]Property, error)

	// FindByResident finds properties where the given user lives or owns
	FindByResident(ctx context.Context, tenantID, userID uuid.UUID) ([]Property, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error

	// Delete deletes a property
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// Count counts properties in a complex matching the filter
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNumber checks if a unit number is already registered in the complex
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)
}
