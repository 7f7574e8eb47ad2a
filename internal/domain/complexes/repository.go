package complexes

import (
	"context"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ComplexRepository defines the interface for residential complex persistence
type ComplexRepository interface {
	// FindByID finds a complex by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ResidentialComplex, error)

	// FindByCode finds a complex by its unique code
	FindByCode(ctx context.Context, code string) (*ResidentialComplex, error)

	// FindAll finds all complexes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ResidentialComplex, error)

	// FindByStatus finds complexes by status
	FindByStatus(ctx context.Context, status ComplexStatus, filter shared.Filter) ([]ResidentialComplex, error)

	// FindByPlan finds complexes by subscription plan
	FindByPlan(ctx context.Context, plan PlanTier, filter shared.Filter) ([]ResidentialComplex, error)

	// FindTrialExpiring finds complexes whose trial expires within the given days
	FindTrialExpiring(ctx context.Context, withinDays int) ([]ResidentialComplex, error)

	// Save creates or updates a complex
	Save(ctx context.Context, complex *ResidentialComplex) error

	// Delete deletes a complex
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts complexes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a complex with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
