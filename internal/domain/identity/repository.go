package identity

import (
	"context"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID within a complex
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email within a complex
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)

	// FindAll finds all users in a complex matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, error)

	// FindByRole finds users by role
	FindByRole(ctx context.Context, tenantID uuid.UUID, role Role, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete deletes a user
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// ExistsByEmail checks if a user with the given email exists in the complex
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
}
