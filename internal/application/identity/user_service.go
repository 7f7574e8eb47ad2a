package identity

import (
	"context"

	"github.com/armonia/backend/internal/domain/identity"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user account management within a complex
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Register creates a user account in the complex
func (s *UserService) Register(ctx context.Context, tenantID uuid.UUID, req RegisterUserRequest) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "UserService", "Register")
	defer span.End()
	telemetry.SetAttributes(span, "tenant.id", tenantID.String())

	exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "Ya existe un usuario con ese correo")
	}

	user, err := identity.NewUser(tenantID, req.Email, req.Name, req.Password, identity.Role(req.Role))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	user.Phone = req.Phone

	if err := s.userRepo.Save(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword changes the caller's own password
func (s *UserService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, req ChangePasswordRequest) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "UserService", "ChangePassword")
	defer span.End()

	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// ChangeRole changes another user's role
func (s *UserService) ChangeRole(ctx context.Context, tenantID, userID uuid.UUID, req ChangeRoleRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if err := user.SetRole(identity.Role(req.Role)); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Activate re-enables a deactivated account
func (s *UserService) Activate(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.Activate(); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// Deactivate disables an account without deleting it
func (s *UserService) Deactivate(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// GetByID retrieves a user
func (s *UserService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves users in the complex matching the filter
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}
