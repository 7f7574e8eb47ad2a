package identity

import (
	"context"
	"errors"

	"github.com/armonia/backend/internal/domain/identity"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/auth"
	"github.com/armonia/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authentication errors. Login failures deliberately share one message so
// callers cannot probe which accounts exist.
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Credenciales inválidas")
	ErrUserInactive       = shared.NewDomainError("USER_INACTIVE", "La cuenta está desactivada")
)

// AuthService handles authentication and token lifecycle
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwtService,
		logger:   logger,
	}
}

// Login authenticates a user within a complex and issues a token pair
func (s *AuthService) Login(ctx context.Context, tenantID uuid.UUID, req LoginRequest) (*LoginResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "Login")
	defer span.End()
	telemetry.SetAttributes(span, "tenant.id", tenantID.String())

	user, err := s.userRepo.FindByEmail(ctx, tenantID, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("failed login attempt",
			zap.String("tenant_id", tenantID.String()),
			zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}
	if !user.CanLogin() {
		return nil, ErrUserInactive
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("recording login timestamp failed", zap.Error(err))
	}

	tokens, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &LoginResponse{
		Tokens: tokens,
		User:   ToUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. The
// user's current email and role are re-read so revoked roles do not
// survive a refresh.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "Refresh")
	defer span.End()

	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	tenantID, err := claims.GetTenantUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.CanLogin() {
		return nil, ErrUserInactive
	}

	tokens, err := s.jwt.RefreshTokenPair(req.RefreshToken, user.Email, string(user.Role))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.ErrUnauthorized
	}
	return tokens, nil
}
