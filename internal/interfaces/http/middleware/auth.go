package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/armonia/backend/internal/domain/identity"
	"github.com/armonia/backend/internal/infrastructure/auth"
	"github.com/armonia/backend/internal/infrastructure/logger"
	"github.com/armonia/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWT context keys
const (
	ClaimsKey     = "auth_claims"
	UserIDKey     = "auth_user_id"
	TenantIDKey   = "auth_tenant_id"
	RoleKey       = "auth_role"
	EmailKey      = "auth_email"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Auth validates the bearer token and stores its claims in the gin context
func Auth(jwtService *auth.JWTService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Se requiere autenticación")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "UNAUTHORIZED", "Formato de autorización inválido")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if log != nil {
				log.Warn("token validation failed",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path))
			}
			code := "UNAUTHORIZED"
			message := "Se requiere autenticación"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = "TOKEN_EXPIRED"
				message = "El token ha expirado"
			}
			abortUnauthorized(c, code, message)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Set(TenantIDKey, claims.TenantID)
		c.Set(RoleKey, claims.Role)
		c.Set(EmailKey, claims.Email)

		// Enrich the request logger with the authenticated identity
		ctx := c.Request.Context()
		reqLog := logger.FromContext(ctx).With(
			zap.String("tenant_id", claims.TenantID),
			zap.String("user_id", claims.UserID),
		)
		c.Request = c.Request.WithContext(logger.WithContext(ctx, reqLog))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetClaims retrieves the validated JWT claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(ClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetTenantID returns the authenticated tenant ID, or uuid.Nil when absent
func GetTenantID(c *gin.Context) uuid.UUID {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil
	}
	id, err := claims.GetTenantUUID()
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetUserID returns the authenticated user ID, or uuid.Nil when absent
func GetUserID(c *gin.Context) uuid.UUID {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil
	}
	id, err := claims.GetUserUUID()
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetRole returns the authenticated user's role
func GetRole(c *gin.Context) identity.Role {
	return identity.Role(c.GetString(RoleKey))
}

// GetEmail returns the authenticated user's email
func GetEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}

// RequireAdmin allows only platform or complex administrators
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetRole(c).IsAdmin() {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RequireStaff allows administrators and operational staff
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if !role.IsAdmin() && !role.IsStaff() {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponseWithRequestID("FORBIDDEN", "No tiene permisos para esta operación", GetRequestID(c)))
}
