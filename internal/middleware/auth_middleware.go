package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
	"github.com/seojin/hakwonhub/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextTenantID = "tenantID"
	ContextEmail    = "email"
	ContextRole     = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and puts the session scope into the
// request context. The tenant always comes from the token, never from the
// request payload.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.NewUnauthorizedError("authorization header missing"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortWithError(c, apperrors.NewUnauthorizedError("invalid token format"))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithError(c, apperrors.Classify(apperrors.ErrTokenExpired))
				return
			}
			abortWithError(c, apperrors.Classify(apperrors.ErrTokenInvalid))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextTenantID, claims.TenantID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RoleRequired checks that the authenticated user carries the given role.
// JWTAuth must run first.
func (m *AuthMiddleware) RoleRequired(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			abortWithError(c, apperrors.NewUnauthorizedError(""))
			return
		}

		if roleStr, ok := role.(string); !ok || roleStr != requiredRole {
			abortWithError(c, apperrors.NewForbiddenError("insufficient permissions for this operation"))
			return
		}

		c.Next()
	}
}

// TenantID returns the tenant scope set by JWTAuth
func TenantID(c *gin.Context) string {
	return c.GetString(ContextTenantID)
}

// UserID returns the user id set by JWTAuth
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, dto.NewErrorResponse(appErr))
}
