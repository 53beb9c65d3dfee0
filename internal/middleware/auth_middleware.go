package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "roleType"
)

// AuthMiddleware resolves the caller's identity from the Authorization header
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth validates the bearer token and stores the caller's identity in the
// request context. Identity is resolved exactly once per request; handlers
// read it from the context instead of re-parsing the token.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}
			abortUnauthorized(c, code, details)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token subject")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, models.RoleType(claims.RoleType))

		c.Next()
	}
}

// RoleRequired restricts a route to the given roles. It must run after JWTAuth.
func RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// CurrentUserID returns the authenticated caller's id from the context
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, apperrors.ErrUnauthenticated
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.ErrUnauthenticated
	}

	return userID, nil
}

// CurrentRole returns the authenticated caller's role from the context
func CurrentRole(c *gin.Context) models.RoleType {
	value, exists := c.Get(ContextRole)
	if !exists {
		return ""
	}

	role, _ := value.(models.RoleType)
	return role
}

// IsStaff reports whether the caller is a librarian or an admin
func IsStaff(c *gin.Context) bool {
	role := CurrentRole(c)
	return role == models.RoleLibrarian || role == models.RoleAdmin
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
