package auth

import (
	"net/http"

	apperrors "scrim-portal-backend/internal/errors"
	"scrim-portal-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

const principalKey = "auth_principal"

// AuthMiddleware gates routes on the caller's identity and role
type AuthMiddleware struct {
	identity IdentityProvider
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(identity IdentityProvider) *AuthMiddleware {
	return &AuthMiddleware{identity: identity}
}

// Authenticate resolves the principal, if any, and stores it on the context.
// A missing or invalid session continues as anonymous; a failed lookup answers 500.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := m.identity.CurrentPrincipal(c)
		if err != nil {
			if apperrors.IsAuthentication(err) {
				c.Next()
				return
			}
			logger.WithContext(c.Request.Context()).WithError(err).Error("Failed to resolve session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(logger.ContextWithUserID(c.Request.Context(), principal.UserID()))
		c.Next()
	}
}

// RequireAuth rejects anonymous callers with 401
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetPrincipal(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous callers with 401 and non-admins with 403
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}
		if !principal.IsAdmin() {
			logger.WithContext(c.Request.Context()).WithField("path", c.FullPath()).Warn("Admin route denied")
			c.JSON(http.StatusForbidden, gin.H{"error": apperrors.ErrForbidden.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the principal stored by Authenticate
func GetPrincipal(c *gin.Context) (*Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*Principal)
	return principal, ok && principal != nil
}

// GetUserID returns the id of the authenticated user, or "" for anonymous callers
func GetUserID(c *gin.Context) string {
	principal, ok := GetPrincipal(c)
	if !ok {
		return ""
	}
	return principal.UserID()
}

// SetPrincipal stores a principal on the context
func SetPrincipal(c *gin.Context, principal *Principal) {
	c.Set(principalKey, principal)
}
