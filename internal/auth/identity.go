package auth

import (
	"errors"
	"fmt"
	"strings"

	"scrim-portal-backend/internal/database/models"
	apperrors "scrim-portal-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// Principal is the identified caller of a request
type Principal struct {
	User *models.User
}

// UserID returns the id of the principal's user
func (p *Principal) UserID() string {
	if p == nil || p.User == nil {
		return ""
	}
	return p.User.ID
}

// IsAdmin reports whether the principal holds the admin role
func (p *Principal) IsAdmin() bool {
	return p != nil && p.User.IsAdmin()
}

// IdentityProvider resolves the principal of a request.
// It returns an authentication error when the request carries no valid identity.
type IdentityProvider interface {
	CurrentPrincipal(c *gin.Context) (*Principal, error)
}

// TokenValidator verifies session tokens
type TokenValidator interface {
	ValidateJWT(tokenString string) (*SessionClaims, error)
}

// UserLookup loads users by id
type UserLookup interface {
	GetByID(id string) (*models.User, error)
}

// SessionIdentityProvider reads the session token from the cookie or a Bearer header
// and loads the current user record, so role changes apply on the next request.
type SessionIdentityProvider struct {
	tokens     TokenValidator
	users      UserLookup
	cookieName string
}

// NewSessionIdentityProvider creates an identity provider backed by session tokens
func NewSessionIdentityProvider(tokens TokenValidator, users UserLookup, cookieName string) *SessionIdentityProvider {
	return &SessionIdentityProvider{
		tokens:     tokens,
		users:      users,
		cookieName: cookieName,
	}
}

// CurrentPrincipal implements IdentityProvider
func (p *SessionIdentityProvider) CurrentPrincipal(c *gin.Context) (*Principal, error) {
	tokenString := p.tokenFromRequest(c)
	if tokenString == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	claims, err := p.tokens.ValidateJWT(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := p.users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	return &Principal{User: user}, nil
}

func (p *SessionIdentityProvider) tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(p.cookieName); err == nil {
		return cookie
	}
	return ""
}
