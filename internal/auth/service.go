package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"scrim-portal-backend/internal/database/models"
	apperrors "scrim-portal-backend/internal/errors"
	"scrim-portal-backend/internal/service"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "scrim-portal-backend"

// AuthService issues and verifies session tokens and drives the login flow
type AuthService struct {
	config   *AuthConfig
	session  SessionConfig
	provider OAuthProvider
	users    service.UserServiceInterface
	now      func() time.Time
}

// SessionClaims represents JWT session token claims
type SessionClaims struct {
	UserID               string `json:"uid" example:"github:583231"`
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// NewAuthService creates a new authentication service.
// provider may be nil, in which case the login routes report the provider as not configured.
func NewAuthService(config *AuthConfig, session SessionConfig, provider OAuthProvider, users service.UserServiceInterface) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	if session.TTL <= 0 {
		return nil, fmt.Errorf("invalid auth config: session TTL must be positive")
	}
	if session.CookieName == "" {
		return nil, fmt.Errorf("invalid auth config: session cookie name is required")
	}

	return &AuthService{
		config:   config,
		session:  session,
		provider: provider,
		users:    users,
		now:      time.Now,
	}, nil
}

// NewProvider builds the configured login provider, or returns nil when none is configured
func NewProvider(config *AuthConfig) OAuthProvider {
	providerConfig, err := config.GetProvider(ProviderGitHub)
	if err != nil {
		return nil
	}
	return NewGitHubClient(providerConfig, config.CallbackURL())
}

// Session returns the session cookie settings
func (s *AuthService) Session() SessionConfig {
	return s.session
}

// PostLoginURL is where the browser is sent after login or logout
func (s *AuthService) PostLoginURL() string {
	return s.config.PostLoginURL()
}

// LoginURL returns the provider authorization URL carrying state
func (s *AuthService) LoginURL(state string) (string, error) {
	if s.provider == nil {
		return "", apperrors.ErrProviderNotEnabled
	}
	return s.provider.AuthCodeURL(state), nil
}

// CompleteLogin exchanges the authorization code, records the user and issues a session token
func (s *AuthService) CompleteLogin(ctx context.Context, code string) (*models.User, string, error) {
	if s.provider == nil {
		return nil, "", apperrors.ErrProviderNotEnabled
	}

	token, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, "", apperrors.NewAuthenticationError(fmt.Sprintf("login failed: %v", err))
	}

	profile, err := s.provider.UserProfile(ctx, token)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user profile: %w", err)
	}

	user, err := s.users.SyncLogin(toLoginProfile(profile))
	if err != nil {
		return nil, "", err
	}

	sessionToken, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, sessionToken, nil
}

// GenerateJWT creates a session token for the user
func (s *AuthService) GenerateJWT(user *models.User) (string, error) {
	now := s.now()
	claims := &SessionClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.session.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateJWT validates and parses a session token
func (s *AuthService) ValidateJWT(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, apperrors.ErrInvalidSession
	}
	return claims, nil
}

// GenerateState generates a random state parameter for OAuth2
func (s *AuthService) GenerateState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

func toLoginProfile(p *UserProfile) *service.LoginProfile {
	profile := &service.LoginProfile{ID: p.ID}
	if p.Email != "" {
		email := p.Email
		profile.Email = &email
	}
	first, last := splitName(p.Name)
	if first == "" {
		first = p.Username
	}
	if first != "" {
		profile.FirstName = &first
	}
	if last != "" {
		profile.LastName = &last
	}
	if p.AvatarURL != "" {
		avatar := p.AvatarURL
		profile.ProfileImageURL = &avatar
	}
	return profile
}
