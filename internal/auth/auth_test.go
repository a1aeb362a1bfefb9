package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"scrim-portal-backend/internal/database/models"
	apperrors "scrim-portal-backend/internal/errors"
	"scrim-portal-backend/internal/mocks"
	"scrim-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"
)

const testCookie = "scrim_session"

func testConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret:   "test-signing-key",
		RedirectURL: "http://localhost:5000",
		FrontendURL: "http://localhost:5173/",
		Providers: map[string]ProviderConfig{
			ProviderGitHub: {ClientID: "client-id", ClientSecret: "client-secret"},
		},
	}
}

func testSession() SessionConfig {
	return SessionConfig{CookieName: testCookie, TTL: time.Hour}
}

type stubProvider struct {
	profile     *UserProfile
	exchangeErr error
}

func (p *stubProvider) AuthCodeURL(state string) string {
	return "https://github.com/login/oauth/authorize?state=" + url.QueryEscape(state)
}

func (p *stubProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return &oauth2.Token{AccessToken: "gho_" + code}, nil
}

func (p *stubProvider) UserProfile(ctx context.Context, token *oauth2.Token) (*UserProfile, error) {
	return p.profile, nil
}

type stubIdentity struct {
	principal *Principal
	err       error
}

func (s *stubIdentity) CurrentPrincipal(c *gin.Context) (*Principal, error) {
	return s.principal, s.err
}

type stubUsers map[string]*models.User

func (s stubUsers) GetByID(id string) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func TestAuthConfig(t *testing.T) {
	t.Run("valid config structure", func(t *testing.T) {
		config := testConfig()
		assert.NoError(t, config.ValidateConfig())
		assert.Equal(t, "http://localhost:5000/api/callback", config.CallbackURL())
		assert.Equal(t, "http://localhost:5173/", config.PostLoginURL())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		config := testConfig()
		config.JWTSecret = ""
		err := config.ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is required")
	})

	t.Run("missing redirect url", func(t *testing.T) {
		config := testConfig()
		config.RedirectURL = ""
		err := config.ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redirect URL is required")
	})

	t.Run("half configured provider", func(t *testing.T) {
		config := testConfig()
		config.Providers[ProviderGitHub] = ProviderConfig{ClientID: "only-id"}
		err := config.ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "client_secret is required")
	})

	t.Run("no provider is allowed", func(t *testing.T) {
		config := testConfig()
		config.Providers = map[string]ProviderConfig{}
		assert.NoError(t, config.ValidateConfig())
		assert.Nil(t, NewProvider(config))
	})
}

func TestLoadAuthConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
redirect_url: https://api.scrims.gg
frontend_url: https://scrims.gg/
providers:
  github:
    client_id: ${SCRIM_TEST_GH_ID}
    client_secret: file-secret
`), 0o600))

	t.Setenv("SCRIM_TEST_GH_ID", "from-env")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("GITHUB_CLIENT_ID", "")
	t.Setenv("GITHUB_CLIENT_SECRET", "")
	t.Setenv("AUTH_REDIRECT_URL", "")

	config, err := LoadAuthConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", config.JWTSecret)
	assert.Equal(t, "https://api.scrims.gg/api/callback", config.CallbackURL())
	provider, err := config.GetProvider(ProviderGitHub)
	require.NoError(t, err)
	assert.Equal(t, "from-env", provider.ClientID)
	assert.Equal(t, "file-secret", provider.ClientSecret)
	assert.NotNil(t, NewProvider(config))
}

func TestGitHubClientConfig(t *testing.T) {
	t.Run("github.com endpoints", func(t *testing.T) {
		client := NewGitHubClient(&ProviderConfig{ClientID: "id", ClientSecret: "secret"}, "http://localhost:5000/api/callback")
		cfg := client.GetOAuth2Config("http://localhost:5000/api/callback")
		assert.Equal(t, "https://github.com/login/oauth/authorize", cfg.Endpoint.AuthURL)
		assert.NoError(t, client.ValidateConfig())

		loginURL, err := url.Parse(client.AuthCodeURL("xyz"))
		require.NoError(t, err)
		assert.Equal(t, "xyz", loginURL.Query().Get("state"))
		assert.Equal(t, "http://localhost:5000/api/callback", loginURL.Query().Get("redirect_uri"))
	})

	t.Run("enterprise endpoints", func(t *testing.T) {
		client := NewGitHubClient(&ProviderConfig{ClientID: "id", ClientSecret: "secret", EnterpriseBaseURL: "https://git.example.com/"}, "")
		cfg := client.GetOAuth2Config("")
		assert.Equal(t, "https://git.example.com/login/oauth/access_token", cfg.Endpoint.TokenURL)
	})

	t.Run("missing credentials", func(t *testing.T) {
		client := NewGitHubClient(&ProviderConfig{}, "")
		assert.Error(t, client.ValidateConfig())
	})
}

func TestPickEmail(t *testing.T) {
	emails := []*github.UserEmail{
		{Email: github.String("old@scrims.gg"), Verified: github.Bool(true)},
		{Email: github.String("main@scrims.gg"), Primary: github.Bool(true), Verified: github.Bool(true)},
	}
	assert.Equal(t, "main@scrims.gg", pickEmail(emails, "public@scrims.gg"))
	assert.Equal(t, "old@scrims.gg", pickEmail(emails[:1], "public@scrims.gg"))
	assert.Equal(t, "public@scrims.gg", pickEmail(nil, "public@scrims.gg"))
}

func TestToLoginProfile(t *testing.T) {
	profile := toLoginProfile(&UserProfile{ID: "github:1", Username: "alice", Name: "Alice Liddell", Email: "alice@scrims.gg"})
	assert.Equal(t, "github:1", profile.ID)
	assert.Equal(t, "Alice", *profile.FirstName)
	assert.Equal(t, "Liddell", *profile.LastName)
	assert.Equal(t, "alice@scrims.gg", *profile.Email)
	assert.Nil(t, profile.ProfileImageURL)

	anonymous := toLoginProfile(&UserProfile{ID: "github:2", Username: "bob"})
	assert.Equal(t, "bob", *anonymous.FirstName)
	assert.Nil(t, anonymous.LastName)
	assert.Nil(t, anonymous.Email)
}

func TestSessionTokens(t *testing.T) {
	svc, err := NewAuthService(testConfig(), testSession(), nil, nil)
	require.NoError(t, err)
	user := &models.User{ID: "github:42", Role: models.RoleUser}

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateJWT(user)
		require.NoError(t, err)

		claims, err := svc.ValidateJWT(token)
		require.NoError(t, err)
		assert.Equal(t, "github:42", claims.UserID)
		assert.Equal(t, "github:42", claims.Subject)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := svc.GenerateJWT(user)
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { svc.now = time.Now }()

		_, err = svc.ValidateJWT(token)
		assert.True(t, apperrors.IsAuthentication(err))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := testConfig()
		other.JWTSecret = "another-key"
		otherSvc, err := NewAuthService(other, testSession(), nil, nil)
		require.NoError(t, err)
		token, err := otherSvc.GenerateJWT(user)
		require.NoError(t, err)

		_, err = svc.ValidateJWT(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateJWT("not-a-token")
		assert.True(t, apperrors.IsAuthentication(err))
	})

	t.Run("state is random", func(t *testing.T) {
		a, err := svc.GenerateState()
		require.NoError(t, err)
		b, err := svc.GenerateState()
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestNewAuthServiceValidation(t *testing.T) {
	_, err := NewAuthService(testConfig(), SessionConfig{CookieName: testCookie}, nil, nil)
	assert.Error(t, err)

	bad := testConfig()
	bad.JWTSecret = ""
	_, err = NewAuthService(bad, testSession(), nil, nil)
	assert.Error(t, err)
}

func TestSessionIdentityProvider(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, err := NewAuthService(testConfig(), testSession(), nil, nil)
	require.NoError(t, err)

	admin := &models.User{ID: "github:1", Role: models.RoleAdmin}
	identity := NewSessionIdentityProvider(svc, stubUsers{admin.ID: admin}, testCookie)
	token, err := svc.GenerateJWT(admin)
	require.NoError(t, err)

	resolve := func(mutate func(r *http.Request)) (*Principal, error) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		mutate(c.Request)
		return identity.CurrentPrincipal(c)
	}

	t.Run("cookie", func(t *testing.T) {
		p, err := resolve(func(r *http.Request) { r.AddCookie(&http.Cookie{Name: testCookie, Value: token}) })
		require.NoError(t, err)
		assert.True(t, p.IsAdmin())
		assert.Equal(t, "github:1", p.UserID())
	})

	t.Run("bearer header", func(t *testing.T) {
		p, err := resolve(func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) })
		require.NoError(t, err)
		assert.Equal(t, "github:1", p.UserID())
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := resolve(func(r *http.Request) {})
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost, err := svc.GenerateJWT(&models.User{ID: "github:404"})
		require.NoError(t, err)
		_, err = resolve(func(r *http.Request) { r.AddCookie(&http.Cookie{Name: testCookie, Value: ghost}) })
		assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
	})
}

func newGatedRouter(identity IdentityProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(identity)
	router := gin.New()
	router.Use(m.Authenticate())
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"user": GetUserID(c)}) }
	router.GET("/public", ok)
	router.GET("/private", m.RequireAuth(), ok)
	router.GET("/admin", m.RequireAdmin(), ok)
	return router
}

func TestAuthMiddleware(t *testing.T) {
	testCases := []struct {
		name     string
		identity *stubIdentity
		path     string
		expected int
	}{
		{"anonymous public", &stubIdentity{err: apperrors.ErrUnauthenticated}, "/public", http.StatusOK},
		{"anonymous private", &stubIdentity{err: apperrors.ErrUnauthenticated}, "/private", http.StatusUnauthorized},
		{"anonymous admin", &stubIdentity{err: apperrors.ErrUnauthenticated}, "/admin", http.StatusUnauthorized},
		{"invalid session private", &stubIdentity{err: apperrors.ErrInvalidSession}, "/private", http.StatusUnauthorized},
		{"lookup failure public", &stubIdentity{err: errors.New("db down")}, "/public", http.StatusInternalServerError},
		{"lookup failure private", &stubIdentity{err: errors.New("db down")}, "/private", http.StatusInternalServerError},
		{"user private", &stubIdentity{principal: &Principal{User: &models.User{ID: "u", Role: models.RoleUser}}}, "/private", http.StatusOK},
		{"user admin", &stubIdentity{principal: &Principal{User: &models.User{ID: "u", Role: models.RoleUser}}}, "/admin", http.StatusForbidden},
		{"admin admin", &stubIdentity{principal: &Principal{User: &models.User{ID: "a", Role: models.RoleAdmin}}}, "/admin", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newGatedRouter(tc.identity)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.expected, w.Code)
		})
	}

	t.Run("forbidden message", func(t *testing.T) {
		router := newGatedRouter(&stubIdentity{principal: &Principal{User: &models.User{ID: "u", Role: models.RoleUser}}})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.JSONEq(t, `{"error":"admin role required"}`, w.Body.String())
	})
}

type failingUsers struct{ err error }

func (f failingUsers) GetByID(id string) (*models.User, error) {
	return nil, f.err
}

func TestAuthenticateStoreFailure(t *testing.T) {
	svc, err := NewAuthService(testConfig(), testSession(), nil, nil)
	require.NoError(t, err)
	token, err := svc.GenerateJWT(&models.User{ID: "github:7"})
	require.NoError(t, err)

	identity := NewSessionIdentityProvider(svc, failingUsers{err: errors.New("dial tcp 127.0.0.1:5432: connection refused")}, testCookie)
	router := newGatedRouter(identity)

	t.Run("valid session answers 500 instead of logging the caller out", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})

	t.Run("no session never touches the store", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func newAuthRouter(t *testing.T, provider OAuthProvider, users service.UserServiceInterface) (*gin.Engine, *AuthService) {
	gin.SetMode(gin.TestMode)
	svc, err := NewAuthService(testConfig(), testSession(), provider, users)
	require.NoError(t, err)

	h := NewAuthHandler(svc)
	m := NewAuthMiddleware(NewSessionIdentityProvider(svc, users, testCookie))
	router := gin.New()
	router.Use(m.Authenticate())
	router.GET("/api/login", h.Login)
	router.GET("/api/callback", h.Callback)
	router.GET("/api/logout", h.Logout)
	router.GET("/api/auth/user", h.CurrentUser)
	return router, svc
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserServiceInterface(ctrl)
	provider := &stubProvider{profile: &UserProfile{ID: "github:7", Username: "alice", Email: "alice@scrims.gg"}}
	router, _ := newAuthRouter(t, provider, users)

	// login sets a state cookie and redirects to the provider
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/login", nil))
	require.Equal(t, http.StatusFound, w.Code)
	stateCookie := findCookie(w, stateCookieName)
	require.NotNil(t, stateCookie)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "https://github.com/login/oauth/authorize"))

	// the callback records the user and issues the session cookie
	alice := &models.User{ID: "github:7", Role: models.RoleUser}
	users.EXPECT().SyncLogin(gomock.Any()).DoAndReturn(func(p *service.LoginProfile) (*models.User, error) {
		assert.Equal(t, "github:7", p.ID)
		assert.Equal(t, "alice@scrims.gg", *p.Email)
		return alice, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/api/callback?code=abc&state="+url.QueryEscape(stateCookie.Value), nil)
	req.AddCookie(stateCookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:5173/", w.Header().Get("Location"))
	session := findCookie(w, testCookie)
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	// the session cookie identifies the user
	users.EXPECT().GetByID("github:7").Return(alice, nil)
	req = httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"github:7"`)

	// logout clears it
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/logout", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	cleared := findCookie(w, testCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)
}

func TestCallbackRejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserServiceInterface(ctrl)
	users.EXPECT().SyncLogin(gomock.Any()).Times(0)

	t.Run("state mismatch", func(t *testing.T) {
		router, _ := newAuthRouter(t, &stubProvider{}, users)
		req := httptest.NewRequest(http.MethodGet, "/api/callback?code=abc&state=forged", nil)
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid OAuth state")
	})

	t.Run("missing state cookie", func(t *testing.T) {
		router, _ := newAuthRouter(t, &stubProvider{}, users)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/callback?code=abc&state=s", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing code", func(t *testing.T) {
		router, _ := newAuthRouter(t, &stubProvider{}, users)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/callback?state=s", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("exchange failure", func(t *testing.T) {
		router, _ := newAuthRouter(t, &stubProvider{exchangeErr: errors.New("bad_verification_code")}, users)
		req := httptest.NewRequest(http.MethodGet, "/api/callback?code=abc&state=s", nil)
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "s"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("provider error redirects", func(t *testing.T) {
		router, _ := newAuthRouter(t, &stubProvider{}, users)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/callback?error=access_denied", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "http://localhost:5173/?error=access_denied", w.Header().Get("Location"))
	})
}

func TestLoginWithoutProvider(t *testing.T) {
	router, _ := newAuthRouter(t, nil, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/login", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "login provider is not configured")
}

func TestCurrentUserAnonymous(t *testing.T) {
	router, _ := newAuthRouter(t, nil, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/user", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}
