package auth

import (
	"crypto/subtle"
	"net/http"
	"net/url"

	apperrors "scrim-portal-backend/internal/errors"
	"scrim-portal-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	stateCookieName   = "oauth_state"
	stateCookieMaxAge = 600
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service *AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles GET /api/login
// @Summary Start login
// @Description Redirect the browser to the identity provider
// @Tags authentication
// @Success 302 {string} string "Redirect to the provider authorization URL"
// @Failure 503 {object} map[string]interface{} "Login provider not configured"
// @Router /api/login [get]
func (h *AuthHandler) Login(c *gin.Context) {
	state, err := h.service.GenerateState()
	if err != nil {
		logger.WithContext(c.Request.Context()).WithError(err).Error("Failed to generate OAuth state")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate state parameter"})
		return
	}

	authURL, err := h.service.LoginURL(state)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	h.setCookie(c, stateCookieName, state, stateCookieMaxAge)
	c.Redirect(http.StatusFound, authURL)
}

// Callback handles GET /api/callback
// @Summary Complete login
// @Description OAuth callback: records the user, sets the session cookie and redirects to the app
// @Tags authentication
// @Param code query string true "OAuth authorization code"
// @Param state query string true "OAuth state parameter"
// @Param error query string false "OAuth error from the provider"
// @Success 302 {string} string "Redirect to the app"
// @Failure 400 {object} map[string]interface{} "Missing code or state mismatch"
// @Failure 401 {object} map[string]interface{} "Code exchange failed"
// @Router /api/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	log := logger.WithContext(c.Request.Context())

	if errorParam := c.Query("error"); errorParam != "" {
		log.WithField("oauth_error", errorParam).Warn("Provider returned an OAuth error")
		h.clearCookie(c, stateCookieName)
		c.Redirect(http.StatusFound, withQuery(h.service.PostLoginURL(), "error", errorParam))
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code is required"})
		return
	}

	expected, err := c.Cookie(stateCookieName)
	state := c.Query("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrInvalidOAuthState.Error()})
		return
	}
	h.clearCookie(c, stateCookieName)

	user, token, err := h.service.CompleteLogin(c.Request.Context(), code)
	if err != nil {
		switch {
		case apperrors.IsAuthentication(err):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case apperrors.IsConfiguration(err):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			log.WithError(err).Error("Login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	session := h.service.Session()
	h.setCookie(c, session.CookieName, token, int(session.TTL.Seconds()))
	log.WithField("user", user.ID).Info("User logged in")
	c.Redirect(http.StatusFound, h.service.PostLoginURL())
}

// Logout handles GET /api/logout
// @Summary Log out
// @Description Clear the session cookie and redirect to the app
// @Tags authentication
// @Success 302 {string} string "Redirect to the app"
// @Router /api/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearCookie(c, h.service.Session().CookieName)
	c.Redirect(http.StatusFound, h.service.PostLoginURL())
}

// CurrentUser handles GET /api/auth/user
// @Summary Current user
// @Description Returns the authenticated user, or null for anonymous callers
// @Tags authentication
// @Produce json
// @Success 200 {object} models.User "Authenticated user or null"
// @Router /api/auth/user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, principal.User)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.service.Session().Secure, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context, name string) {
	h.setCookie(c, name, "", -1)
}

func withQuery(target, key, value string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
