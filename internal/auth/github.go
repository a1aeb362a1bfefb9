package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// OAuthProvider performs the authorization code flow against an identity provider
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	UserProfile(ctx context.Context, token *oauth2.Token) (*UserProfile, error)
}

// UserProfile represents the identity returned by the provider
type UserProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// GitHubClient wraps the GitHub API client with authentication support
type GitHubClient struct {
	config      *ProviderConfig
	oauthConfig *oauth2.Config
}

// NewGitHubClient creates a new GitHub login provider redirecting to callbackURL
func NewGitHubClient(config *ProviderConfig, callbackURL string) *GitHubClient {
	c := &GitHubClient{config: config}
	c.oauthConfig = c.GetOAuth2Config(callbackURL)
	return c
}

// AuthCodeURL returns the provider authorization URL for state
func (c *GitHubClient) AuthCodeURL(state string) string {
	return c.oauthConfig.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token
func (c *GitHubClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// UserProfile fetches the authenticated user's profile from the GitHub API
func (c *GitHubClient) UserProfile(ctx context.Context, token *oauth2.Token) (*UserProfile, error) {
	tc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	client, err := c.apiClient(tc)
	if err != nil {
		return nil, err
	}

	user, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("invalid access token")
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	// A private primary email is only visible through the emails endpoint
	emails, _, err := client.Users.ListEmails(ctx, nil)
	if err != nil {
		emails = []*github.UserEmail{}
	}

	return &UserProfile{
		ID:        ProviderGitHub + ":" + strconv.FormatInt(user.GetID(), 10),
		Username:  user.GetLogin(),
		Email:     pickEmail(emails, user.GetEmail()),
		Name:      user.GetName(),
		AvatarURL: user.GetAvatarURL(),
	}, nil
}

// pickEmail prefers the primary address, then any verified one, then the public profile email
func pickEmail(emails []*github.UserEmail, fallback string) string {
	for _, email := range emails {
		if email.GetPrimary() && email.GetVerified() {
			return email.GetEmail()
		}
	}
	for _, email := range emails {
		if email.GetVerified() {
			return email.GetEmail()
		}
	}
	return fallback
}

func (c *GitHubClient) apiClient(httpClient *http.Client) (*github.Client, error) {
	if c.config.EnterpriseBaseURL == "" {
		return github.NewClient(httpClient), nil
	}
	client, err := github.NewClient(httpClient).WithEnterpriseURLs(c.config.EnterpriseBaseURL, c.config.EnterpriseBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid enterprise base URL: %w", err)
	}
	return client, nil
}

// GetOAuth2Config returns the OAuth2 configuration for this GitHub client
func (c *GitHubClient) GetOAuth2Config(redirectURL string) *oauth2.Config {
	endpoint := oauth2.Endpoint{
		AuthURL:  "https://github.com/login/oauth/authorize",
		TokenURL: "https://github.com/login/oauth/access_token",
	}
	if base := strings.TrimRight(c.config.EnterpriseBaseURL, "/"); base != "" {
		endpoint = oauth2.Endpoint{
			AuthURL:  base + "/login/oauth/authorize",
			TokenURL: base + "/login/oauth/access_token",
		}
	}

	return &oauth2.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"read:user", "user:email"},
		Endpoint:     endpoint,
	}
}

// ValidateConfig validates the GitHub client configuration
func (c *GitHubClient) ValidateConfig() error {
	if c.config.ClientID == "" {
		return fmt.Errorf("client ID is required")
	}
	if c.config.ClientSecret == "" {
		return fmt.Errorf("client secret is required")
	}
	return nil
}

// splitName splits a display name into first and last name
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
