package auth

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ProviderGitHub is the only login provider wired today
const ProviderGitHub = "github"

// AuthConfig holds all authentication configuration for the application
type AuthConfig struct {
	JWTSecret   string                    `yaml:"jwt_secret" json:"jwt_secret" mapstructure:"jwt_secret"`
	RedirectURL string                    `yaml:"redirect_url" json:"redirect_url" mapstructure:"redirect_url"`
	FrontendURL string                    `yaml:"frontend_url" json:"frontend_url" mapstructure:"frontend_url"`
	Providers   map[string]ProviderConfig `yaml:"providers" json:"providers" mapstructure:"providers"`
}

// ProviderConfig holds configuration for a specific provider
type ProviderConfig struct {
	ClientID          string `yaml:"client_id" json:"client_id" mapstructure:"client_id"`
	ClientSecret      string `yaml:"client_secret" json:"client_secret" mapstructure:"client_secret"`
	EnterpriseBaseURL string `yaml:"enterprise_base_url,omitempty" json:"enterprise_base_url,omitempty" mapstructure:"enterprise_base_url"`
}

// SessionConfig controls the session cookie issued after login
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// LoadAuthConfig loads and validates authentication configuration
func LoadAuthConfig(configPath string) (*AuthConfig, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("auth")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setAuthDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading auth config file: %w", err)
		}
	}

	var config AuthConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling auth config: %w", err)
	}
	if config.Providers == nil {
		config.Providers = make(map[string]ProviderConfig)
	}

	config = overrideFromEnvironment(config)

	// The JWT secret may still be supplied by the application config, so only providers are checked here
	if err := config.validateProviders(); err != nil {
		return nil, fmt.Errorf("auth config validation failed: %w", err)
	}

	return &config, nil
}

// GetProvider returns the configuration for a specific provider
func (c *AuthConfig) GetProvider(provider string) (*ProviderConfig, error) {
	providerConfig, exists := c.Providers[provider]
	if !exists || providerConfig.ClientID == "" {
		return nil, fmt.Errorf("provider '%s' not found", provider)
	}

	return &providerConfig, nil
}

// ValidateConfig validates the authentication configuration.
// Providers are optional: without one the login routes answer 503.
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.RedirectURL == "" {
		return fmt.Errorf("redirect URL is required")
	}

	return c.validateProviders()
}

func (c *AuthConfig) validateProviders() error {
	for providerName, provider := range c.Providers {
		if provider.ClientID == "" && provider.ClientSecret == "" {
			continue
		}
		if provider.ClientID == "" {
			return fmt.Errorf("client_id is required for provider '%s'", providerName)
		}
		if provider.ClientSecret == "" {
			return fmt.Errorf("client_secret is required for provider '%s'", providerName)
		}
	}

	return nil
}

// CallbackURL is the OAuth redirect target registered with the provider
func (c *AuthConfig) CallbackURL() string {
	return strings.TrimRight(c.RedirectURL, "/") + "/api/callback"
}

// PostLoginURL is where the browser lands after login or logout
func (c *AuthConfig) PostLoginURL() string {
	if c.FrontendURL == "" {
		return "/"
	}
	return c.FrontendURL
}

func setAuthDefaults(v *viper.Viper) {
	v.SetDefault("redirect_url", "http://localhost:5000")
	v.SetDefault("frontend_url", "/")
}

// overrideFromEnvironment applies environment variables over file values
func overrideFromEnvironment(config AuthConfig) AuthConfig {
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.JWTSecret = jwtSecret
	}
	if redirectURL := os.Getenv("AUTH_REDIRECT_URL"); redirectURL != "" {
		config.RedirectURL = redirectURL
	}
	if frontendURL := os.Getenv("AUTH_FRONTEND_URL"); frontendURL != "" {
		config.FrontendURL = frontendURL
	}

	provider := config.Providers[ProviderGitHub]
	if clientID := os.Getenv("GITHUB_CLIENT_ID"); clientID != "" {
		provider.ClientID = clientID
	}
	if clientSecret := os.Getenv("GITHUB_CLIENT_SECRET"); clientSecret != "" {
		provider.ClientSecret = clientSecret
	}
	if baseURL := os.Getenv("GITHUB_ENTERPRISE_BASE_URL"); baseURL != "" {
		provider.EnterpriseBaseURL = baseURL
	}
	provider.ClientID = expandEnv(provider.ClientID)
	provider.ClientSecret = expandEnv(provider.ClientSecret)
	if provider != (ProviderConfig{}) {
		config.Providers[ProviderGitHub] = provider
	}

	return config
}

// expandEnv resolves a whole-value "${VAR}" reference
func expandEnv(value string) string {
	if len(value) > 3 && strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		if envValue := os.Getenv(value[2 : len(value)-1]); envValue != "" {
			return envValue
		}
	}
	return value
}
