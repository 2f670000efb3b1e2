package marketplace

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Errors for marketplace client configuration
var (
	ErrConfigMissingBaseURL = errors.New("marketplace: base URL is required")
	ErrConfigInvalidBaseURL = errors.New("marketplace: base URL must be an absolute http(s) URL")
	ErrConfigMissingAPIKey  = errors.New("marketplace: API key is required")
)

// Config holds the connection settings of the marketplace API
type Config struct {
	// BaseURL is the scheme and host (plus optional path prefix) every endpoint is appended to
	BaseURL string
	// APIKey is sent verbatim in the Authorization header
	APIKey string
	// UserAgent identifies the tool, e.g. wunder/1.2.0
	UserAgent string
	// Timeout bounds a whole request including the body; 0 disables it
	Timeout time.Duration
}

// UserAgent returns the User-Agent value for a build version
func UserAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return "wunder/" + version
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrConfigInvalidBaseURL
	}
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.UserAgent == "" {
		c.UserAgent = UserAgent("")
	}
	return nil
}
