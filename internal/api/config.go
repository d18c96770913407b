package api

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds gateway configuration.
type Config struct {
	// BaseURL is the API origin. Endpoint paths such as /users/login are
	// appended to it. Default: "http://localhost:3001".
	BaseURL string

	// Timeout bounds every request, including reading the body.
	// Default: 30s.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:3001",
		Timeout: 30 * time.Second,
	}
}

// Validate checks that the base URL is an absolute http(s) URL and that the
// timeout is positive.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL %q has no host", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
