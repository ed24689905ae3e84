package transport

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL is where a locally started backend listens.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Config holds backend connection settings.
type Config struct {
	// BaseURL is the backend root, without a trailing slash.
	BaseURL string

	// AuthToken, when set, is sent as a bearer token.
	AuthToken string

	// Timeout bounds a single HTTP exchange. Plan generation can take a
	// while on the backend, so the default is generous.
	Timeout time.Duration

	// RateLimit is the client-side request rate in requests per second.
	// Zero disables limiting.
	RateLimit float64
	Burst     int

	Retry RetryConfig
}

// RetryConfig configures retries of idempotent requests.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   60 * time.Second,
		RateLimit: 5,
		Burst:     5,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides c with any STUDYGENIE_* backend variables that are
// set and parse.
func (c *Config) ApplyEnv() {
	if u := os.Getenv("STUDYGENIE_BASE_URL"); u != "" {
		c.BaseURL = u
	}
	if t := os.Getenv("STUDYGENIE_AUTH_TOKEN"); t != "" {
		c.AuthToken = t
	}
	if d, err := time.ParseDuration(os.Getenv("STUDYGENIE_TIMEOUT")); err == nil {
		c.Timeout = d
	}
	if r, err := strconv.ParseFloat(os.Getenv("STUDYGENIE_RATE_LIMIT"), 64); err == nil {
		c.RateLimit = r
	}
	if n, err := strconv.Atoi(os.Getenv("STUDYGENIE_RETRY_ATTEMPTS")); err == nil {
		c.Retry.MaxAttempts = n
	}
}

// Validate checks that the configuration can be used to build a gateway.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend URL %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend URL %q has no host", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %v", c.RateLimit)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
