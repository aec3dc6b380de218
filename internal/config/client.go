package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Client validation errors
var (
	// ErrInvalidBaseURL is returned when BaseURL is not an absolute http(s) URL
	ErrInvalidBaseURL = errors.New("BaseURL must be an absolute http or https URL")
	// ErrInvalidPageSize is returned when PageSize is not positive
	ErrInvalidPageSize = errors.New("PageSize must be positive")
	// ErrInvalidThreshold is returned when LoadMoreThreshold is outside (0, 1]
	ErrInvalidThreshold = errors.New("LoadMoreThreshold must be in (0, 1]")
	// ErrInvalidUserID is returned when UserID is negative
	ErrInvalidUserID = errors.New("UserID cannot be negative")
	// ErrInvalidTimeout is returned when HTTPTimeout is negative
	ErrInvalidTimeout = errors.New("HTTPTimeout cannot be negative")
	// ErrInvalidLogFormat is returned for anything other than text or json
	ErrInvalidLogFormat = errors.New("LogFormat must be text or json")
)

// DefaultBaseURL is the public JSONPlaceholder API
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Client holds the blog client settings.
type Client struct {
	// BaseURL is the Remote Post Store root; /posts is appended to it.
	BaseURL string

	// PageSize is how many posts each LoadMore reveals.
	PageSize int

	// LoadMoreThreshold is the fraction of the revealed list, counted from the
	// end, inside which scrolling triggers LoadMore.
	LoadMoreThreshold float64

	// UserID is attached to posts created from this client.
	UserID int

	// HTTPTimeout bounds each request. Zero means no client-side timeout.
	HTTPTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// DefaultClient returns the client defaults
func DefaultClient() Client {
	return Client{
		BaseURL:           DefaultBaseURL,
		PageSize:          5,
		LoadMoreThreshold: 0.3,
		UserID:            1,
		HTTPTimeout:       0,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Validate checks the configuration for invalid values.
func (c Client) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: got %q", ErrInvalidBaseURL, c.BaseURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.PageSize)
	}
	if c.LoadMoreThreshold <= 0 || c.LoadMoreThreshold > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, c.LoadMoreThreshold)
	}
	if c.UserID < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidUserID, c.UserID)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTimeout, c.HTTPTimeout)
	}
	return validateLogFormat(c.LogFormat)
}

// ClientFromEnv creates a Client from environment variables.
// Uses defaults for any missing or invalid values.
//
// Environment variables:
//   - BLOGSYNC_BASE_URL: Remote Post Store root (default: https://jsonplaceholder.typicode.com)
//   - BLOGSYNC_PAGE_SIZE: posts per page (default: 5)
//   - BLOGSYNC_LOAD_MORE_THRESHOLD: trigger fraction in (0, 1] (default: 0.3)
//   - BLOGSYNC_USER_ID: author id for new posts (default: 1)
//   - BLOGSYNC_HTTP_TIMEOUT_SECONDS: request timeout, 0 to disable (default: 0)
//   - BLOGSYNC_LOG_LEVEL: debug, info, warn, error (default: info)
//   - BLOGSYNC_LOG_FORMAT: text or json (default: text)
func ClientFromEnv() Client {
	cfg := DefaultClient()

	if v := envString("BLOGSYNC_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}

	cfg.PageSize = envInt("BLOGSYNC_PAGE_SIZE", cfg.PageSize, positive)
	cfg.LoadMoreThreshold = envFloat("BLOGSYNC_LOAD_MORE_THRESHOLD", cfg.LoadMoreThreshold, func(f float64) bool {
		return f > 0 && f <= 1
	})
	cfg.UserID = envInt("BLOGSYNC_USER_ID", cfg.UserID, nonNegative)

	seconds := envInt("BLOGSYNC_HTTP_TIMEOUT_SECONDS", int(cfg.HTTPTimeout.Seconds()), nonNegative)
	cfg.HTTPTimeout = time.Duration(seconds) * time.Second

	if v := envString("BLOGSYNC_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := envString("BLOGSYNC_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg
}

func validateLogFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, format)
	}
}
