package config

import (
	"errors"
	"fmt"
	"strconv"
)

// Storage backends for the development post store
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Store validation errors
var (
	// ErrInvalidPort is returned when Port is not a TCP port number
	ErrInvalidPort = errors.New("Port must be between 1 and 65535")
	// ErrInvalidBackend is returned for an unknown Backend
	ErrInvalidBackend = errors.New("Backend must be memory, postgres or s3")
	// ErrMissingDatabaseURL is returned when the postgres backend has no DatabaseURL
	ErrMissingDatabaseURL = errors.New("DatabaseURL is required for the postgres backend")
	// ErrMissingBucket is returned when the s3 backend has no S3Bucket
	ErrMissingBucket = errors.New("S3Bucket is required for the s3 backend")
	// ErrInvalidRateLimit is returned when RateLimitPerMinute is not positive
	ErrInvalidRateLimit = errors.New("RateLimitPerMinute must be positive")
	// ErrInvalidSeedCount is returned when SeedPosts is negative
	ErrInvalidSeedCount = errors.New("SeedPosts cannot be negative")
)

// Store holds the development post store settings.
type Store struct {
	Port    int
	Backend string

	// DatabaseURL is a lib/pq connection string; postgres backend only.
	DatabaseURL string

	// S3Bucket holds one object per post; s3 backend only.
	// Credentials and region come from the standard AWS environment.
	S3Bucket string

	// RateLimitPerMinute is the per-client request budget.
	RateLimitPerMinute int

	// AllowedOrigins feeds the CORS middleware. "*" allows any origin.
	AllowedOrigins []string

	// SeedPosts fills the memory backend with sample posts at startup.
	SeedPosts int

	LogLevel  string
	LogFormat string
}

// DefaultStore returns the store defaults
func DefaultStore() Store {
	return Store{
		Port:               8082,
		Backend:            BackendMemory,
		RateLimitPerMinute: 120,
		AllowedOrigins:     []string{"*"},
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// Addr returns the listen address for Port
func (s Store) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// Validate checks the configuration for invalid values.
// Backend specific fields are only required for their backend.
func (s Store) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, s.Port)
	}
	if s.RateLimitPerMinute <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRateLimit, s.RateLimitPerMinute)
	}
	if s.SeedPosts < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSeedCount, s.SeedPosts)
	}

	switch s.Backend {
	case BackendMemory:
	case BackendPostgres:
		if s.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	case BackendS3:
		if s.S3Bucket == "" {
			return ErrMissingBucket
		}
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidBackend, s.Backend)
	}

	return validateLogFormat(s.LogFormat)
}

// StoreFromEnv creates a Store from environment variables.
// Uses defaults for any missing or invalid values.
//
// Environment variables:
//   - POSTSTORE_PORT: listen port (default: 8082)
//   - POSTSTORE_BACKEND: memory, postgres or s3 (default: memory)
//   - DATABASE_URL: postgres connection string
//   - POSTSTORE_S3_BUCKET: bucket for the s3 backend
//   - POSTSTORE_RATE_LIMIT_PER_MINUTE: per-client budget (default: 120)
//   - POSTSTORE_ALLOWED_ORIGINS: comma separated CORS origins (default: *)
//   - POSTSTORE_SEED_POSTS: sample posts for the memory backend (default: 0)
//   - POSTSTORE_LOG_LEVEL, POSTSTORE_LOG_FORMAT: as for the client
func StoreFromEnv() Store {
	cfg := DefaultStore()

	cfg.Port = envInt("POSTSTORE_PORT", cfg.Port, func(n int) bool { return n > 0 && n <= 65535 })

	if v := envString("POSTSTORE_BACKEND"); v != "" {
		cfg.Backend = v
	}
	cfg.DatabaseURL = envString("DATABASE_URL")
	cfg.S3Bucket = envString("POSTSTORE_S3_BUCKET")

	cfg.RateLimitPerMinute = envInt("POSTSTORE_RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute, positive)

	if origins := splitList(envString("POSTSTORE_ALLOWED_ORIGINS")); len(origins) > 0 {
		cfg.AllowedOrigins = origins
	}

	cfg.SeedPosts = envInt("POSTSTORE_SEED_POSTS", cfg.SeedPosts, nonNegative)

	if v := envString("POSTSTORE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := envString("POSTSTORE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg
}
