package routes

import (
	"log/slog"
	"net/http"
	"time"

	"Blogsync/internal/api/middleware"
	"Blogsync/internal/core/posts"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig assembles the development post store HTTP surface
type RouterConfig struct {
	Service            posts.Service
	Logger             *slog.Logger
	AllowedOrigins     []string
	RateLimitPerMinute int

	// RequestLogging enables chi's request logger
	RequestLogging bool
}

// NewRouter builds the chi router with middleware, /health and /posts
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if cfg.RequestLogging {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	if cfg.RateLimitPerMinute > 0 {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, 1*time.Minute)
		r.Use(rateLimiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	RegisterPostRoutes(r, cfg.Service, cfg.Logger)

	return r
}

// corsMiddleware allows the methods of the /posts resource from allowedOrigins
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-Id",
		},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	})
}
