package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// DefaultMaxClients bounds how many client buckets are kept at once
const DefaultMaxClients = 10000

// RateLimiter keeps one token bucket per client IP.
// Buckets live in a bounded LRU cache; an evicted client simply starts over
// with a full bucket.
type RateLimiter struct {
	buckets *lru.Cache[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
	window  time.Duration
	mu      sync.Mutex
}

// NewRateLimiter allows requests per window for every client, with bursts up
// to the full per-window budget
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return NewRateLimiterWithSize(requests, window, DefaultMaxClients)
}

// NewRateLimiterWithSize is NewRateLimiter with an explicit client table size
func NewRateLimiterWithSize(requests int, window time.Duration, maxClients int) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	cache, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		slog.Warn("[RATE-LIMIT] invalid client table size, using default",
			"size", maxClients, "error", err)
		cache, _ = lru.New[string, *rate.Limiter](DefaultMaxClients)
	}

	return &RateLimiter{
		buckets: cache,
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   requests,
		window:  window,
	}
}

// Middleware rejects requests over budget with 429 and a Retry-After header
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := getClientIP(r)

		reservation := rl.bucket(clientID).Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"RateLimitExceeded","message":"Rate limit exceeded. Please try again later."}` + "\n"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Allow reports whether clientID may make a request now, consuming a token
func (rl *RateLimiter) Allow(clientID string) bool {
	return rl.bucket(clientID).Allow()
}

// Clients returns how many client buckets are currently tracked
func (rl *RateLimiter) Clients() int {
	return rl.buckets.Len()
}

func (rl *RateLimiter) bucket(clientID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.buckets.Get(clientID); ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.buckets.Add(clientID, limiter)
	return limiter
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (if behind proxy); first hop is the client
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
