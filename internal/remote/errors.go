package remote

import "errors"

// Typed errors for Remote Post Store responses.
// Callers use errors.Is() instead of matching status codes or messages.
var (
	// ErrBadRequest indicates the store rejected the payload (HTTP 400).
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound indicates the post does not exist (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the write conflicted with existing state (HTTP 409).
	ErrConflict = errors.New("conflict")

	// ErrPayloadTooLarge indicates the request body was too large (HTTP 413).
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrRateLimited indicates too many requests (HTTP 429).
	ErrRateLimited = errors.New("rate limited")

	// ErrServer indicates a 5xx response.
	ErrServer = errors.New("server error")

	// ErrUnexpectedStatus covers any other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrInvalidBaseURL is returned by NewClient for relative or non-http URLs.
	ErrInvalidBaseURL = errors.New("base URL must be an absolute http or https URL")
)

// IsNotFound reports whether err came from a 404 response
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable returns true for rate limiting and server-side failures
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServer)
}
