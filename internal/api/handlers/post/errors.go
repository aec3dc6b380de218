package post

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"Blogsync/internal/api/handlers"
	"Blogsync/internal/core/posts"

	"github.com/goccy/go-json"
)

// maxBodyBytes limits request bodies to 1MB
const maxBodyBytes = 1 << 20

// errBodyTooLarge is returned by decodeBody when the limit is hit
var errBodyTooLarge = errors.New("request body too large")

// decodeBody reads at most maxBodyBytes from r and decodes it into dst
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return err
	}
	return json.Unmarshal(raw, dst)
}

// writeDecodeError maps a decodeBody failure to 413 or 400
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		handlers.WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
			"Request body too large (max 1MB)")
		return
	}
	handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case posts.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case posts.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")

	default:
		// Don't leak internal error details to clients
		logger.Error("[POST-HANDLER] unexpected error", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
