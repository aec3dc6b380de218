package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post does not exist
	ErrNotFound = errors.New("post not found")

	// ErrInvalidContent is returned for general content violations
	ErrInvalidContent = errors.New("invalid post content")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidContent for every validation failure
func (e *ValidationError) Unwrap() error {
	return ErrInvalidContent
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// NotFoundError represents a post lookup that found nothing
type NotFoundError struct {
	ID PostID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("post not found: %s", e.ID)
}

// Unwrap lets errors.Is match ErrNotFound
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(id PostID) error {
	return &NotFoundError{ID: id}
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
