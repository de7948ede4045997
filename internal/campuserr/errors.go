// Package campuserr defines the error taxonomy shared across the Campus Assistant.
package campuserr

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrStoreUnavailable indicates the data store is not configured or unreachable.
	ErrStoreUnavailable = errors.New("data store unavailable")
	// ErrNotFound indicates a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAIGeneration indicates the AI text generator failed. Callers must
	// degrade to fallback text and never surface this to the client.
	ErrAIGeneration = errors.New("ai generation failed")
)

// ValidationError represents a rejected input (empty query, unknown category,
// missing or unknown field). It maps to a 400 response and is not logged as a
// failure.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with a formatted message.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// HTTPStatus maps an error to its HTTP status code equivalent.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
