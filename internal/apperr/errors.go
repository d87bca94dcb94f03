// Package apperr defines shared sentinel errors used across the client
// and server layers. Callers should use errors.Is to match these values.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate-email collision.
	ErrConflict = errors.New("email already exists")

	// ErrUnauthorized indicates a missing or invalid session.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports a client-side validation failure for a single
// form field. It blocks submission and never reaches the store.
type ValidationError struct {
	// Field is the form field name ("name", "email", "salary", ...).
	Field string
	// Reason is the human-readable inline message.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
