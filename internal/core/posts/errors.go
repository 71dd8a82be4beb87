package posts

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a post is not found by id
	ErrNotFound = errors.New("post not found")

	// ErrNotOwner is returned when a principal other than the post's
	// author attempts an edit. The web layer maps this to a redirect to
	// the post's readable view rather than an error page.
	ErrNotOwner = errors.New("only the author may edit this post")

	// ErrAuthorRequired is returned when a create request carries no
	// resolvable author
	ErrAuthorRequired = errors.New("post author is required")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
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

// ValidationField returns the offending field name, or "" if err is not
// a validation error. Handlers use it for field-level form feedback.
func ValidationField(err error) string {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Field
	}
	return ""
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
