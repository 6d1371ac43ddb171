package domain

import "errors"

// Error taxonomy. Every error returned across layers wraps one of these.
var (
	// ErrValidation missing or malformed input, nothing was mutated
	ErrValidation = errors.New("validation error")

	// ErrConflict the slot is no longer available at commit time
	ErrConflict = errors.New("conflict")

	// ErrNotFound referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnavailable storage or transport failure, safe to retry
	ErrUnavailable = errors.New("unavailable")
)

// FieldError is a validation failure bound to an input field
type FieldError struct {
	Field   string
	Message string
}

// NewFieldError creates a field-level validation error
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// AsFieldError extracts the FieldError from err, if any
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
