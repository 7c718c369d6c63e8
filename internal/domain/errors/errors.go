package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
)

// ValidationError describes a rejected request field with a machine-readable
// code and human-readable detail. ItemIndex points at the offending cart line
// when non-negative.
type ValidationError struct {
	Code      string
	Field     string
	ItemIndex int
	Detail    string
}

func (e *ValidationError) Error() string {
	if e.ItemIndex >= 0 {
		return fmt.Sprintf("%s: item %d: %s", e.Code, e.ItemIndex, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// NewValidationError builds a request-level validation error.
func NewValidationError(code, field, detail string) *ValidationError {
	return &ValidationError{Code: code, Field: field, ItemIndex: -1, Detail: detail}
}

// NewItemValidationError builds a validation error pointing at a cart line.
func NewItemValidationError(code, field string, index int, detail string) *ValidationError {
	return &ValidationError{Code: code, Field: field, ItemIndex: index, Detail: detail}
}

// AsValidation unwraps err into a ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
