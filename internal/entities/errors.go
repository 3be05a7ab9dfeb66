package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the stores, the engines and the HTTP layer.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrExternalService  = errors.New("external service error")
	ErrInsufficientData = errors.New("insufficient data")
	ErrConflict         = errors.New("conflict")
)

// ValidationError describes caller input that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ExternalServiceError is returned when a collaborator call failed after retries.
// Callers may retry the whole operation later.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() []error { return []error{ErrExternalService, e.Err} }

// InsufficientDataError is returned when a practice session cannot be
// assembled from the learner's history.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: have %d translations, need %d", e.Have, e.Need)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }
