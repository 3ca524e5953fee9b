package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates an error for a missing or invalid required field.
// Validation errors are raised before any write, so nothing has been mutated.
func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: message,
	}
}

// NewPersistenceError wraps a failed store call. Zero or partial writes may
// have occurred; callers decide whether a retry is safe.
func NewPersistenceError(op string, cause error) *DomainError {
	return &DomainError{
		Code:    "PERSISTENCE_FAILED",
		Message: fmt.Sprintf("store operation %s failed: %v", op, cause),
		cause:   cause,
	}
}

// IsValidationError reports whether err is a validation failure
func IsValidationError(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == "VALIDATION_FAILED"
}

// IsPersistenceError reports whether err is a failed store call
func IsPersistenceError(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == "PERSISTENCE_FAILED"
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
)
