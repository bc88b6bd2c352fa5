package shared

import "fmt"

// DomainError represents a business rule violation with a stable error code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "The requested resource was not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "The resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "The provided input is invalid")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Authentication is required")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInternal      = NewDomainError("INTERNAL_ERROR", "An internal error occurred")
)
