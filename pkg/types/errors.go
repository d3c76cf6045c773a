package types

import "fmt"

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeStore      ErrorType = "store"
	ErrorTypeAuth       ErrorType = "authentication"
)

// HospitalError represents a structured error in the hospital backend
type HospitalError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *HospitalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *HospitalError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *HospitalError {
	return &HospitalError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *HospitalError {
	return &HospitalError{
		Type:    ErrorTypeConflict,
		Code:    ErrCodeConflict,
		Message: message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *HospitalError {
	return &HospitalError{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NewStoreError creates a new store error. The cause is kept for logging
// and never serialized to clients.
func NewStoreError(message string, cause error) *HospitalError {
	return &HospitalError{
		Type:    ErrorTypeStore,
		Code:    ErrCodeStoreError,
		Message: message,
		Cause:   cause,
	}
}

// NewAuthError creates a new authentication error
func NewAuthError(message string) *HospitalError {
	return &HospitalError{
		Type:    ErrorTypeAuth,
		Code:    ErrCodeUnauthorized,
		Message: message,
	}
}

// HTTPStatus maps the error category to the status code the API reports
func (e *HospitalError) HTTPStatus() int {
	switch e.Type {
	case ErrorTypeValidation:
		return 400
	case ErrorTypeAuth:
		return 401
	case ErrorTypeNotFound:
		return 404
	case ErrorTypeConflict:
		return 409
	default:
		return 500
	}
}

// Common error codes
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeStoreError   = "STORE_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
)
