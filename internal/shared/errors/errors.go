package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for different domains
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "VALIDATION_ERROR"
	ErrorTypeInfrastructure  ErrorType = "INFRASTRUCTURE_ERROR"
	ErrorTypeNotFound        ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeConflict        ErrorType = "CONFLICT_ERROR"
	ErrorTypePayloadTooLarge ErrorType = "PAYLOAD_TOO_LARGE_ERROR"
)

// Transport-level sentinels. Any error whose chain contains
// ErrCORSOriginNotAllowed is rendered as a CORS rejection.
var (
	ErrCORSOriginNotAllowed = errors.New("CORS: origin not allowed")
	ErrFileTooLarge         = errors.New("file size limit has been reached")
)

// AppError represents a custom application error with context
type AppError struct {
	Type     ErrorType `json:"type"`
	Message  string    `json:"message"`
	HTTPCode int       `json:"-"`
	Cause    error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string, httpCode int) *AppError {
	return &AppError{
		Type:     errorType,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message, http.StatusBadRequest)
}

// NewInfrastructureError creates an infrastructure error
func NewInfrastructureError(message string) *AppError {
	return NewAppError(ErrorTypeInfrastructure, message, http.StatusInternalServerError)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return NewAppError(ErrorTypeConflict, message, http.StatusConflict)
}

// NewPayloadTooLargeError creates a payload too large error
func NewPayloadTooLargeError(message string) *AppError {
	return NewAppError(ErrorTypePayloadTooLarge, message, http.StatusRequestEntityTooLarge)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
