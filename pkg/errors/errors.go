package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies application errors for handler mapping and telemetry.
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates invalid caller input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNetwork indicates an upstream transport or HTTP failure
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeParse indicates a malformed upstream payload
	ErrorTypeParse ErrorType = "PARSE"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewNetworkError wraps an upstream transport failure. Network errors are
// retryable from the caller's perspective.
func NewNetworkError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeNetwork, Message: message, Err: err}
}

// NewParseError wraps a response-decoding failure. Shown to users the same
// way as a network error but kept distinguishable for logs.
func NewParseError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParse, Message: message, Err: err}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return IsType(err, ErrorTypeNotFound) }

// IsNetwork reports whether err is an upstream transport failure.
func IsNetwork(err error) bool { return IsType(err, ErrorTypeNetwork) }

// IsParse reports whether err is an upstream decoding failure.
func IsParse(err error) bool { return IsType(err, ErrorTypeParse) }

// IsRetryable reports whether the caller may usefully retry the operation.
// Parse failures count: the upstream occasionally serves truncated XML.
func IsRetryable(err error) bool {
	return IsNetwork(err) || IsParse(err)
}
