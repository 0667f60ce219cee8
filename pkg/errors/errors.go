package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode string

// Common error codes used across all packages
const (
	// Generic errors
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeConflict      ErrorCode = "CONFLICT"

	// Client authentication errors
	ErrCodeAuthFailed         ErrorCode = "AUTH_FAILED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       ErrorCode = "TOKEN_INVALID"

	// Client authorization errors
	ErrCodeClientNotFound  ErrorCode = "CLIENT_NOT_FOUND"
	ErrCodeClientRevoked   ErrorCode = "CLIENT_REVOKED"
	ErrCodeMissingScopes   ErrorCode = "MISSING_SCOPES"
	ErrCodeOriginForbidden ErrorCode = "ORIGIN_FORBIDDEN"
	ErrCodeNotFirstParty   ErrorCode = "NOT_FIRST_PARTY"

	// Configuration errors
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
)

// Error represents a structured error with code, message, and optional details
type Error struct {
	Code    ErrorCode              // Unique error code
	Message string                 // Human-readable error message
	Details map[string]interface{} // Optional additional details
	Err     error                  // Wrapped underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// HTTPStatusCode returns the appropriate HTTP status code for this error
func (e *Error) HTTPStatusCode() int {
	return MapErrorCodeToHTTPStatus(e.Code)
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with code and message
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
// Returns ErrCodeInternal if the error is not a structured Error
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// GetDetails extracts the details from an error
// Returns nil if the error is not a structured Error
func GetDetails(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// MapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func MapErrorCodeToHTTPStatus(code ErrorCode) int {
	switch code {
	// 400 Bad Request
	case ErrCodeInvalidInput:
		return http.StatusBadRequest

	// 401 Unauthorized; every guard-boundary rejection maps here
	case ErrCodeUnauthorized, ErrCodeAuthFailed, ErrCodeInvalidCredentials,
		ErrCodeTokenExpired, ErrCodeTokenInvalid, ErrCodeClientNotFound,
		ErrCodeClientRevoked, ErrCodeMissingScopes, ErrCodeOriginForbidden,
		ErrCodeNotFirstParty:
		return http.StatusUnauthorized

	// 403 Forbidden
	case ErrCodeForbidden:
		return http.StatusForbidden

	// 404 Not Found
	case ErrCodeNotFound:
		return http.StatusNotFound

	// 409 Conflict
	case ErrCodeConflict, ErrCodeAlreadyExists:
		return http.StatusConflict

	// 500 Internal Server Error (default)
	case ErrCodeInternal, ErrCodeConfiguration:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors for frequently used errors

// NotFound creates a "not found" error
func NotFound(resourceType, identifier string) *Error {
	return Newf(ErrCodeNotFound, "%s not found: %s", resourceType, identifier)
}

// AlreadyExists creates an "already exists" error
func AlreadyExists(resourceType, identifier string) *Error {
	return Newf(ErrCodeAlreadyExists, "%s already exists: %s", resourceType, identifier)
}

// Unauthorized creates an "unauthorized" error
func Unauthorized(message string) *Error {
	return New(ErrCodeUnauthorized, message)
}

// Internal creates an "internal error"
func Internal(message string) *Error {
	return New(ErrCodeInternal, message)
}

// Configuration creates a fatal configuration error; these should surface at
// startup, never per-request
func Configuration(message string) *Error {
	return New(ErrCodeConfiguration, message)
}
