// Package errors provides structured error handling for the user directory service.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents specific error codes
type ErrorCode string

const (
	// Request errors
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// Resource errors
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeEmptyStore ErrorCode = "EMPTY_STORE"

	// Authentication errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	// System errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Violation describes a single failed validation rule, in the shape
// the HTTP layer renders back to clients.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error is the structured error type used across the service.
type Error struct {
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Violations []Violation `json:"violations,omitempty"`
	Cause      error       `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithViolations attaches the failed validation rules to the error.
func (e *Error) WithViolations(violations ...Violation) *Error {
	e.Violations = append(e.Violations, violations...)
	return e
}

// HTTPStatus maps the error code to the status the request boundary answers with.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized, ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// New creates a structured error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a structured error wrapping an underlying cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Convenience constructors

func NewBadRequestError(message string) *Error {
	return New(ErrCodeBadRequest, message)
}

func NewValidationError(message string) *Error {
	return New(ErrCodeValidation, message)
}

func NewNotFoundError(resource string) *Error {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func NewEmptyStoreError() *Error {
	return New(ErrCodeEmptyStore, "store is empty")
}

func NewUnauthorizedError(message string) *Error {
	return New(ErrCodeUnauthorized, message)
}

func NewInvalidCredentialsError() *Error {
	// One message for both unknown user and wrong password, so the
	// response never reveals whether the username exists.
	return New(ErrCodeInvalidCredentials, "invalid username or password")
}

func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}

// CodeOf returns the structured error code of err, or ErrCodeInternal
// if err is not a structured error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given structured error code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// AsError extracts the structured error from err, converting plain
// errors into internal errors so the boundary always has a status.
func AsError(err error) *Error {
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return NewInternalError("unexpected error", err)
}
