package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthenticated indicates a missing, expired or invalid session.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden indicates the authenticated identity lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrRateLimited indicates the caller exceeded a request rate limit.
var ErrRateLimited = errors.New("rate limit exceeded")

// ErrLocked indicates the caller is temporarily locked out after repeated failures.
var ErrLocked = errors.New("temporarily locked")

// ErrInvalidRate indicates a conversion was attempted against a zero or unusable rate.
var ErrInvalidRate = errors.New("invalid rate")

// Machine codes carried in the response envelope.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeRateLimited     = "RATE_LIMITED"
	CodeLocked          = "LOCKED"
	CodeInvalidRate     = "INVALID_RATE"
	CodeInternal        = "INTERNAL"
)

// AppError carries an HTTP-equivalent status, a machine code and an optional
// wrapped cause. Handlers unwrap it at the boundary to build the response
// envelope.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with an explicit status.
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Code: codeForStatus(status), Message: message, Err: err}
}

// NewNotFoundError creates a 404-equivalent AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError creates a 400-equivalent AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: CodeValidation, Message: message, Err: ErrValidation}
}

// NewInternalError creates a 500-equivalent AppError wrapping the cause.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message, Err: err}
}

// StatusAndCode maps any error to the HTTP status and machine code handlers
// should respond with. Unrecognized errors map to 500/INTERNAL.
func StatusAndCode(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Code
	}
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidRate):
		if errors.Is(err, ErrInvalidRate) {
			return http.StatusBadRequest, CodeInvalidRate
		}
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict, CodeValidation
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthenticated
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, CodeRateLimited
	case errors.Is(err, ErrLocked):
		return http.StatusLocked, CodeLocked
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusUnauthorized:
		return CodeUnauthenticated
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusLocked:
		return CodeLocked
	default:
		return CodeInternal
	}
}
