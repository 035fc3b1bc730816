package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Code is a machine-readable error classification.
type Code string

// Standard error codes for the application
const (
	CodeValidation      Code = "VALIDATION_ERROR"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeConflict        Code = "CONFLICT"
	CodeDatabase        Code = "DATABASE_ERROR"
	CodeExternalService Code = "EXTERNAL_SERVICE_ERROR"
	CodeInternal        Code = "INTERNAL_ERROR"
	CodeUnknown         Code = "UNKNOWN_ERROR"
)

// Common sentinel errors used across services and middleware
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// AppError carries a message, a machine-readable code and the HTTP status
// the error maps to. Details holds optional per-field context.
type AppError struct {
	Code       Code
	Message    string
	StatusCode int
	Details    interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// WithDetails attaches context details to the error
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// NewValidationError creates an error for malformed or missing input
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError creates an error for a missing resource. The id is
// optional; when given the message names it.
func NewNotFoundError(resource string, id string) *AppError {
	message := fmt.Sprintf("%s not found", resource)
	if id != "" {
		message = fmt.Sprintf("%s with id %s not found", resource, id)
	}
	return &AppError{
		Code:       CodeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorizedError creates an error for a missing or invalid session
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates an error for an authenticated but unpermitted caller
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "permission denied"
	}
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewConflictError creates an error for a state conflict such as a duplicate
// code or an illegal status transition
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewDatabaseError wraps a storage failure
func NewDatabaseError(message string) *AppError {
	return &AppError{
		Code:       CodeDatabase,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// NewExternalServiceError creates an error for an upstream collaborator
// failure, prefixing the message with the service name
func NewExternalServiceError(service, message string) *AppError {
	return &AppError{
		Code:       CodeExternalService,
		Message:    fmt.Sprintf("%s: %s", service, message),
		StatusCode: http.StatusBadGateway,
	}
}

// Classify maps any error to an AppError. Typed errors pass through with
// their fields intact; pgx "no rows" becomes a not-found; auth sentinels map
// to 401; anything else is wrapped as an internal error. No retries happen
// here, this is a pure classification step invoked at the request boundary.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return NewNotFoundError("resource", "")
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrInvalidFormat):
		return NewUnauthorizedError(err.Error())
	case errors.Is(err, ErrAccountDisabled):
		return NewForbiddenError(err.Error())
	}

	return &AppError{
		Code:       CodeInternal,
		Message:    err.Error(),
		StatusCode: http.StatusInternalServerError,
	}
}

// ClassifyRecovered maps a recovered panic value to an AppError. Panic
// payloads are not trusted to be errors, so the message is fixed.
func ClassifyRecovered(recovered interface{}) *AppError {
	if err, ok := recovered.(error); ok && err != nil {
		classified := Classify(err)
		if classified.Code != CodeInternal {
			return classified
		}
	}
	return &AppError{
		Code:       CodeUnknown,
		Message:    "an unknown error occurred",
		StatusCode: http.StatusInternalServerError,
	}
}
