package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
)

// ErrorResponse is the uniform error body: a human-readable message plus a
// machine-readable code, with optional per-field details.
type ErrorResponse struct {
	Error   string      `json:"error" example:"Student with id abc not found"`
	Code    string      `json:"code" example:"NOT_FOUND"`
	Details interface{} `json:"details,omitempty"`
}

// ValidationIssue describes one failed field in a schema validation error
type ValidationIssue struct {
	Field   string `json:"field" example:"name"`
	Message string `json:"message" example:"name must be at least 2"`
}

// NewErrorResponse builds the response body for a classified error
func NewErrorResponse(appErr *apperrors.AppError) ErrorResponse {
	return ErrorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	}
}

// ValidationIssuesFromError converts validator errors into a per-field
// details array. Non-validator errors produce a single generic issue.
func ValidationIssuesFromError(err error) []ValidationIssue {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationIssue{{Field: "", Message: err.Error()}}
	}

	issues := make([]ValidationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, ValidationIssue{
			Field:   fe.Field(),
			Message: formatFieldError(fe),
		})
	}
	return issues
}

// formatFieldError creates a human-readable message for a failed field
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "uuid4", "uuid":
		return e.Field() + " must be a valid UUID"
	case "datetime":
		return e.Field() + " must be a valid date (" + e.Param() + ")"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
