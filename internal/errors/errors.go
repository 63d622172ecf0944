package errors

import (
	"errors"
	"net/http"
)

// AppError is the base type of the domain error taxonomy. It carries the
// HTTP status the boundary should respond with.
type AppError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *AppError) Error() string {
	return e.Message
}

// FieldViolation describes a single field-level validation failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a 400 with optional structured field violations.
type ValidationError struct {
	AppError
	Details []FieldViolation
}

// NewValidationError creates a validation error with field details.
func NewValidationError(message string, details ...FieldViolation) *ValidationError {
	return &ValidationError{
		AppError: AppError{
			StatusCode: http.StatusBadRequest,
			Message:    message,
			Code:       "VALIDATION_ERROR",
		},
		Details: details,
	}
}

// NewNotFoundError creates a 404 with the message "<resource> not found".
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Message:    resource + " not found",
		Code:       "NOT_FOUND",
	}
}

// NewUnauthorizedError creates a 401.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
		Code:       "UNAUTHORIZED",
	}
}

// NewConflictError creates a 409.
func NewConflictError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusConflict,
		Message:    message,
		Code:       "CONFLICT",
	}
}

// NewAppError creates an error with a caller-specified status code.
func NewAppError(statusCode int, message, code string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ErrorResponse is the JSON body produced for any failed request.
type ErrorResponse struct {
	Error   string           `json:"error"`
	Code    string           `json:"code,omitempty"`
	Details []FieldViolation `json:"details,omitempty"`
}

// MapErrorToResponse converts any error into a status code and response
// body. Errors outside the taxonomy are reported as an opaque 500; their
// text never reaches the client.
func MapErrorToResponse(err error) (int, ErrorResponse) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.StatusCode, ErrorResponse{
			Error:   vErr.Message,
			Code:    vErr.Code,
			Details: vErr.Details,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode, ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Error: "Internal server error",
		Code:  "INTERNAL_ERROR",
	}
}
