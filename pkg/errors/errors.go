package errors

import (
	"fmt"
	"net/http"
)

// Error codes for the application error taxonomy.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeInvalidID   = "INVALID_ID"
	CodeNotFound    = "NOT_FOUND"
	CodeGateway     = "GATEWAY_ERROR"
	CodePersistence = "PERSISTENCE_ERROR"
	CodeInternal    = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status code and error
// code.
type AppError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// NewError creates a new application error
func NewError(statusCode int, code string, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// NewValidationError creates a 400 error for a malformed or missing request
// field. Validation failures are produced at the request boundary, before
// any persistence or gateway call.
func NewValidationError(message string) *AppError {
	return NewError(http.StatusBadRequest, CodeValidation, message)
}

// NewInvalidIDError creates a 400 error for a syntactically malformed
// identifier. Distinct from NotFound: the lookup never happened.
func NewInvalidIDError(message string) *AppError {
	return NewError(http.StatusBadRequest, CodeInvalidID, message)
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(message string) *AppError {
	return NewError(http.StatusNotFound, CodeNotFound, message)
}

// NewGatewayError creates a 500 error carrying an upstream AI provider
// failure.
func NewGatewayError(message string) *AppError {
	return NewError(http.StatusInternalServerError, CodeGateway, message)
}

// NewPersistenceError creates a 500 error for a store failure.
func NewPersistenceError(message string) *AppError {
	return NewError(http.StatusInternalServerError, CodePersistence, message)
}

// NewInternalServerError creates a 500 Internal Server Error
func NewInternalServerError(message string) *AppError {
	return NewError(http.StatusInternalServerError, CodeInternal, message)
}

// FromError converts a standard error to an AppError.
// If the error is already an AppError, it is returned as-is.
// Otherwise, it is wrapped as an internal server error.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalServerError(err.Error())
}

// GetStatusCode extracts the HTTP status code from an AppError, returns 500
// if not an AppError.
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Is checks if the target error is of type AppError with the same code
func Is(err error, code string) bool {
	appErr, ok := err.(*AppError)
	if !ok {
		return false
	}
	return appErr.Code == code
}
