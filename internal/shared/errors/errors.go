// Package errors provides the application error taxonomy for the analytics service.
package errors

import "net/http"

// Code identifies the class of an application error.
type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeNotFound   Code = "NOT_FOUND"
	CodeInternal   Code = "INTERNAL_ERROR"
)

// Error is the base type for all application errors. The message is safe to
// return to the caller verbatim.
type Error struct {
	Code       Code
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Validation reports invalid input: a bad period name, an unparsable date,
// a start date after the end date, or a missing required parameter.
func Validation(message string) *Error {
	return &Error{
		Code:       CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NotFound reports an unknown user/tracker scope. It maps to HTTP 400 rather
// than 404: the service does not distinguish unknown scope from invalid input
// at the transport level.
func NotFound(message string) *Error {
	return &Error{
		Code:       CodeNotFound,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// Internal represents an unexpected failure. The message is generic; detail
// must stay server-side.
func Internal() *Error {
	return &Error{
		Code:       CodeInternal,
		Message:    "An internal error occurred",
		StatusCode: http.StatusInternalServerError,
	}
}
