// Package errors defines the application error taxonomy. Every error that can
// reach the delivery layer carries an HTTP status, a business code and a
// message safe to show to the end user.
package errors

import (
	"net/http"

	"farmweather/internal/errors"
)

// AppError is the interface implemented by application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing error message
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// WithMessage returns a copy of the error with a different user-facing
// message. The HTTP status and business code are preserved, so sentinel
// comparisons with errors.Is still match the original.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
	}
}

// Is matches any BaseError carrying the same business code, so variants
// produced by WithMessage compare equal to their sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && other.errorCode == e.errorCode
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message.
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types
var (
	// Registration and login errors.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"All fields are required",
	)

	ErrAccountExists = NewBaseError(
		http.StatusConflict,
		"ACCOUNT_EXISTS",
		"Username or email already registered",
	)

	// Deliberately identical for unknown username and wrong password.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
	)

	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Please log in to view this page",
	)

	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"Account not found",
	)

	// Weather pipeline errors.
	ErrPincodeRequired = NewBaseError(
		http.StatusBadRequest,
		"PINCODE_REQUIRED",
		"Please enter a pincode",
	)

	ErrPincodeNotFound = NewBaseError(
		http.StatusNotFound,
		"PINCODE_NOT_FOUND",
		"No coordinates found for this pincode",
	)

	ErrWeatherIncomplete = NewBaseError(
		http.StatusBadGateway,
		"WEATHER_INCOMPLETE",
		"Weather data is incomplete",
	)

	ErrWeatherUnavailable = NewBaseError(
		http.StatusBadGateway,
		"WEATHER_UNAVAILABLE",
		"Could not fetch weather data",
	)

	// General errors.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong, please try again",
	)
)
