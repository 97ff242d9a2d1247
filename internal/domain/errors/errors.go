package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int   // HTTP status code
	Message() string // User-facing message
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode int
	message  string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, message string) *BaseError {
	return &BaseError{
		httpCode: httpCode,
		message:  message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// Message returns the user-facing message
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types
var (
	// Authentication-related errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"Not authorized, token failed",
	)

	ErrMissingToken = NewBaseError(
		http.StatusUnauthorized,
		"Not authorized, no token",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"Invalid email or password",
	)

	// Authorization-related errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"Not authorized as an admin",
	)

	// User-related errors
	ErrDuplicateIdentity = NewBaseError(
		http.StatusBadRequest,
		"User already exists",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"User not found",
	)

	ErrCannotDeleteAdmin = NewBaseError(
		http.StatusBadRequest,
		"Cannot delete admin user",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"Password does not meet the length requirements",
	)

	// Catalog and donation errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"Product not found",
	)

	ErrDonationNotFound = NewBaseError(
		http.StatusNotFound,
		"Donation not found",
	)

	ErrInvalidDonationStatus = NewBaseError(
		http.StatusBadRequest,
		"Invalid status value",
	)

	ErrNoCategory = NewBaseError(
		http.StatusBadRequest,
		"No category available for the product",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"Invalid user data",
	)

	// General errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"Resource not found",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"Internal server error",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed: "+e.details).Error()
}

// Unwrap exposes the driver error to errors.Is and the stack renderer.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// Message returns the user-facing message
func (e *DatabaseExecuteError) Message() string {
	return ErrInternal.Message()
}
