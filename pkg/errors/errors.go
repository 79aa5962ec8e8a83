package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrDatabaseURLNotSet = errors.New("database url not set")
	ErrNotAnArray        = errors.New("expected a JSON array of university objects")
	ErrEmptyName         = errors.New("university name is empty")
	ErrNoRowReturned     = errors.New("upsert returned no university row")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// AppError represents an application error with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
