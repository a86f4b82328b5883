package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeTypeMismatch     = "TYPE_MISMATCH"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeDivisionByZero   = "DIVISION_BY_ZERO"
	CodeInternalError    = "INTERNAL_ERROR"
)

// HTTPStatus maps an error to the response status code. Every classified
// input failure is a 400; anything unclassified is a 500.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeValidationError, CodeTypeMismatch, CodeInsufficientData, CodeDivisionByZero:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func ValidationErrorf(format string, args ...interface{}) *AppError {
	return New(CodeValidationError, fmt.Sprintf(format, args...))
}

func TypeMismatch(message string) *AppError {
	return New(CodeTypeMismatch, message)
}

func InsufficientData(message string) *AppError {
	return New(CodeInsufficientData, message)
}

func DivisionByZero(message string) *AppError {
	return New(CodeDivisionByZero, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
