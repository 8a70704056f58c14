package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Root validation errors, raised before any traversal
	ErrPathNotFound  ErrorCode = "PATH_NOT_FOUND"
	ErrNotADirectory ErrorCode = "NOT_A_DIRECTORY"

	// Filter rule errors
	ErrInvalidRules ErrorCode = "INVALID_RULES"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Discovery errors
	ErrGitList ErrorCode = "GIT_LIST"
	ErrNoFiles ErrorCode = "NO_FILES"

	// Delivery errors
	ErrWrite            ErrorCode = "WRITE_ERROR"
	ErrClipboard        ErrorCode = "CLIPBOARD_ERROR"
	ErrClipboardTimeout ErrorCode = "CLIPBOARD_TIMEOUT"
)

// CatpError represents a structured error with code and details
type CatpError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CatpError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CatpError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CatpError) Is(target error) bool {
	var targetErr *CatpError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CatpError with the given code and message
func New(code ErrorCode, message string) *CatpError {
	return &CatpError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CatpError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CatpError {
	return &CatpError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CatpError
func Wrap(err error, code ErrorCode, message string) *CatpError {
	if err == nil {
		return nil
	}
	return &CatpError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CatpError {
	if err == nil {
		return nil
	}
	return &CatpError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CatpError) WithDetail(key string, value interface{}) *CatpError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var catpErr *CatpError
	if errors.As(err, &catpErr) {
		return catpErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CatpError
func GetErrorCode(err error) ErrorCode {
	var catpErr *CatpError
	if errors.As(err, &catpErr) {
		return catpErr.Code
	}
	return ErrUnknown
}
