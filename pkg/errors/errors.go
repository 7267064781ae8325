// Package errors provides coded errors for prepenv. Every failure the tool can
// surface carries a stable ErrorCode so callers and tests can match on the
// category instead of the message text.
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

	// Environment errors
	ErrHomeUnresolved ErrorCode = "HOME_UNRESOLVED"
	ErrRootUnresolved ErrorCode = "ROOT_UNRESOLVED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrLineRange        ErrorCode = "LINE_RANGE"
	ErrMarkerNotFound   ErrorCode = "MARKER_NOT_FOUND"
	ErrTargetNotFound   ErrorCode = "TARGET_NOT_FOUND"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirMissing ErrorCode = "DIR_MISSING"

	// Check errors
	ErrStaleOutput ErrorCode = "STALE_OUTPUT"
)

// PrepenvError represents a structured error with code and details
type PrepenvError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PrepenvError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PrepenvError) Unwrap() error {
	return e.Wrapped
}

// Is matches any PrepenvError carrying the same code
func (e *PrepenvError) Is(target error) bool {
	var targetErr *PrepenvError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PrepenvError with the given code and message
func New(code ErrorCode, message string) *PrepenvError {
	return &PrepenvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PrepenvError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PrepenvError {
	return &PrepenvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PrepenvError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *PrepenvError {
	if err == nil {
		return nil
	}
	return &PrepenvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PrepenvError {
	if err == nil {
		return nil
	}
	return &PrepenvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PrepenvError) WithDetail(key string, value interface{}) *PrepenvError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pe *PrepenvError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PrepenvError
func GetErrorCode(err error) ErrorCode {
	var pe *PrepenvError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PrepenvError
func GetErrorDetails(err error) map[string]interface{} {
	var pe *PrepenvError
	if errors.As(err, &pe) {
		return pe.Details
	}
	return nil
}
