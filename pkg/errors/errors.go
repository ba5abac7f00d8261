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

	// Configuration errors, raised before any filesystem access
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrRootedGlob      ErrorCode = "ROOTED_GLOB"
	ErrParentSegment   ErrorCode = "PARENT_SEGMENT"
	ErrSortUnsupported ErrorCode = "SORT_UNSUPPORTED"
	ErrInvalidPattern  ErrorCode = "INVALID_PATTERN"

	// Traversal errors
	ErrFileAccess ErrorCode = "FS_ACCESS"

	// Writer errors
	ErrFileExists ErrorCode = "FILE_EXISTS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// BLSError represents a structured error with code and details
type BLSError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BLSError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BLSError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BLSError) Is(target error) bool {
	var targetErr *BLSError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BLSError with the given code and message
func New(code ErrorCode, message string) *BLSError {
	return &BLSError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BLSError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BLSError {
	return &BLSError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BLSError
func Wrap(err error, code ErrorCode, message string) *BLSError {
	if err == nil {
		return nil
	}
	return &BLSError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BLSError {
	if err == nil {
		return nil
	}
	return &BLSError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BLSError) WithDetail(key string, value interface{}) *BLSError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var blsErr *BLSError
	if errors.As(err, &blsErr) {
		return blsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BLSError
func GetErrorCode(err error) ErrorCode {
	var blsErr *BLSError
	if errors.As(err, &blsErr) {
		return blsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BLSError
func GetErrorDetails(err error) map[string]interface{} {
	var blsErr *BLSError
	if errors.As(err, &blsErr) {
		return blsErr.Details
	}
	return nil
}
