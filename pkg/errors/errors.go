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

	// Chest errors
	ErrChestNotFound ErrorCode = "CHEST_NOT_FOUND"
	ErrChestExists   ErrorCode = "CHEST_EXISTS"
	ErrChestAccess   ErrorCode = "CHEST_ACCESS"

	// Entry errors
	ErrMalformedEntry ErrorCode = "MALFORMED_ENTRY"

	// Placement errors
	ErrPlacementConflict ErrorCode = "PLACEMENT_CONFLICT"
	ErrRealFileConflict  ErrorCode = "REAL_FILE_CONFLICT"

	// Sync errors
	ErrScriptExists    ErrorCode = "SCRIPT_EXISTS"
	ErrScriptWrite     ErrorCode = "SCRIPT_WRITE"
	ErrRemoteInvalid   ErrorCode = "REMOTE_INVALID"
	ErrTransferFailure ErrorCode = "TRANSFER_FAILURE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// ChestError represents a structured error with code and details
type ChestError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ChestError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ChestError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ChestError) Is(target error) bool {
	var targetErr *ChestError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ChestError with the given code and message
func New(code ErrorCode, message string) *ChestError {
	return &ChestError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ChestError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ChestError {
	return &ChestError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ChestError
func Wrap(err error, code ErrorCode, message string) *ChestError {
	if err == nil {
		return nil
	}
	return &ChestError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ChestError {
	if err == nil {
		return nil
	}
	return &ChestError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ChestError) WithDetail(key string, value interface{}) *ChestError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var chestErr *ChestError
	if errors.As(err, &chestErr) {
		return chestErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ChestError
func GetErrorCode(err error) ErrorCode {
	var chestErr *ChestError
	if errors.As(err, &chestErr) {
		return chestErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ChestError
func GetErrorDetails(err error) map[string]interface{} {
	var chestErr *ChestError
	if errors.As(err, &chestErr) {
		return chestErr.Details
	}
	return nil
}
