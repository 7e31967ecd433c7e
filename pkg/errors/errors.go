// Package errors provides structured error types for fonda.
//
// Every failure fonda reports carries a machine-readable [Code] so callers
// can tell a malformed dependency line from a missing installer or a failed
// child process without parsing messages.
//
// # Error Codes
//
// Codes group into four families:
//   - classification: UNKNOWN_PLATFORM_MARKER, MALFORMED_GIT_REF, EMPTY_SPEC,
//     DUPLICATE_EDITABLE_FLAG
//   - host: UNSUPPORTED_PLATFORM
//   - external tools: TOOL_NOT_FOUND, NON_ZERO_EXIT
//   - input and files: INVALID_ENVIRONMENT, INVALID_INPUT, FILE_NOT_FOUND, FILE_WRITE
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptySpec, "nothing after %q", "pip:")
//	if errors.Is(err, errors.ErrCodeEmptySpec) {
//	    // Handle classification failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileWrite, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Dependency classification errors
	ErrCodeUnknownPlatformMarker Code = "UNKNOWN_PLATFORM_MARKER"
	ErrCodeMalformedGitRef       Code = "MALFORMED_GIT_REF"
	ErrCodeEmptySpec             Code = "EMPTY_SPEC"
	ErrCodeDuplicateEditableFlag Code = "DUPLICATE_EDITABLE_FLAG"

	// Host errors
	ErrCodeUnsupportedPlatform Code = "UNSUPPORTED_PLATFORM"

	// External tool errors
	ErrCodeToolNotFound Code = "TOOL_NOT_FOUND"
	ErrCodeNonZeroExit  Code = "NON_ZERO_EXIT"

	// Input errors
	ErrCodeInvalidEnvironment Code = "INVALID_ENVIRONMENT"
	ErrCodeInvalidInput       Code = "INVALID_INPUT"

	// File errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeFileWrite    Code = "FILE_WRITE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
