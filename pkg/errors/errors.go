// Package errors provides coded error types for poetryreqs.
//
// Every failure the converter can report carries a [Code], so the CLI can
// print a short user message and callers can branch on the kind of failure
// without matching strings:
//
//	if errors.Is(err, errors.ErrCodeMissingSection) {
//	    // manifest has no [tool.poetry.dependencies]
//	}
//
// Wrapping keeps the underlying cause reachable through the standard
// library's errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// ErrCodeFileNotFound means the manifest path does not exist.
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// ErrCodeInvalidManifest means the manifest is not valid TOML, or a
	// dependency entry has a shape the converter cannot express.
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"

	// ErrCodeMissingSection means the dependency table is absent.
	ErrCodeMissingSection Code = "MISSING_SECTION"

	// ErrCodeInvalidPath means a path exists but cannot be read or written.
	ErrCodeInvalidPath Code = "INVALID_PATH"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
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

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err's message without the code prefix. When the error
// wraps a cause, the cause is appended since it usually holds the detail the
// user needs (a parse position, a permission problem).
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
