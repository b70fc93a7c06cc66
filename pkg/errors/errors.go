// Package errors provides structured error types for case-capture.
//
// Every failure raised by a capture stage carries a machine-readable [Code].
// The pipeline uses the code to decide whether a failure is fatal for the
// whole run or only for the unit of work that raised it (a page, a viewport,
// a section, a video, a mockup).
//
// # Error Codes
//
//   - INVALID_*: bad command-line input or configuration (fatal)
//   - BROWSER, FILESYSTEM: the run cannot continue (fatal)
//   - NAVIGATION, TIMEOUT, CAPTURE, ENCODE, RECORDING, MOCKUP: recoverable,
//     the enclosing unit of work is skipped and the run continues
//
// # Usage
//
//	err := errors.Wrap(errors.ErrCodeNavigation, cause, "load %s", url)
//	if errors.Fatal(err) {
//	    return err
//	}
//	logger.Warn("page skipped", "err", err)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidURL    Code = "INVALID_URL"
	ErrCodeInvalidSlug   Code = "INVALID_SLUG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Run-level failures
	ErrCodeBrowser    Code = "BROWSER"
	ErrCodeFilesystem Code = "FILESYSTEM"

	// Per-item failures
	ErrCodeNavigation Code = "NAVIGATION"
	ErrCodeTimeout    Code = "TIMEOUT"
	ErrCodeCapture    Code = "CAPTURE"
	ErrCodeEncode     Code = "ENCODE"
	ErrCodeRecording  Code = "RECORDING"
	ErrCodeMockup     Code = "MOCKUP"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// fatalCodes abort a run instead of skipping a single unit of work.
var fatalCodes = map[Code]bool{
	ErrCodeInvalidInput:  true,
	ErrCodeInvalidURL:    true,
	ErrCodeInvalidSlug:   true,
	ErrCodeInvalidPath:   true,
	ErrCodeInvalidConfig: true,
	ErrCodeBrowser:       true,
	ErrCodeFilesystem:    true,
}

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
// A deadline exceeded cause is reported as ErrCodeTimeout regardless of code.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	if errors.Is(cause, context.DeadlineExceeded) {
		code = ErrCodeTimeout
	}
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

// Fatal reports whether err should abort the whole capture run.
// Uncoded errors are treated as recoverable.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return fatalCodes[GetCode(err)]
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
