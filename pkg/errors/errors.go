// Package errors provides structured error types for pathplay.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so the CLI, the terminal player and the HTTP server can decide how to
// present it (disabled control, inline message, HTTP status) without string
// matching.
//
// # Error Codes
//
//   - INVALID_INPUT: the path engine or graph builder received a graph or
//     source node it cannot work with
//   - INVALID_EDGE: an edge violates the graph invariants (self loop,
//     duplicate pair, weight out of range)
//   - PRECONDITION_FAILED: the playback controller was asked to start without
//     a trace, without edges, or while already running
//   - INVALID_FORMAT: a graph or config file could not be decoded
//   - NOT_FOUND: a requested node, file or cache entry does not exist
//   - INTERNAL_ERROR: unexpected failures (rendering, cache backends)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "source %d is not in the graph", src)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // show the message next to the source picker
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidEdge   Code = "INVALID_EDGE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// State machine errors
	ErrCodePreconditionFailed Code = "PRECONDITION_FAILED"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

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
// It unwraps the error chain looking for an *Error with a matching code, so a
// PRECONDITION_FAILED wrapped inside an INTERNAL_ERROR still matches.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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
		return e.Message
	}
	return err.Error()
}
