// Package errors provides structured error types for the sunburst tools.
//
// Error codes give the CLI and the HTTP API one vocabulary for failures:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND / FILE_NOT_FOUND: Missing resources
//   - NETWORK_ERROR: Remote documents that could not be fetched
//   - INTERNAL_ERROR / UNSUPPORTED: Everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidHierarchy, origErr, "partition %s", name)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidHierarchy Code = "INVALID_HIERARCHY"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPalette   Code = "INVALID_PALETTE"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Upstream errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// status is the HTTP answer for each code. Unknown codes map to 500.
var status = map[Code]int{
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidHierarchy: http.StatusBadRequest,
	ErrCodeInvalidFormat:    http.StatusBadRequest,
	ErrCodeInvalidPalette:   http.StatusBadRequest,
	ErrCodeInvalidConfig:    http.StatusBadRequest,
	ErrCodeInvalidPath:      http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeFileNotFound:     http.StatusNotFound,
	ErrCodeNetwork:          http.StatusBadGateway,
	ErrCodeUnsupported:      http.StatusNotImplemented,
	ErrCodeInternal:         http.StatusInternalServerError,
}

// Status returns the HTTP status code for c.
func (c Code) Status() int {
	if s, ok := status[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error carries a Code, a message for humans and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage renders err without codes. Plain wrapping text above the
// first *Error is dropped; codes of nested *Errors are stripped too.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	e, ok := asError(err)
	if !ok {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// HTTPStatus maps err to the status code the API responds with. Errors
// without a code are 500s.
func HTTPStatus(err error) int {
	return GetCode(err).Status()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
