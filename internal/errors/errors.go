package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors.
//
// Only ErrConfig is ever surfaced to the user as a command failure. The other
// codes describe telemetry faults, which are caught at the subsystem boundary
// and turned into an absent or stale metric.
const (
	ErrConfig            = "CONFIG"
	ErrSourceUnavailable = "SOURCE_UNAVAILABLE"
	ErrIO                = "IO"
	ErrParse             = "PARSE"
	ErrUndefined         = "UNDEFINED"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered like:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrIO code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrIO,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// SourceUnavailable reports that an expected kernel path does not exist on this board.
func SourceUnavailable(path string, cause error) *Error {
	return &Error{
		Code:    ErrSourceUnavailable,
		Message: fmt.Sprintf("%s is not available", path),
		Cause:   cause,
	}
}

// IOFailure reports that a path exists but could not be read.
func IOFailure(path string, cause error) *Error {
	return &Error{
		Code:    ErrIO,
		Message: fmt.Sprintf("Failed to read %s", path),
		Cause:   cause,
	}
}

// ParseFailure reports that a path returned content in an unexpected format.
func ParseFailure(path string, cause error) *Error {
	return &Error{
		Code:    ErrParse,
		Message: fmt.Sprintf("Unexpected content in %s", path),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Short returns a single-line form suitable for log files and tables.
func (e *Error) Short() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, Short(e.Cause))
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr.Code == code
	}
	return false
}

// Classify returns the code of the outermost structured error in the chain,
// or an empty string if err is nil or unstructured.
func Classify(err error) string {
	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr.Code
	}
	return ""
}

// Short returns a single-line description of any error, using Error.Short for
// structured errors.
func Short(err error) string {
	if err == nil {
		return ""
	}
	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr.Short()
	}
	return err.Error()
}

// Is and As are re-exported so callers importing this package as "errors"
// don't also need the standard library package.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }
