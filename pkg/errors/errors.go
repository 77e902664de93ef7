// Package errors defines the coded domain errors that cross the simulation
// core's boundary. Handlers translate codes to HTTP statuses; callers branch
// on codes, never on message text.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code discriminates failure kinds for callers.
type Code string

const (
	// CodeValidation: one or more input fields failed schema validation.
	// Recoverable by the user; carries field-level violations.
	CodeValidation Code = "VALIDATION_ERROR"

	// CodeCoverage: guarantee dependency rules rejected the selection under
	// the strict check path. Carries one sentence per broken link.
	CodeCoverage Code = "COVERAGE_ERROR"

	// CodeSimulationFailed: the pricing partner call failed (network, partner
	// fault, timeout, malformed response). Message is user-safe; the cause is
	// retained for diagnostics only.
	CodeSimulationFailed Code = "SIMULATION_FAILED"

	// CodeAuth: the partner rejected our credentials. Never retried.
	CodeAuth Code = "AUTH_ERROR"

	// CodeInvalidData: the submitted payload is structurally unusable
	// (missing sub-objects, unparseable body).
	CodeInvalidData Code = "INVALID_DATA"

	CodeBadRequest Code = "BAD_REQUEST"
	CodeNotFound   Code = "NOT_FOUND"
	CodeInternal   Code = "INTERNAL"
)

// FieldViolation names one rejected input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v FieldViolation) String() string {
	return v.Field + ": " + v.Message
}

// Error is the single error shape the core surfaces. Violations is populated
// for VALIDATION_ERROR and COVERAGE_ERROR; cause is internal-only.
type Error struct {
	Code       Code
	Message    string
	Violations []FieldViolation
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with a user-safe message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted user-safe message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying cause for diagnostics without leaking it into the
// user-facing message.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// WithViolations attaches field-level detail and returns the same error.
func (e *Error) WithViolations(violations []FieldViolation) *Error {
	e.Violations = violations
	return e
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from an error, defaulting to INTERNAL.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to the HTTP status the transport layer writes.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeCoverage:
		return http.StatusUnprocessableEntity
	case CodeInvalidData, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAuth, CodeSimulationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
