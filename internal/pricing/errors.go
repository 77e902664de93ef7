package pricing

import (
	"errors"
	"fmt"
)

// ErrorCategory normalizes partner failures so the orchestrator can decide
// on retries without knowing the transport.
type ErrorCategory string

const (
	// ErrorTimeout: the partner took too long to answer.
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorAuthentication: credentials or partner id rejected. Never retried.
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorOutage: partner unreachable or answering 5xx.
	ErrorOutage ErrorCategory = "outage"

	// ErrorBadData: the partner response could not be parsed.
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorRejected: the partner processed the request and refused it.
	ErrorRejected ErrorCategory = "rejected"

	// ErrorInternal: anything unexpected on our side of the call.
	ErrorInternal ErrorCategory = "internal"
)

// PartnerError wraps a pricing call failure. UserMessage is only set when
// the partner supplied an explicit user-facing description; everything else
// stays internal.
type PartnerError struct {
	Category    ErrorCategory
	Message     string
	UserMessage string
	Underlying  error
	Retryable   bool
}

func (e *PartnerError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("pricing [%s]: %s: %v", e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("pricing [%s]: %s", e.Category, e.Message)
}

func (e *PartnerError) Unwrap() error { return e.Underlying }

// NewPartnerError builds a categorized error. Timeouts and outages are
// retryable; everything else fails fast.
func NewPartnerError(category ErrorCategory, message string, underlying error) *PartnerError {
	return &PartnerError{
		Category:   category,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == ErrorTimeout || category == ErrorOutage,
	}
}

// IsRetryable reports whether the error is worth another attempt.
func IsRetryable(err error) bool {
	var pe *PartnerError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// CategoryOf extracts the category, defaulting to internal.
func CategoryOf(err error) ErrorCategory {
	var pe *PartnerError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// UserMessageOf returns the partner-supplied user-facing description, if any.
func UserMessageOf(err error) string {
	var pe *PartnerError
	if errors.As(err, &pe) {
		return pe.UserMessage
	}
	return ""
}
