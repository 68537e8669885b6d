package errors

import (
	"errors"
	"fmt"
)

// InternalError is the concrete error type carried through the core. It
// wraps an optional cause, a human hint for API consumers, structured
// details for logging, and the kind marker applied by Mark.
type InternalError struct {
	mark    error
	message string
	hint    string
	details map[string]interface{}
	cause   error
}

func (e *InternalError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap exposes both the cause and the kind marker so errors.Is works
// against either.
func (e *InternalError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.mark != nil {
		out = append(out, e.mark)
	}
	if e.cause != nil {
		out = append(out, e.cause)
	}
	return out
}

// Hint returns the consumer-facing hint, if any
func (e *InternalError) Hint() string {
	return e.hint
}

// ReportableDetails returns structured details safe to log or return
func (e *InternalError) ReportableDetails() map[string]interface{} {
	return e.details
}

// ErrorBuilder accumulates error attributes before Mark finalizes them
type ErrorBuilder struct {
	err *InternalError
}

// NewError starts building an error from a message
func NewError(message string) *ErrorBuilder {
	return &ErrorBuilder{err: &InternalError{message: message}}
}

// NewErrorf starts building an error from a format string
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return NewError(fmt.Sprintf(format, args...))
}

// WithError starts building an error wrapping an existing cause
func WithError(err error) *ErrorBuilder {
	if err == nil {
		err = ErrInternal
	}
	return &ErrorBuilder{err: &InternalError{message: err.Error(), cause: err}}
}

// WithHint attaches a consumer-facing hint
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

// WithHintf attaches a formatted consumer-facing hint
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.err.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details for logging
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.err.details = details
	return b
}

// Mark finalizes the error with a kind marker
func (b *ErrorBuilder) Mark(mark error) error {
	b.err.mark = mark
	return b.err
}

// Hint extracts the hint from an error if it carries one
func Hint(err error) string {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.Hint()
	}
	return ""
}
