package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind string

const (
	// Fatal: abort the run
	KindConfiguration  Kind = "CONFIGURATION"
	KindMalformedEvent Kind = "MALFORMED_EVENT"
	KindDigestConfig   Kind = "DIGEST_CONFIG"

	// Non-fatal: logged, run succeeds
	KindIgnoredEvent Kind = "IGNORED_EVENT"
	KindEmptyReason  Kind = "EMPTY_REASON"
)

// Error is an application error with a kind and optional cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%v)", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new application error with a formatted message
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with application context
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// Configuration reports a missing or invalid required setting.
func Configuration(format string, args ...interface{}) *Error {
	return Newf(KindConfiguration, format, args...)
}

// MalformedEvent reports an unparseable or incomplete event payload.
func MalformedEvent(format string, args ...interface{}) *Error {
	return Newf(KindMalformedEvent, format, args...)
}

// Ignored reports a recognized event that needs no handling.
func Ignored(format string, args ...interface{}) *Error {
	return Newf(KindIgnoredEvent, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsFatal reports whether err should fail the run. Errors without a kind
// (e.g. unwrapped host failures) are fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	switch KindOf(err) {
	case KindIgnoredEvent, KindEmptyReason:
		return false
	}
	return true
}
