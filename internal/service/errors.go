// Package service holds the workflow layer: auth, booking, event and
// admin operations. Business-rule violations are returned as *Error values
// tagged with a Kind; the handler boundary inspects the kind to pick an
// HTTP status and never needs to match on message strings.
package service

import "fmt"

// Kind classifies a workflow failure.
type Kind int

const (
	// KindInvalid marks malformed or out-of-range input.
	KindInvalid Kind = iota + 1
	// KindInvalidState marks an operation that is well-formed but not
	// allowed in the current state (booking a past event, deleting an
	// event that still has bookings).
	KindInvalidState
	// KindUnauthorized marks credential and token failures.
	KindUnauthorized
	// KindNotFound marks lookups of missing resources.
	KindNotFound
	// KindConflict marks collisions: duplicate handle, duplicate booking,
	// capacity exhausted.
	KindConflict
	// KindInternal marks unexpected failures (storage errors and the like).
	KindInternal
)

// Error is the tagged failure returned by every workflow operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, if any; not exposed to clients
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or KindInternal for anything that is
// not a workflow *Error.
func KindOf(err error) Kind {
	if fe, ok := err.(*Error); ok {
		return fe.Kind
	}
	return KindInternal
}

func invalid(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}
