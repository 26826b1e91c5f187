package entity

import (
	"errors"
	"fmt"
)

// ErrorKind is a coarse-grained categorization for domain errors.
// Handlers translate kinds to protocol statuses; the domain never
// knows about HTTP.
type ErrorKind string

const (
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindInvalidState    ErrorKind = "invalid_state"
	KindNotFound        ErrorKind = "not_found"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindForbidden       ErrorKind = "forbidden"
	KindConflict        ErrorKind = "conflict"
)

// DomainError carries a kind for programmatic handling plus a
// human-readable message for display.
type DomainError struct {
	Kind  ErrorKind
	Msg   string
	Cause error
}

func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewInvalidArgument(msg string) *DomainError {
	return &DomainError{Kind: KindInvalidArgument, Msg: msg}
}

func NewInvalidState(msg string) *DomainError {
	return &DomainError{Kind: KindInvalidState, Msg: msg}
}

func NewNotFound(msg string) *DomainError {
	return &DomainError{Kind: KindNotFound, Msg: msg}
}

func NewUnauthorized(msg string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Msg: msg}
}

func NewForbidden(msg string) *DomainError {
	return &DomainError{Kind: KindForbidden, Msg: msg}
}

func NewConflict(msg string) *DomainError {
	return &DomainError{Kind: KindConflict, Msg: msg}
}

// IsKind reports whether err (or anything it wraps) is a DomainError
// of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or an empty kind when err is not a
// DomainError.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
