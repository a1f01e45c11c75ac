// Package dberrors implements the structured error type shared across every
// layer of the engine, following the shape of the teacher's pkg/error
// (category + message + detail + operation/component + cause), narrowed to
// the fixed seven-kind taxonomy the engine's contract defines.
package dberrors

import (
	"fmt"
)

// Kind is one of the seven error kinds the engine's contract defines.
type Kind int

const (
	ParseError Kind = iota
	NotFound
	AlreadyExists
	TypeMismatch
	OutOfRange
	UnsupportedOperator
	InvalidArguments
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case NotFound:
		return "NotFound"
	case AlreadyExists:
		return "AlreadyExists"
	case TypeMismatch:
		return "TypeMismatch"
	case OutOfRange:
		return "OutOfRange"
	case UnsupportedOperator:
		return "UnsupportedOperator"
	case InvalidArguments:
		return "InvalidArguments"
	default:
		return "Unknown"
	}
}

// DBError is the structured error returned across every package boundary in
// the engine.
type DBError struct {
	Kind      Kind
	Message   string
	Detail    string
	Operation string
	Component string
	Cause     error
}

func (e *DBError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DBError) Unwrap() error { return e.Cause }

// New builds a DBError with no cause.
func New(kind Kind, component, operation, message string) *DBError {
	return &DBError{Kind: kind, Component: component, Operation: operation, Message: message}
}

// Newf builds a DBError with a formatted message.
func Newf(kind Kind, component, operation, format string, args ...any) *DBError {
	return New(kind, component, operation, fmt.Sprintf(format, args...))
}

// Wrap attaches a cause to a new DBError of the given kind.
func Wrap(kind Kind, component, operation string, cause error, message string) *DBError {
	return &DBError{Kind: kind, Component: component, Operation: operation, Message: message, Cause: cause}
}

// WithDetail returns a copy of e with Detail set.
func (e *DBError) WithDetail(detail string) *DBError {
	clone := *e
	clone.Detail = detail
	return &clone
}

// Is reports whether err is a *DBError of the given kind, following the
// chain of wrapped causes.
func Is(err error, kind Kind) bool {
	for err != nil {
		if de, ok := err.(*DBError); ok {
			if de.Kind == kind {
				return true
			}
			err = de.Cause
			continue
		}
		break
	}
	return false
}
