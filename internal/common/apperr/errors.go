package apperr

import (
	"errors"
	"fmt"
)

// Kind is the coarse classification the HTTP boundary maps to a status code.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

// Error carries an operation name, a kind and an optional field-level message.
type Error struct {
	Op    string
	Kind  Kind
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Public is the message safe to return to a caller. Internal errors never
// expose their cause.
func (e *Error) Public() string {
	if e == nil || e.Kind == KindInternal {
		return "an unexpected error occurred"
	}
	if e.Msg != "" {
		return e.Msg
	}
	return string(e.Kind)
}

func Validation(op, field, msg string) *Error {
	return &Error{Op: op, Kind: KindValidation, Field: field, Msg: msg}
}

func NotFound(op, msg string) *Error {
	return &Error{Op: op, Kind: KindNotFound, Msg: msg}
}

func Internal(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInternal, Err: err}
}

// KindOf classifies err. Anything unrecognised is internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != "" {
		return ae.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// PublicMessage returns the caller-facing message for any error.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Public()
	}
	return (*Error)(nil).Public()
}
