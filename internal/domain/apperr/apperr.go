// Package apperr defines the error kinds the interview service reports.
//
// Every failure that crosses a service boundary is an *Error carrying a Kind,
// so the HTTP layer can map it to a status code without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInternal        Kind = "internal"
	KindInvalidInput    Kind = "invalid_input"
	KindSessionNotFound Kind = "session_not_found"
	KindInvalidState    Kind = "invalid_state"
	KindConfiguration   Kind = "configuration"
	KindProvider        Kind = "provider"
	KindProviderTimeout Kind = "provider_timeout"
	KindPersistence     Kind = "persistence"
	KindMissingVariable Kind = "missing_variable"
	KindConflict        Kind = "conflict"
)

type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an error of the given kind.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap attaches a kind to err. A nil err yields nil.
func Wrap(kind Kind, op string, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// KindOf reports the kind of the outermost *Error in err's chain.
// Errors without a kind are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the human readable part of err without the op prefix.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return err.Error()
}
