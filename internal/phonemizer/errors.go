package phonemizer

import (
	"errors"
	"fmt"
)

// Kind classifies why a phonemization attempt failed.
type Kind string

const (
	KindNotInstalled  Kind = "not_installed"
	KindEmptyOutput   Kind = "empty_output"
	KindProcessFailed Kind = "process_failed"
	KindUnexpected    Kind = "unexpected"
)

// Error is returned by Phonemize for every failure. Detail is safe to show
// to API clients; Err holds the underlying cause, if any.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind carried by err, or KindUnexpected when err is not
// a phonemizer error.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindUnexpected
}

// DetailOf returns the client-facing message for err.
func DetailOf(err error) string {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Detail
	}
	return fmt.Sprintf("Unexpected error: %v", err)
}
