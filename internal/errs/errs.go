// Package errs classifies the fatal failures of a block-sleep run.
//
// Every failure is terminal. The Kind only decides how the failure is
// described; all of them map to exit code 1.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies a class of failure.
type Kind int

const (
	// Configuration covers bad arguments and unsupported platforms.
	Configuration Kind = iota + 1
	// Precondition means a named process was not running at start.
	Precondition
	// ResourceAcquisition means the inhibitor lease could not be obtained.
	ResourceAcquisition
	// UnsupportedBackend means the detected backend has no inhibition strategy.
	UnsupportedBackend
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Precondition:
		return "precondition"
	case ResourceAcquisition:
		return "resource acquisition"
	case UnsupportedBackend:
		return "unsupported backend"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error implements error so a Kind can be used as an errors.Is target.
func (k Kind) Error() string { return k.String() }

// Error is a classified failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is this error's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New returns a classified error with a fixed message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Err: errors.New(msg)}
}

// Errorf returns a classified error. %w verbs wrap as with fmt.Errorf.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies err. A nil err stays nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the Kind of the first classified error in err's chain,
// or 0 if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
