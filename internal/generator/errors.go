package generator

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/bladeengine/bladegen/internal/engine"
	"github.com/bladeengine/bladegen/internal/relocate"
)

// Kind classifies a generation failure.
type Kind int

const (
	KindIOFailure Kind = iota
	KindAlreadyExists
	KindNetworkFailure
	KindMissingSourceAsset
	KindInvalidInput
)

// Sentinels matched by errors.Is against an *Error of the same Kind.
var (
	ErrIOFailure          = errors.New("I/O failure")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNetworkFailure     = errors.New("network failure")
	ErrMissingSourceAsset = errors.New("missing source asset")
	ErrInvalidInput       = errors.New("invalid input")
)

// ErrQuit is returned when the selection does not name a template. Nothing
// on disk has been touched.
var ErrQuit = errors.New("quit")

// String returns the kind's human-readable name.
func (k Kind) String() string {
	return k.sentinel().Error()
}

func (k Kind) sentinel() error {
	switch k {
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindNetworkFailure:
		return ErrNetworkFailure
	case KindMissingSourceAsset:
		return ErrMissingSourceAsset
	case KindInvalidInput:
		return ErrInvalidInput
	default:
		return ErrIOFailure
	}
}

// Error is a failed generation.
type Error struct {
	Kind  Kind
	Step  string // description of the failing step; empty for pre-flight failures
	Stage State  // last stage fully reached before the failure
	Err   error

	// RollbackErr is set when undoing completed steps failed as well.
	RollbackErr error
	// RolledBack is true when completed steps were undone.
	RolledBack bool
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Kind, e.Err)
	if e.RollbackErr != nil {
		msg += fmt.Sprintf(" (rollback incomplete: %v)", e.RollbackErr)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// classify picks the kind for err, falling back to def for errors that carry
// no more specific cause.
func classify(err error, def Kind) Kind {
	switch {
	case errors.Is(err, engine.ErrNoMatchingTag):
		return KindInvalidInput
	case errors.Is(err, fs.ErrExist), errors.Is(err, engine.ErrDestinationExists):
		return KindAlreadyExists
	case errors.Is(err, relocate.ErrSourceMissing):
		return KindMissingSourceAsset
	case errors.Is(err, engine.ErrCloneFailed), errors.Is(err, engine.ErrGitNotFound):
		return KindNetworkFailure
	case errors.Is(err, relocate.ErrDestinationParentMissing):
		return KindIOFailure
	default:
		return def
	}
}
