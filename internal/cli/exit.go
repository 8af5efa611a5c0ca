package cli

import (
	"errors"
	"fmt"

	"github.com/bladeengine/bladegen/internal/generator"
	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	ExitOK                 = 0
	ExitFailure            = 1
	ExitInvalidInput       = 2
	ExitAlreadyExists      = 3
	ExitIOFailure          = 4
	ExitNetworkFailure     = 5
	ExitMissingSourceAsset = 6
)

// usageError marks bad flags or arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	var usage *usageError
	switch {
	case err == nil, errors.Is(err, generator.ErrQuit):
		return ExitOK
	case errors.As(err, &usage), errors.Is(err, generator.ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, generator.ErrAlreadyExists):
		return ExitAlreadyExists
	case errors.Is(err, generator.ErrNetworkFailure):
		return ExitNetworkFailure
	case errors.Is(err, generator.ErrMissingSourceAsset):
		return ExitMissingSourceAsset
	case errors.Is(err, generator.ErrIOFailure):
		return ExitIOFailure
	default:
		return ExitFailure
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &usageError{err: err}
	}
	return nil
}
