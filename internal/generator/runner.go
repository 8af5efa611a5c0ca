package generator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Runner executes a plan in order and keeps a log of completed steps.
type Runner struct {
	Logger     *zap.Logger
	NoRollback bool
}

// Outcome is the result of a successful Execute.
type Outcome struct {
	Completed []Step
	Warnings  []string
}

// Execute runs steps in order. On the first failure it undoes the completed
// steps in reverse order (unless NoRollback is set) and returns an *Error.
func (r *Runner) Execute(ctx context.Context, steps []Step) (*Outcome, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	out := &Outcome{}
	reached := StateStart

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, r.fail(log, out.Completed, step, reached, KindIOFailure, fmt.Errorf("interrupted before %s: %w", step.Describe(), err))
		}

		log.Debug("running step", zap.Int("index", i), zap.String("step", step.Describe()))
		if err := step.Do(ctx); err != nil {
			if opt, ok := step.(optionalStep); ok && opt.optional() {
				log.Warn("optional step failed", zap.String("step", step.Describe()), zap.Error(err))
				out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %v", step.Describe(), err))
				continue
			}
			return nil, r.fail(log, out.Completed, step, reached, classify(err, step.failureKind()), err)
		}
		out.Completed = append(out.Completed, step)

		if i == len(steps)-1 || steps[i+1].Stage() != step.Stage() {
			reached = step.Stage()
			log.Debug("stage reached", zap.Stringer("stage", reached))
		}
	}

	log.Debug("stage reached", zap.Stringer("stage", StateDone))
	return out, nil
}

func (r *Runner) fail(log *zap.Logger, completed []Step, step Step, reached State, kind Kind, err error) *Error {
	genErr := &Error{Kind: kind, Step: step.Describe(), Stage: reached, Err: err}
	// The caller reports the error itself; keep the log line for --verbose.
	log.Debug("step failed",
		zap.String("step", step.Describe()),
		zap.Stringer("kind", kind),
		zap.Stringer("stage", reached),
		zap.Error(err))

	if r.NoRollback || len(completed) == 0 {
		return genErr
	}

	genErr.RolledBack = true
	genErr.RollbackErr = rollback(log, completed)
	return genErr
}

// rollback undoes completed steps in reverse order. It keeps going after an
// individual undo fails and returns the joined failures.
func rollback(log *zap.Logger, completed []Step) error {
	var errs []error
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		log.Warn("rolling back", zap.String("step", step.Describe()))
		if err := step.Undo(); err != nil {
			log.Warn("rollback failed", zap.String("step", step.Describe()), zap.Error(err))
			errs = append(errs, fmt.Errorf("undo %s: %w", step.Describe(), err))
		}
	}
	return errors.Join(errs...)
}
