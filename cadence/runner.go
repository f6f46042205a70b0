package cadence

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Hooks are the callbacks a Runner fires at their configured cadences.
// A nil hook is skipped.
type Hooks struct {
	OnSave    func(iter int) error
	OnVal     func(iter int) error
	OnValMesh func(iter int) error
	OnReport  func(iter int) error
}

// Runner walks an iteration range firing Hooks per the Schedule.
type Runner struct {
	schedule Schedule
	hooks    Hooks
	logger   *zap.Logger
}

// NewRunner creates a Runner for the schedule.
func NewRunner(schedule Schedule, hooks Hooks, logger *zap.Logger) *Runner {
	return &Runner{
		schedule: schedule,
		hooks:    hooks,
		logger:   logger,
	}
}

// Run walks iterations 1..iters, firing each due hook in order (report,
// save, val, val_mesh). The first hook error aborts the run; ctx
// cancellation is checked every iteration.
func (r *Runner) Run(ctx context.Context, iters int) error {
	if iters < 0 {
		return fmt.Errorf("iteration count must be non-negative, got: %d", iters)
	}

	for iter := 1; iter <= iters; iter++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run canceled at iteration %d: %w", iter, err)
		}

		t := r.schedule.Due(iter)
		if !t.Any() {
			continue
		}

		if t.Report {
			if err := r.fire(r.hooks.OnReport, "report", iter); err != nil {
				return err
			}
		}
		if t.Save {
			if err := r.fire(r.hooks.OnSave, "save", iter); err != nil {
				return err
			}
		}
		if t.Val {
			if err := r.fire(r.hooks.OnVal, "val", iter); err != nil {
				return err
			}
		}
		if t.ValMesh {
			if err := r.fire(r.hooks.OnValMesh, "val_mesh", iter); err != nil {
				return err
			}
		}
	}

	r.logger.Info("run complete", zap.Int("iterations", iters))
	return nil
}

func (r *Runner) fire(hook func(int) error, action string, iter int) error {
	if hook == nil {
		return nil
	}
	r.logger.Debug("trigger fired", zap.String("action", action), zap.Int("iteration", iter))
	if err := hook(iter); err != nil {
		return fmt.Errorf("%s hook failed at iteration %d: %w", action, iter, err)
	}
	return nil
}
