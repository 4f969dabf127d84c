package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Runner executes a provisioning plan.
type Runner struct {
	tools *Toolset
}

// NewRunner creates a runner over the given toolset.
func NewRunner(tools *Toolset) *Runner {
	return &Runner{tools: tools}
}

// Run executes the steps in order. A hard step failure stops the run there;
// steps marked Tolerate report their failure and the run continues. There
// are no retries, no rollback and no timeouts of the runner's own; context
// cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, steps []Step, progress ProgressCallback) *Result {
	if progress == nil {
		progress = NoOpProgress
	}

	result := &Result{
		RunID: uuid.NewString(),
		Steps: make([]StepResult, 0, len(steps)),
	}
	start := time.Now()

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return r.fail(result, step, err, start, progress)
		}

		progress(NewProgressEventWithCommand(
			step.Stage,
			step.Name,
			step.Command,
			percent(i, len(steps)),
		))

		stepStart := time.Now()
		err := r.runStep(ctx, step)
		sr := StepResult{
			StepID:   step.ID,
			Name:     step.Name,
			Command:  step.Command,
			Status:   StatusOK,
			Duration: time.Since(stepStart),
		}

		if err != nil {
			if ctx.Err() != nil {
				sr.Status = StatusFailed
				sr.Err = err
				result.Steps = append(result.Steps, sr)
				return r.finish(result, err, start, progress)
			}
			if step.Tolerate {
				sr.Status = StatusTolerated
				sr.Err = err
				progress(ProgressEvent{
					Stage:     step.Stage,
					Message:   step.Name + " failed (tolerated)",
					Detail:    err.Error(),
					Percent:   percent(i, len(steps)),
					Timestamp: time.Now(),
				})
				result.Steps = append(result.Steps, sr)
				continue
			}
			sr.Status = StatusFailed
			sr.Err = err
			result.Steps = append(result.Steps, sr)
			return r.finish(result, fmt.Errorf("step %s failed: %w", step.ID, err), start, progress)
		}

		result.Steps = append(result.Steps, sr)
	}

	progress(NewProgressEvent(StageComplete, "Provisioning complete", 100))
	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// runStep dispatches a single step.
func (r *Runner) runStep(ctx context.Context, step Step) error {
	if step.Run != nil {
		return step.Run(ctx)
	}
	if step.Script != "" {
		return r.tools.Shell.Run(ctx, step.Script)
	}
	return fmt.Errorf("step %s has nothing to run", step.ID)
}

// fail records a failure before the step executed.
func (r *Runner) fail(result *Result, step Step, err error, start time.Time, progress ProgressCallback) *Result {
	result.Steps = append(result.Steps, StepResult{
		StepID:  step.ID,
		Name:    step.Name,
		Command: step.Command,
		Status:  StatusFailed,
		Err:     err,
	})
	return r.finish(result, err, start, progress)
}

// finish records a failed run.
func (r *Runner) finish(result *Result, err error, start time.Time, progress ProgressCallback) *Result {
	progress(NewErrorEvent(err.Error()))
	result.Success = false
	result.Error = err
	result.Duration = time.Since(start)
	return result
}

// percent maps a step index to a coarse progress percentage.
func percent(index, total int) int {
	if total == 0 {
		return 100
	}
	return index * 100 / total
}
