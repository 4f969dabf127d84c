// Package provision executes an ordered list of declarative provisioning
// steps: strictly sequential, fail-fast, no retries and no rollback.
package provision

import (
	"context"
	"time"
)

// RunFunc executes a step's work.
type RunFunc func(ctx context.Context) error

// Step is a single provisioning step. Steps are data: an identifier, the
// command line shown to the user, a tolerate-failure flag and the work
// itself. Exactly one of Run or Script is set; Script steps execute through
// the embedded shell interpreter.
type Step struct {
	// ID uniquely identifies the step within a plan.
	ID string

	// Name is the display name.
	Name string

	// Stage groups the step for progress reporting.
	Stage Stage

	// Command is the command line this step amounts to, for display and
	// dry runs.
	Command string

	// Tolerate makes a failure of this step non-fatal: the failure is
	// reported and the run continues. Only the conflict-removal step
	// tolerates failure.
	Tolerate bool

	// Run executes the step.
	Run RunFunc

	// Script is a raw shell snippet, used when Run is nil.
	Script string
}

// StepStatus is the outcome of a single executed step.
type StepStatus int

const (
	// StatusPending means the step has not run (a prior step failed).
	StatusPending StepStatus = iota
	// StatusOK means the step succeeded.
	StatusOK
	// StatusTolerated means the step failed but the failure was tolerated.
	StatusTolerated
	// StatusFailed means the step failed and stopped the run.
	StatusFailed
)

// String returns the string representation of the status.
func (s StepStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOK:
		return "ok"
	case StatusTolerated:
		return "tolerated"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StepResult records the outcome of one step.
type StepResult struct {
	StepID   string
	Name     string
	Command  string
	Status   StepStatus
	Duration time.Duration
	Err      error
}

// Result represents the outcome of a provisioning run.
type Result struct {
	RunID    string
	Success  bool
	Duration time.Duration
	Steps    []StepResult
	Error    error
}

// FailedStep returns the step that stopped the run, or nil on success.
func (r *Result) FailedStep() *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Status == StatusFailed {
			return &r.Steps[i]
		}
	}
	return nil
}
