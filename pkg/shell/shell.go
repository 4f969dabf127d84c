// Package shell runs raw manifest steps through an embedded POSIX shell
// interpreter, so extra steps behave the same everywhere without depending
// on the host's /bin/sh.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner executes shell snippets in-process.
type Runner struct {
	// Dir is the working directory for executed snippets. Empty means the
	// current working directory.
	Dir string

	// Stdout and Stderr receive script output. Nil means inherit.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a shell runner for the given working directory.
func New(dir string) *Runner {
	return &Runner{Dir: dir}
}

// Validate parses the snippet without running it.
func Validate(script string) error {
	_, err := syntax.NewParser().Parse(strings.NewReader(script), "step")
	if err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Run parses and executes the snippet. The exit status of the snippet is
// returned as an error for non-zero exits.
func (r *Runner) Run(ctx context.Context, script string) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "step")
	if err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	runner, err := interp.New(
		interp.Dir(r.Dir),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return fmt.Errorf("step exited with status %d", uint8(exitStatus))
		}
		return err
	}
	return nil
}
