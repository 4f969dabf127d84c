// Package pip drives the Python package installer as an external process.
// It builds exact argument vectors and sequences invocations; resolution,
// version conflicts and network behavior stay the installer's problem.
package pip

import (
	"context"
	"fmt"
	"io"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/execx"
	"github.com/jaspreet-dot-casa/tpu-provision/pkg/manifest"
)

// Runner executes pip operations through a python interpreter.
type Runner struct {
	executor execx.CommandExecutor
	python   string

	// Stdout and Stderr receive installer output. Nil means inherit the
	// process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a pip runner using the real command executor.
func New(python string) *Runner {
	return NewWithExecutor(python, &execx.RealExecutor{})
}

// NewWithExecutor creates a pip runner with a custom executor (for testing).
func NewWithExecutor(python string, exec execx.CommandExecutor) *Runner {
	return &Runner{executor: exec, python: python}
}

// InstallOptions configures a pip install invocation.
type InstallOptions struct {
	// Specs are installed in order in a single invocation.
	Specs []manifest.PackageSpec

	// FindLinks adds an auxiliary package index consulted in addition to
	// the default index.
	FindLinks string

	// ForceReinstall reinstalls the named specs even when already satisfied,
	// overriding whatever version an earlier install selected.
	ForceReinstall bool
}

// SelfUpgradeArgs returns the argument vector that upgrades pip itself.
func SelfUpgradeArgs() []string {
	return []string{"-m", "pip", "install", "--upgrade", "pip"}
}

// InstallArgs returns the argument vector for an install invocation.
func InstallArgs(opts InstallOptions) []string {
	args := []string{"-m", "pip", "install"}
	if opts.ForceReinstall {
		args = append(args, "--force-reinstall")
	}
	if opts.FindLinks != "" {
		args = append(args, "-f", opts.FindLinks)
	}
	for _, spec := range opts.Specs {
		args = append(args, spec.String())
	}
	return args
}

// UninstallArgs returns the argument vector for an uninstall invocation.
func UninstallArgs(names []string) []string {
	args := []string{"-m", "pip", "uninstall", "-y"}
	return append(args, names...)
}

// SelfUpgrade upgrades the installer itself.
func (r *Runner) SelfUpgrade(ctx context.Context) error {
	if err := r.run(ctx, SelfUpgradeArgs()); err != nil {
		return fmt.Errorf("pip self-upgrade failed: %w", err)
	}
	return nil
}

// Install runs a single batch install.
func (r *Runner) Install(ctx context.Context, opts InstallOptions) error {
	if len(opts.Specs) == 0 {
		return nil
	}
	if err := r.run(ctx, InstallArgs(opts)); err != nil {
		return fmt.Errorf("pip install failed: %w", err)
	}
	return nil
}

// Uninstall removes the named packages, tolerating absence: pip exits
// non-zero when a target is not installed, and that outcome is not an error
// here. Context cancellation still propagates.
func (r *Runner) Uninstall(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if err := r.run(ctx, UninstallArgs(names)); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Already-absent targets are the expected cause; either way the
		// script carries on.
		return nil
	}
	return nil
}

func (r *Runner) run(ctx context.Context, args []string) error {
	return r.executor.RunStream(ctx, r.Stdout, r.Stderr, "", r.python, args...)
}
