// Package apt installs OS-level packages through the system package manager.
package apt

import (
	"context"
	"fmt"
	"io"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/execx"
)

// Installer runs apt-get installs.
type Installer struct {
	executor execx.CommandExecutor

	// Sudo prefixes invocations with sudo. System package installation
	// needs elevated privileges unless already running as root.
	Sudo bool

	// Stdout and Stderr receive apt output. Nil means inherit.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an installer using the real command executor.
func New(sudo bool) *Installer {
	return NewWithExecutor(sudo, &execx.RealExecutor{})
}

// NewWithExecutor creates an installer with a custom executor (for testing).
func NewWithExecutor(sudo bool, exec execx.CommandExecutor) *Installer {
	return &Installer{executor: exec, Sudo: sudo}
}

// InstallArgs returns the command name and arguments for an install.
func InstallArgs(sudo bool, packages []string) (string, []string) {
	args := []string{"apt-get", "install", "-y"}
	args = append(args, packages...)
	if sudo {
		return "sudo", args
	}
	return args[0], args[1:]
}

// Install installs the given packages in a single invocation. Failure is
// fatal to the caller; there is no retry.
func (i *Installer) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	name, args := InstallArgs(i.Sudo, packages)
	if err := i.executor.RunStream(ctx, i.Stdout, i.Stderr, "", name, args...); err != nil {
		return fmt.Errorf("system package install failed: %w", err)
	}
	return nil
}
