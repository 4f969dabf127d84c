// Package gitrepo clones a source repository and relocates the checkout for
// downstream workload code.
package gitrepo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/execx"
)

// Cloner clones repositories with the system git.
type Cloner struct {
	executor execx.CommandExecutor

	// WorkDir is the directory the clone runs in. Empty means the current
	// working directory.
	WorkDir string

	// Stdout and Stderr receive git output. Nil means inherit.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a cloner using the real command executor.
func New(workDir string) *Cloner {
	return NewWithExecutor(workDir, &execx.RealExecutor{})
}

// NewWithExecutor creates a cloner with a custom executor (for testing).
func NewWithExecutor(workDir string, exec execx.CommandExecutor) *Cloner {
	return &Cloner{executor: exec, WorkDir: workDir}
}

// CloneArgs returns the git argument vector for a full-history clone of the
// default branch.
func CloneArgs(url string) []string {
	return []string{"clone", url}
}

// Clone clones the repository into the work directory. If the checkout
// directory already exists from a prior run, git fails and that failure
// propagates: re-running provisioning in the same directory is not
// idempotent, and no cleanup is attempted.
func (c *Cloner) Clone(ctx context.Context, url string) error {
	if err := c.executor.RunStream(ctx, c.Stdout, c.Stderr, c.WorkDir, "git", CloneArgs(url)...); err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}
	return nil
}

// Relocate moves the checkout directory into destDir, creating destDir if
// needed. The final path is destDir/<repoDir>. An existing directory at the
// final path is a fatal collision.
func (c *Cloner) Relocate(repoDir, destDir string) (string, error) {
	src := filepath.Join(c.WorkDir, repoDir)
	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("checkout %s not found: %w", src, err)
	}

	dest := filepath.Join(c.WorkDir, destDir)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}

	final := filepath.Join(dest, repoDir)
	if _, err := os.Stat(final); err == nil {
		return "", fmt.Errorf("destination %s already exists", final)
	}

	if err := os.Rename(src, final); err != nil {
		return "", fmt.Errorf("failed to move checkout: %w", err)
	}

	return final, nil
}
