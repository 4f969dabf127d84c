package gitrepo

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/execx"
)

func TestCloneArgs(t *testing.T) {
	// Full history, default branch: no --depth, no --branch.
	assert.Equal(t, []string{"clone", "https://github.com/CompVis/taming-transformers.git"},
		CloneArgs("https://github.com/CompVis/taming-transformers.git"))
}

func TestClone_RunsGit(t *testing.T) {
	mock := &execx.MockExecutor{}
	c := NewWithExecutor("/work", mock)

	err := c.Clone(context.Background(), "https://github.com/CompVis/taming-transformers.git")
	require.NoError(t, err)

	require.Len(t, mock.Calls, 1)
	assert.Equal(t, []string{"git", "clone", "https://github.com/CompVis/taming-transformers.git"}, mock.Calls[0])
}

func TestClone_DestinationConflictPropagates(t *testing.T) {
	// Second run in the same directory: git refuses to clone over an
	// existing checkout and that failure is fatal, with no cleanup.
	mock := &execx.MockExecutor{
		RunStreamFunc: func(_ context.Context, _, _ io.Writer, _, _ string, _ ...string) error {
			return errors.New("exit status 128")
		},
	}
	c := NewWithExecutor("/work", mock)

	err := c.Clone(context.Background(), "https://github.com/CompVis/taming-transformers.git")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git clone failed")
}

func TestRelocate(t *testing.T) {
	work := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(work, "taming-transformers", "taming"), 0o755))

	c := NewWithExecutor(work, &execx.MockExecutor{})
	final, err := c.Relocate("taming-transformers", "script")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(work, "script", "taming-transformers"), final)

	// The checkout moved, non-empty, and the original location is gone.
	_, err = os.Stat(filepath.Join(final, "taming"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(work, "taming-transformers"))
	assert.True(t, os.IsNotExist(err))
}

func TestRelocate_MissingCheckout(t *testing.T) {
	c := NewWithExecutor(t.TempDir(), &execx.MockExecutor{})

	_, err := c.Relocate("taming-transformers", "script")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRelocate_DestinationCollision(t *testing.T) {
	work := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(work, "taming-transformers"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(work, "script", "taming-transformers"), 0o755))

	c := NewWithExecutor(work, &execx.MockExecutor{})
	_, err := c.Relocate("taming-transformers", "script")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
