package pip

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/execx"
	"github.com/jaspreet-dot-casa/tpu-provision/pkg/manifest"
)

func mustSpec(t *testing.T, s string) manifest.PackageSpec {
	t.Helper()
	spec, err := manifest.ParseSpec(s)
	require.NoError(t, err)
	return spec
}

func TestSelfUpgradeArgs(t *testing.T) {
	assert.Equal(t, []string{"-m", "pip", "install", "--upgrade", "pip"}, SelfUpgradeArgs())
}

func TestInstallArgs_Plain(t *testing.T) {
	args := InstallArgs(InstallOptions{
		Specs: []manifest.PackageSpec{mustSpec(t, "boto3"), mustSpec(t, "omegaconf==2.1.1")},
	})

	assert.Equal(t, []string{"-m", "pip", "install", "boto3", "omegaconf==2.1.1"}, args)
}

func TestInstallArgs_FindLinks(t *testing.T) {
	args := InstallArgs(InstallOptions{
		Specs:     []manifest.PackageSpec{mustSpec(t, "jax[tpu]")},
		FindLinks: "https://storage.googleapis.com/jax-releases/libtpu_releases.html",
	})

	assert.Equal(t, []string{
		"-m", "pip", "install",
		"-f", "https://storage.googleapis.com/jax-releases/libtpu_releases.html",
		"jax[tpu]",
	}, args)
}

func TestInstallArgs_ForceReinstall(t *testing.T) {
	args := InstallArgs(InstallOptions{
		Specs:          []manifest.PackageSpec{mustSpec(t, "torch==1.10.1")},
		ForceReinstall: true,
	})

	assert.Equal(t, []string{"-m", "pip", "install", "--force-reinstall", "torch==1.10.1"}, args)
}

func TestUninstallArgs(t *testing.T) {
	args := UninstallArgs([]string{"tensorflow", "tensorboard"})
	assert.Equal(t, []string{"-m", "pip", "uninstall", "-y", "tensorflow", "tensorboard"}, args)
}

func TestInstall_RunsThroughInterpreter(t *testing.T) {
	mock := &execx.MockExecutor{}
	r := NewWithExecutor("python3", mock)

	err := r.Install(context.Background(), InstallOptions{
		Specs: []manifest.PackageSpec{mustSpec(t, "requests")},
	})
	require.NoError(t, err)

	require.Len(t, mock.Calls, 1)
	assert.Equal(t, []string{"python3", "-m", "pip", "install", "requests"}, mock.Calls[0])
}

func TestInstall_EmptyBatchIsNoOp(t *testing.T) {
	mock := &execx.MockExecutor{}
	r := NewWithExecutor("python3", mock)

	require.NoError(t, r.Install(context.Background(), InstallOptions{}))
	assert.Empty(t, mock.Calls)
}

func TestInstall_FailurePropagates(t *testing.T) {
	mock := &execx.MockExecutor{
		RunStreamFunc: func(_ context.Context, _, _ io.Writer, _, _ string, _ ...string) error {
			return errors.New("exit status 1")
		},
	}
	r := NewWithExecutor("python3", mock)

	err := r.Install(context.Background(), InstallOptions{
		Specs: []manifest.PackageSpec{mustSpec(t, "requests")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip install failed")
}

func TestSelfUpgrade_FailurePropagates(t *testing.T) {
	mock := &execx.MockExecutor{
		RunStreamFunc: func(_ context.Context, _, _ io.Writer, _, _ string, _ ...string) error {
			return errors.New("exit status 1")
		},
	}
	r := NewWithExecutor("python3", mock)

	err := r.SelfUpgrade(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip self-upgrade failed")
}

func TestUninstall_ToleratesAbsence(t *testing.T) {
	// pip exits non-zero when a target is not installed; that must not be
	// an error.
	mock := &execx.MockExecutor{
		RunStreamFunc: func(_ context.Context, _, _ io.Writer, _, _ string, _ ...string) error {
			return errors.New("exit status 1")
		},
	}
	r := NewWithExecutor("python3", mock)

	err := r.Uninstall(context.Background(), []string{"tensorflow", "tb-nightly"})
	assert.NoError(t, err)
	require.Len(t, mock.Calls, 1)
	assert.Equal(t, []string{"python3", "-m", "pip", "uninstall", "-y", "tensorflow", "tb-nightly"}, mock.Calls[0])
}

func TestUninstall_ContextCancellationStillFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mock := &execx.MockExecutor{
		RunStreamFunc: func(ctx context.Context, _, _ io.Writer, _, _ string, _ ...string) error {
			cancel()
			return ctx.Err()
		},
	}
	r := NewWithExecutor("python3", mock)

	err := r.Uninstall(ctx, []string{"tensorflow"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUninstall_EmptyIsNoOp(t *testing.T) {
	mock := &execx.MockExecutor{}
	r := NewWithExecutor("python3", mock)

	require.NoError(t, r.Uninstall(context.Background(), nil))
	assert.Empty(t, mock.Calls)
}
