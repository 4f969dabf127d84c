package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/execx"
	"github.com/jaspreet-dot-casa/tpu-provision/pkg/manifest"
)

func defaultPlan(t *testing.T) ([]Step, *execx.MockExecutor) {
	t.Helper()
	mock := &execx.MockExecutor{}
	m := manifest.Default()
	tools := NewToolsetWithExecutor(m, t.TempDir(), true, mock)
	return BuildPlan(m, tools), mock
}

func TestBuildPlan_Order(t *testing.T) {
	steps, _ := defaultPlan(t)

	var ids []string
	for _, step := range steps {
		ids = append(ids, step.ID)
	}

	// The seven-step sequence of the original script, with the relocation
	// split out of the clone.
	assert.Equal(t, []string{
		IDUpgradeInstaller,
		IDAccelerator,
		IDRemoveConflicts,
		IDBatchInstall,
		IDSystemPackages,
		IDPinFramework,
		IDClone,
		IDRelocate,
	}, ids)
}

func TestBuildPlan_OnlyRemovalToleratesFailure(t *testing.T) {
	steps, _ := defaultPlan(t)

	for _, step := range steps {
		if step.ID == IDRemoveConflicts {
			assert.True(t, step.Tolerate)
		} else {
			assert.False(t, step.Tolerate, "step %s must be fatal on failure", step.ID)
		}
	}
}

func TestBuildPlan_PinFollowsBatch(t *testing.T) {
	steps, _ := defaultPlan(t)

	batch, pin := -1, -1
	for i, step := range steps {
		switch step.ID {
		case IDBatchInstall:
			batch = i
		case IDPinFramework:
			pin = i
		}
	}

	require.GreaterOrEqual(t, batch, 0)
	require.GreaterOrEqual(t, pin, 0)
	assert.Greater(t, pin, batch, "the pin must run after the batch so its version wins")
}

func TestBuildPlan_Commands(t *testing.T) {
	steps, _ := defaultPlan(t)

	byID := make(map[string]Step)
	for _, step := range steps {
		byID[step.ID] = step
	}

	assert.Equal(t, "python3 -m pip install --upgrade pip", byID[IDUpgradeInstaller].Command)
	assert.Contains(t, byID[IDAccelerator].Command, "-f https://storage.googleapis.com/jax-releases/libtpu_releases.html")
	assert.Contains(t, byID[IDAccelerator].Command, "jax[tpu]")
	assert.Contains(t, byID[IDRemoveConflicts].Command, "uninstall -y")
	assert.Contains(t, byID[IDBatchInstall].Command, "git+https://github.com/ytdl-org/youtube-dl.git")
	assert.Contains(t, byID[IDSystemPackages].Command, "sudo apt-get install -y")
	assert.Contains(t, byID[IDPinFramework].Command, "--force-reinstall")
	assert.Contains(t, byID[IDPinFramework].Command, "torch==1.10.1")
	assert.Equal(t, "git clone https://github.com/CompVis/taming-transformers.git", byID[IDClone].Command)
	assert.Equal(t, "mv taming-transformers script/", byID[IDRelocate].Command)
}

func TestBuildPlan_SkipsEmptySections(t *testing.T) {
	m, err := manifest.Parse([]byte(`
install:
  - requests
`))
	require.NoError(t, err)

	tools := NewToolsetWithExecutor(m, t.TempDir(), true, &execx.MockExecutor{})
	steps := BuildPlan(m, tools)

	require.Len(t, steps, 1)
	assert.Equal(t, IDBatchInstall, steps[0].ID)
}

func TestBuildPlan_ExtraSteps(t *testing.T) {
	m, err := manifest.Parse([]byte(`
install:
  - requests
extra:
  - name: warm caches
    run: echo warm
  - run: echo unnamed
    tolerate: true
`))
	require.NoError(t, err)

	tools := NewToolsetWithExecutor(m, t.TempDir(), true, &execx.MockExecutor{})
	steps := BuildPlan(m, tools)

	require.Len(t, steps, 3)
	assert.Equal(t, "extra-1", steps[1].ID)
	assert.Equal(t, "warm caches", steps[1].Name)
	assert.False(t, steps[1].Tolerate)
	assert.Equal(t, "Extra step 2", steps[2].Name)
	assert.True(t, steps[2].Tolerate)
	assert.Equal(t, StageExtra, steps[2].Stage)
}
