package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validManifest() *Manifest {
	m, err := Parse([]byte(`
upgrade_installer: true
install:
  - requests
clone:
  url: https://github.com/CompVis/taming-transformers.git
`))
	if err != nil {
		panic(err)
	}
	return m
}

func TestValidate_OK(t *testing.T) {
	result := validManifest().Validate()
	assert.False(t, result.HasErrors())
}

func TestValidate_FindLinksWithoutPackage(t *testing.T) {
	m := validManifest()
	m.Accelerator.FindLinks = "https://example.com/releases.html"

	result := m.Validate()
	assert.True(t, result.HasErrors())
	require.NotEmpty(t, result.Issues)
	assert.Equal(t, "accelerator.find_links", result.Issues[0].Field)
}

func TestValidate_FindLinksNotURL(t *testing.T) {
	m := validManifest()
	m.Accelerator.Package = PackageSpec{Name: "jax[tpu]"}
	m.Accelerator.FindLinks = "not-a-url"

	result := m.Validate()
	assert.True(t, result.HasErrors())
}

func TestValidate_EmptyRemoveEntry(t *testing.T) {
	m := validManifest()
	m.Remove = []string{"tensorflow", "  "}

	result := m.Validate()
	assert.True(t, result.HasErrors())
	assert.Equal(t, 1, result.ErrorCount())
}

func TestValidate_NoInstallWarns(t *testing.T) {
	m := validManifest()
	m.Install = nil

	result := m.Validate()
	assert.False(t, result.HasErrors())
	assert.Equal(t, 1, result.WarningCount())
}

func TestValidate_UnpinnedForceReinstallWarns(t *testing.T) {
	m := validManifest()
	m.ForceReinstall = PackageSpec{Name: "torch"}

	result := m.Validate()
	assert.False(t, result.HasErrors())
	assert.Equal(t, 1, result.WarningCount())
}

func TestValidate_BadCloneURL(t *testing.T) {
	m := validManifest()
	m.Clone.URL = "taming-transformers"

	result := m.Validate()
	assert.True(t, result.HasErrors())
}

func TestValidate_CloneDestRequired(t *testing.T) {
	m := validManifest()
	m.Clone.Dest = ""

	result := m.Validate()
	assert.True(t, result.HasErrors())
}

func TestValidate_ExtraStepWithoutScript(t *testing.T) {
	m := validManifest()
	m.Extra = []ExtraStep{{Name: "noop", Run: "  "}}

	result := m.Validate()
	assert.True(t, result.HasErrors())
}
