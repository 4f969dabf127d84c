// Package manifest defines the provisioning manifest: the ordered,
// declarative description of everything a fresh VM needs before the video
// workload can run on it.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCloneDest is the directory the cloned repository is moved into.
// Downstream workload code imports from this path and expects it verbatim.
const DefaultCloneDest = "script"

// AcceleratorSpec describes the accelerator-matched numerical library
// install: the package itself plus the auxiliary find-links index that
// hosts the hardware-specific builds.
type AcceleratorSpec struct {
	Package   PackageSpec `yaml:"package"`
	FindLinks string      `yaml:"find_links"`
}

// CloneSpec describes the repository clone and relocation step.
type CloneSpec struct {
	// URL is the repository to clone (full history, default branch).
	URL string `yaml:"url"`

	// Dest is the directory the checkout is moved into after cloning.
	Dest string `yaml:"dest"`
}

// RepoDirName derives the checkout directory name git will create from the
// clone URL.
func (c CloneSpec) RepoDirName() string {
	url := strings.TrimSuffix(strings.TrimRight(c.URL, "/"), ".git")
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		return url[idx+1:]
	}
	return url
}

// ExtraStep is a raw shell step appended after the core provisioning
// sequence. Extra steps run through the built-in shell interpreter.
type ExtraStep struct {
	Name     string `yaml:"name"`
	Run      string `yaml:"run"`
	Tolerate bool   `yaml:"tolerate,omitempty"`
}

// Manifest is the full provisioning plan as data. Field order mirrors
// execution order: the plan is strictly sequential and the ordering is
// significant (the force-reinstall must follow the batch install so its pin
// wins any version conflict).
type Manifest struct {
	// Python is the interpreter that drives pip (python -m pip ...).
	Python string `yaml:"python"`

	// UpgradeInstaller upgrades pip itself before anything else.
	UpgradeInstaller bool `yaml:"upgrade_installer"`

	// Accelerator is the hardware-matched numerical library install.
	Accelerator AcceleratorSpec `yaml:"accelerator"`

	// Remove lists packages uninstalled before the batch install. Removal
	// tolerates absence: uninstalling a package that is not present is a
	// non-error outcome.
	Remove []string `yaml:"remove"`

	// Install is the flat batch of application dependencies, installed in a
	// single installer invocation in manifest order.
	Install []PackageSpec `yaml:"install"`

	// System lists OS packages installed through the system package manager.
	System []string `yaml:"system"`

	// ForceReinstall is the pinned framework reinstalled after the batch,
	// overriding whatever version the batch pulled in.
	ForceReinstall PackageSpec `yaml:"force_reinstall"`

	// Clone is the source repository cloned and relocated for downstream use.
	Clone CloneSpec `yaml:"clone"`

	// Extra are raw shell steps appended after the core sequence.
	Extra []ExtraStep `yaml:"extra,omitempty"`
}

// Load reads and parses a manifest from a YAML file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse parses manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.applyDefaults()
	return &m, nil
}

// Default returns the embedded manifest reproducing the original
// provisioning script for the TPU video workload.
func Default() *Manifest {
	m, err := Parse([]byte(defaultManifest))
	if err != nil {
		// The embedded manifest is validated by tests; a parse failure here
		// is a build defect.
		panic(fmt.Sprintf("embedded manifest is invalid: %v", err))
	}
	return m
}

// applyDefaults fills fields the manifest may omit.
func (m *Manifest) applyDefaults() {
	if m.Python == "" {
		m.Python = "python3"
	}
	if m.Clone.Dest == "" && m.Clone.URL != "" {
		m.Clone.Dest = DefaultCloneDest
	}
}
