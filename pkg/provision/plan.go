package provision

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/apt"
	"github.com/jaspreet-dot-casa/tpu-provision/pkg/execx"
	"github.com/jaspreet-dot-casa/tpu-provision/pkg/gitrepo"
	"github.com/jaspreet-dot-casa/tpu-provision/pkg/manifest"
	"github.com/jaspreet-dot-casa/tpu-provision/pkg/pip"
	"github.com/jaspreet-dot-casa/tpu-provision/pkg/shell"
)

// Step IDs for the core sequence.
const (
	IDUpgradeInstaller = "upgrade-installer"
	IDAccelerator      = "accelerator"
	IDRemoveConflicts  = "remove-conflicts"
	IDBatchInstall     = "batch-install"
	IDSystemPackages   = "system-packages"
	IDPinFramework     = "pin-framework"
	IDClone            = "clone"
	IDRelocate         = "relocate"
)

// Toolset bundles the external-tool runners a plan executes through.
type Toolset struct {
	Pip   *pip.Runner
	Apt   *apt.Installer
	Git   *gitrepo.Cloner
	Shell *shell.Runner
}

// NewToolset creates a toolset over the real system.
func NewToolset(m *manifest.Manifest, workDir string, sudo bool) *Toolset {
	return NewToolsetWithExecutor(m, workDir, sudo, &execx.RealExecutor{})
}

// NewToolsetWithExecutor creates a toolset with a custom executor (for
// testing). The shell runner always executes in-process.
func NewToolsetWithExecutor(m *manifest.Manifest, workDir string, sudo bool, exec execx.CommandExecutor) *Toolset {
	return &Toolset{
		Pip:   pip.NewWithExecutor(m.Python, exec),
		Apt:   apt.NewWithExecutor(sudo, exec),
		Git:   gitrepo.NewWithExecutor(workDir, exec),
		Shell: shell.New(workDir),
	}
}

// SetOutput directs all tool output to the given writers.
func (t *Toolset) SetOutput(stdout, stderr io.Writer) {
	t.Pip.Stdout, t.Pip.Stderr = stdout, stderr
	t.Apt.Stdout, t.Apt.Stderr = stdout, stderr
	t.Git.Stdout, t.Git.Stderr = stdout, stderr
	t.Shell.Stdout, t.Shell.Stderr = stdout, stderr
}

// BuildPlan compiles a manifest into the ordered step list. The order is
// the manifest's contract: conflict removal precedes the batch install, and
// the framework pin runs after the batch so its version wins.
func BuildPlan(m *manifest.Manifest, tools *Toolset) []Step {
	var steps []Step

	if m.UpgradeInstaller {
		steps = append(steps, Step{
			ID:      IDUpgradeInstaller,
			Name:    "Upgrade package installer",
			Stage:   StageInstaller,
			Command: renderPip(m.Python, pip.SelfUpgradeArgs()),
			Run:     func(ctx context.Context) error { return tools.Pip.SelfUpgrade(ctx) },
		})
	}

	if m.Accelerator.Package.String() != "" {
		opts := pip.InstallOptions{
			Specs:     []manifest.PackageSpec{m.Accelerator.Package},
			FindLinks: m.Accelerator.FindLinks,
		}
		steps = append(steps, Step{
			ID:      IDAccelerator,
			Name:    "Install accelerator-matched numerical library",
			Stage:   StageAccelerator,
			Command: renderPip(m.Python, pip.InstallArgs(opts)),
			Run:     func(ctx context.Context) error { return tools.Pip.Install(ctx, opts) },
		})
	}

	if len(m.Remove) > 0 {
		remove := m.Remove
		steps = append(steps, Step{
			ID:       IDRemoveConflicts,
			Name:     "Remove conflicting packages",
			Stage:    StageRemoving,
			Command:  renderPip(m.Python, pip.UninstallArgs(remove)),
			Tolerate: true,
			Run:      func(ctx context.Context) error { return tools.Pip.Uninstall(ctx, remove) },
		})
	}

	if len(m.Install) > 0 {
		opts := pip.InstallOptions{Specs: m.Install}
		steps = append(steps, Step{
			ID:      IDBatchInstall,
			Name:    fmt.Sprintf("Install %d application dependencies", len(m.Install)),
			Stage:   StageInstalling,
			Command: renderPip(m.Python, pip.InstallArgs(opts)),
			Run:     func(ctx context.Context) error { return tools.Pip.Install(ctx, opts) },
		})
	}

	if len(m.System) > 0 {
		system := m.System
		name, args := apt.InstallArgs(tools.Apt.Sudo, system)
		steps = append(steps, Step{
			ID:      IDSystemPackages,
			Name:    "Install system packages",
			Stage:   StageSystem,
			Command: name + " " + strings.Join(args, " "),
			Run:     func(ctx context.Context) error { return tools.Apt.Install(ctx, system) },
		})
	}

	if m.ForceReinstall.String() != "" {
		opts := pip.InstallOptions{
			Specs:          []manifest.PackageSpec{m.ForceReinstall},
			ForceReinstall: true,
		}
		steps = append(steps, Step{
			ID:      IDPinFramework,
			Name:    "Force-reinstall pinned framework",
			Stage:   StagePinning,
			Command: renderPip(m.Python, pip.InstallArgs(opts)),
			Run:     func(ctx context.Context) error { return tools.Pip.Install(ctx, opts) },
		})
	}

	if m.Clone.URL != "" {
		clone := m.Clone
		steps = append(steps, Step{
			ID:      IDClone,
			Name:    "Clone " + clone.RepoDirName(),
			Stage:   StageCloning,
			Command: "git " + strings.Join(gitrepo.CloneArgs(clone.URL), " "),
			Run:     func(ctx context.Context) error { return tools.Git.Clone(ctx, clone.URL) },
		})
		steps = append(steps, Step{
			ID:      IDRelocate,
			Name:    "Relocate checkout",
			Stage:   StageRelocating,
			Command: fmt.Sprintf("mv %s %s/", clone.RepoDirName(), clone.Dest),
			Run: func(ctx context.Context) error {
				_, err := tools.Git.Relocate(clone.RepoDirName(), clone.Dest)
				return err
			},
		})
	}

	for i, extra := range m.Extra {
		name := extra.Name
		if name == "" {
			name = fmt.Sprintf("Extra step %d", i+1)
		}
		steps = append(steps, Step{
			ID:       fmt.Sprintf("extra-%d", i+1),
			Name:     name,
			Stage:    StageExtra,
			Command:  strings.TrimSpace(extra.Run),
			Tolerate: extra.Tolerate,
			Script:   extra.Run,
		})
	}

	return steps
}

func renderPip(python string, args []string) string {
	return python + " " + strings.Join(args, " ")
}
