// Package main provides the tprov CLI tool for provisioning TPU VMs for the
// video workload.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rootFlags holds the persistent flags shared by all subcommands.
type rootFlags struct {
	manifestPath string
	verbose      bool
}

// newRootCmd creates the root command for tprov
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "tprov",
		Short: "TPU VM Provisioning Tool",
		Long: `tprov brings a bare TPU VM to the state the video workload needs:
it upgrades the package installer, installs the accelerator-matched JAX
build, removes conflicting packages, installs the application and system
dependencies, pins the framework version, and clones the tokenizer
repository into place.

The plan is strictly sequential and fail-fast; only the conflict-removal
step tolerates failure. Re-running in the same directory fails at the
clone step by design.`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.manifestPath, "manifest", "m", "", "Path to a manifest file (default: built-in manifest)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newRunCmd(flags),
		newPlanCmd(flags),
		newValidateCmd(flags),
		newDoctorCmd(),
	)

	return rootCmd
}
