package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/provision"
)

// newRunCmd creates the run subcommand
func newRunCmd(flags *rootFlags) *cobra.Command {
	var dryRun bool
	var noSudo bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the provisioning plan",
		Long: `Validate the manifest, compile it into the ordered step list and execute
it against this machine. Execution is fail-fast: the first hard step
failure stops the run with a non-zero exit. Installer and system package
output passes straight through to the terminal.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRun(flags, dryRun, noSudo)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the commands without executing them")
	cmd.Flags().BoolVar(&noSudo, "no-sudo", false, "Install system packages without sudo (already root)")

	return cmd
}

// runRun executes the provisioning plan.
func runRun(flags *rootFlags, dryRun, noSudo bool) error {
	logger := newLogger(flags)

	m, err := loadManifest(flags)
	if err != nil {
		return err
	}

	if err := printIssues(m.Validate()); err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("could not determine working directory: %w", err)
	}

	tools := provision.NewToolset(m, workDir, !noSudo)
	steps := provision.BuildPlan(m, tools)

	if dryRun {
		for _, step := range steps {
			fmt.Println(step.Command)
		}
		return nil
	}

	progress := func(e provision.ProgressEvent) {
		switch {
		case e.IsError:
			logger.Error(e.Message)
		case e.Stage == provision.StageComplete:
			logger.Info(e.Message)
		default:
			logger.Info(e.Message, "cmd", e.Command)
		}
	}

	runner := provision.NewRunner(tools)
	result := runner.Run(context.Background(), steps, progress)

	for _, sr := range result.Steps {
		logger.Debug("step finished", "step", sr.StepID, "status", sr.Status.String(), "duration", sr.Duration)
	}

	if !result.Success {
		if failed := result.FailedStep(); failed != nil {
			logger.Error("provisioning stopped", "step", failed.StepID, "run_id", result.RunID)
		}
		return result.Error
	}

	logger.Info("provisioning finished", "run_id", result.RunID, "duration", result.Duration, "steps", len(result.Steps))
	return nil
}
