package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/provision"
)

// newPlanCmd creates the plan subcommand
func newPlanCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the provisioning plan",
		Long:  `Compile the manifest into the ordered step list and print it without executing anything.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, flags)
		},
	}
}

// runPlan prints the compiled plan.
func runPlan(cmd *cobra.Command, flags *rootFlags) error {
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

	tools := provision.NewToolset(m, workDir, true)
	steps := provision.BuildPlan(m, tools)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Provisioning Plan"))

	for i, step := range steps {
		badge := ""
		if step.Tolerate {
			badge = " " + tolerateStyle.Render("[tolerates failure]")
		}
		fmt.Fprintf(out, "%2d. %s%s\n", i+1, stepNameStyle.Render(step.Name), badge)
		fmt.Fprintf(out, "    %s\n", commandStyle.Render(step.Command))
	}

	fmt.Fprintf(out, "\n%d steps, strictly sequential, fail-fast.\n", len(steps))
	return nil
}
