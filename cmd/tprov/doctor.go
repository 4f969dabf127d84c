package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/doctor"
)

// newDoctorCmd creates the doctor subcommand
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check environment preconditions",
		Long: `Check that the tools every provisioning step assumes are present:
python3 with pip, git, apt-get with passwordless sudo, and ffmpeg.`,
		RunE: runDoctor,
	}
}

// runDoctor runs all precondition checks and prints a grouped report.
func runDoctor(cmd *cobra.Command, _ []string) error {
	checker := doctor.NewChecker()
	groups := checker.CheckAllAsync()

	out := cmd.OutOrStdout()
	for _, group := range groups {
		fmt.Fprintf(out, "%s\n", titleStyle.Render(group.Name))
		for _, check := range group.Checks {
			marker := okStyle.Render("ok")
			switch check.Status {
			case doctor.StatusMissing, doctor.StatusError:
				marker = errorStyle.Render(check.Status.String())
			case doctor.StatusWarning:
				marker = warningStyle.Render("warning")
			}
			fmt.Fprintf(out, "  [%s] %s: %s\n", marker, check.Name, check.Message)

			if check.Status == doctor.StatusMissing && check.FixCommand != nil {
				fmt.Fprintf(out, "        fix: %s\n", commandStyle.Render(check.FixCommand.Command))
			}
		}
		fmt.Fprintln(out)
	}

	summary := checker.GetSummary(groups)
	fmt.Fprintf(out, "%d checks: %d ok, %d missing, %d warnings, %d errors\n",
		summary.Total, summary.OK, summary.Missing, summary.Warnings, summary.Errors)

	if checker.HasIssues(groups) {
		return fmt.Errorf("environment is not ready for provisioning")
	}
	return nil
}
