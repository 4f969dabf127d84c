package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newValidateCmd creates the validate subcommand
func newValidateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a manifest",
		Long:  `Validate the manifest's structure: package specifiers, the find-links index, the clone target and extra steps.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(flags)
		},
	}
}

// runValidate validates the selected manifest.
func runValidate(flags *rootFlags) error {
	m, err := loadManifest(flags)
	if err != nil {
		return err
	}

	result := m.Validate()
	if err := printIssues(result); err != nil {
		return err
	}

	if len(result.Issues) == 0 {
		fmt.Println("Manifest is valid.")
	} else {
		fmt.Printf("\nValidation passed with %d warning(s).\n", result.WarningCount())
	}

	return nil
}
