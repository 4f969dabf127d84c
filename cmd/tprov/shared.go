package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/manifest"
)

// loadManifest loads the manifest named by --manifest, or the built-in
// manifest when the flag is empty.
func loadManifest(flags *rootFlags) (*manifest.Manifest, error) {
	if flags.manifestPath == "" {
		return manifest.Default(), nil
	}

	m, err := manifest.Load(flags.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("could not load manifest: %w", err)
	}
	return m, nil
}

// newLogger creates the run logger honoring --verbose.
func newLogger(flags *rootFlags) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if flags.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// printIssues prints validation issues in [SEVERITY] lines and returns an
// error when any are fatal.
func printIssues(result *manifest.Result) error {
	for _, issue := range result.Issues {
		prefix := "WARNING"
		if issue.Severity == manifest.SeverityError {
			prefix = "ERROR"
		}

		if issue.Field != "" {
			fmt.Printf("[%s] %s: %s\n", prefix, issue.Field, issue.Message)
		} else {
			fmt.Printf("[%s] %s\n", prefix, issue.Message)
		}
	}

	if result.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount())
	}
	return nil
}
