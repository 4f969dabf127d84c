package manifest

import (
	"fmt"
	"strings"
)

// Severity represents the severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a validation issue found in a manifest.
type Issue struct {
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds all validation results.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if there are any error-level issues.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

func (r *Result) addError(field, message string) {
	r.Issues = append(r.Issues, Issue{Field: field, Message: message, Severity: SeverityError})
}

func (r *Result) addWarning(field, message string) {
	r.Issues = append(r.Issues, Issue{Field: field, Message: message, Severity: SeverityWarning})
}

// Validate checks the manifest for structural problems. It validates shape
// only; package names, versions and URLs are opaque literals whose real
// validation is delegated to the installer.
func (m *Manifest) Validate() *Result {
	result := &Result{}

	if m.Python == "" {
		result.addError("python", "python interpreter is required")
	}

	if m.Accelerator.Package.String() == "" && m.Accelerator.FindLinks != "" {
		result.addError("accelerator.find_links", "find_links is set but no accelerator package is named")
	}
	if m.Accelerator.FindLinks != "" && !strings.HasPrefix(m.Accelerator.FindLinks, "http") {
		result.addError("accelerator.find_links", fmt.Sprintf("find_links %q is not a URL", m.Accelerator.FindLinks))
	}

	for i, name := range m.Remove {
		if strings.TrimSpace(name) == "" {
			result.addError(fmt.Sprintf("remove[%d]", i), "empty package name")
		}
	}

	if len(m.Install) == 0 {
		result.addWarning("install", "no packages to install")
	}

	for i, name := range m.System {
		if strings.TrimSpace(name) == "" {
			result.addError(fmt.Sprintf("system[%d]", i), "empty package name")
		}
	}

	if m.ForceReinstall.String() != "" && !m.ForceReinstall.Pinned() {
		result.addWarning("force_reinstall", "force-reinstall without an exact pin reinstalls whatever resolves as latest")
	}

	if m.Clone.URL != "" {
		if !strings.HasPrefix(m.Clone.URL, "http") && !strings.HasPrefix(m.Clone.URL, "git@") {
			result.addError("clone.url", fmt.Sprintf("clone URL %q is not a recognized repository URL", m.Clone.URL))
		}
		if m.Clone.Dest == "" {
			result.addError("clone.dest", "clone destination directory is required")
		}
		if m.Clone.RepoDirName() == "" {
			result.addError("clone.url", "cannot derive checkout directory name from clone URL")
		}
	}

	for i, step := range m.Extra {
		if strings.TrimSpace(step.Run) == "" {
			result.addError(fmt.Sprintf("extra[%d]", i), "extra step has no script")
		}
		if strings.TrimSpace(step.Name) == "" {
			result.addWarning(fmt.Sprintf("extra[%d]", i), "extra step has no name")
		}
	}

	return result
}
