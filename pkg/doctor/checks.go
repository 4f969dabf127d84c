package doctor

import (
	"regexp"
	"runtime"
	"strings"

	"github.com/jaspreet-dot-casa/tpu-provision/pkg/execx"
)

// checkTool checks if a tool is installed and gets its version.
func checkTool(exec execx.CommandExecutor, id, name, desc string, versionArgs []string, versionRegex *regexp.Regexp, fixCmd *FixCommand) Check {
	check := Check{
		ID:          id,
		Name:        name,
		Description: desc,
		FixCommand:  fixCmd,
	}

	path, err := exec.LookPath(id)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	// Try to get version
	output, err := exec.Run(path, versionArgs...)
	if err != nil {
		// Tool exists but version check failed - still consider it OK
		check.Status = StatusOK
		check.Message = "installed (version unknown)"
		return check
	}

	// Extract version from output
	version := extractVersion(output, versionRegex)
	if version != "" {
		check.Status = StatusOK
		check.Message = version
	} else {
		check.Status = StatusOK
		check.Message = "installed"
	}

	return check
}

// extractVersion extracts version string from command output.
func extractVersion(output string, regex *regexp.Regexp) string {
	if regex == nil {
		// Default: look for common version patterns
		defaultRegex := regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9]+)?)`)
		matches := defaultRegex.FindStringSubmatch(output)
		if len(matches) >= 2 {
			return matches[1]
		}
		return ""
	}

	matches := regex.FindStringSubmatch(output)
	if len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// CheckPython checks if python3 is installed.
func CheckPython(exec execx.CommandExecutor) Check {
	return checkTool(
		exec,
		IDPython,
		"Python 3",
		"Interpreter that drives the package installer",
		[]string{"--version"},
		regexp.MustCompile(`Python (\d+\.\d+\.\d+)`),
		GetFixCommand(IDPython, runtime.GOOS),
	)
}

// CheckPip checks that pip is importable as a module of the interpreter,
// which is how every install step invokes it.
func CheckPip(exec execx.CommandExecutor) Check {
	check := Check{
		ID:          IDPip,
		Name:        "pip",
		Description: "Package installer (invoked as python3 -m pip)",
		FixCommand:  GetFixCommand(IDPip, runtime.GOOS),
	}

	path, err := exec.LookPath(IDPython)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "python3 not installed"
		return check
	}

	output, err := exec.Run(path, "-m", "pip", "--version")
	if err != nil {
		check.Status = StatusMissing
		check.Message = "pip module not available"
		return check
	}

	version := extractVersion(output, regexp.MustCompile(`pip (\d+\.\d+(?:\.\d+)?)`))
	if version != "" {
		check.Status = StatusOK
		check.Message = version
	} else {
		check.Status = StatusOK
		check.Message = "installed"
	}

	return check
}

// CheckGit checks if git is installed.
func CheckGit(exec execx.CommandExecutor) Check {
	return checkTool(
		exec,
		IDGit,
		"Git",
		"Clones the workload's source repository",
		[]string{"--version"},
		regexp.MustCompile(`git version (\d+\.\d+\.\d+)`),
		GetFixCommand(IDGit, runtime.GOOS),
	)
}

// CheckApt checks if apt-get is installed.
func CheckApt(exec execx.CommandExecutor) Check {
	return checkTool(
		exec,
		IDApt,
		"apt-get",
		"System package manager for OS-level dependencies",
		[]string{"--version"},
		regexp.MustCompile(`apt (\d+\.\d+(?:\.\d+)?)`),
		nil,
	)
}

// CheckSudo checks whether sudo is available, and whether it can run without
// a password prompt. Provisioning runs unattended, so a password prompt
// would hang the system package step.
func CheckSudo(exec execx.CommandExecutor) Check {
	check := Check{
		ID:          IDSudo,
		Name:        "sudo",
		Description: "Privilege elevation for system package installation",
	}

	path, err := exec.LookPath(IDSudo)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	output, err := exec.Run(path, "-n", "true")
	if err != nil {
		detail := strings.TrimSpace(output)
		if detail == "" {
			detail = "requires a password"
		}
		check.Status = StatusWarning
		check.Message = "installed but non-interactive use failed: " + detail
		return check
	}

	check.Status = StatusOK
	check.Message = "passwordless"
	return check
}

// CheckFFmpeg checks if ffmpeg is installed. The system package step
// installs it, so a missing ffmpeg before a run is only a warning.
func CheckFFmpeg(exec execx.CommandExecutor) Check {
	check := checkTool(
		exec,
		IDFFmpeg,
		"FFmpeg",
		"Multimedia transcoder used by the video workload",
		[]string{"-version"},
		regexp.MustCompile(`ffmpeg version (\S+)`),
		GetFixCommand(IDFFmpeg, runtime.GOOS),
	)
	if check.Status == StatusMissing {
		check.Status = StatusWarning
		check.Message = "not installed (provisioning installs it)"
	}
	return check
}
