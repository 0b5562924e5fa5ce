package errors

import (
	"fmt"
	"strings"
)

// MissingDeclarationFiles is returned when verify is run without paths.
func MissingDeclarationFiles() *CLIError {
	return NewArgumentErrorWithUsage(
		"at least one declaration file is required",
		"overcheck verify <file.yaml>...",
		"Pass one or more YAML declaration files",
		"Example: overcheck verify classes.yaml",
	)
}

// DeclarationNotFound creates an error for a missing declaration file.
func DeclarationNotFound(path string) *CLIError {
	return &CLIError{
		Category: Declaration,
		Message:  fmt.Sprintf("declaration file not found: %s", path),
		Remediation: []string{
			"Check that the path is correct",
			"Declaration files list classes under a top-level 'classes:' key",
		},
	}
}

// DeclarationInvalid creates an error for a declaration that failed to
// parse or validate. problems are the individual messages.
func DeclarationInvalid(path string, problems []string) *CLIError {
	return &CLIError{
		Category: Declaration,
		Message:  fmt.Sprintf("invalid declaration file %s:\n  %s", path, strings.Join(problems, "\n  ")),
		Remediation: []string{
			"Every class needs a name; bases must name classes in the same file",
			"Member names must be unique within a class",
		},
	}
}

// InvalidMode creates an error for an unknown resolution mode.
func InvalidMode(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid resolution mode: %q", provided),
		"overcheck verify --mode recent|topmost <file>...",
		"recent: check overrides against the nearest ancestor",
		"topmost: check overrides against the most distant ancestor",
	)
}

// InvalidFormat creates an error for an unknown report format.
func InvalidFormat(provided string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid output format: %q", provided),
		"Valid formats: text, json, yaml",
	)
}

// ConfigParseError creates an error for an unreadable or invalid config file.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .overcheck/config.yml and ~/.config/overcheck/config.yml",
		"Print the defaults with: overcheck config init --stdout",
		"Environment overrides use the OVERCHECK_ prefix, e.g. OVERCHECK_MODE=topmost",
	)
}

// VerificationFailed summarizes a run in which classes failed verification.
func VerificationFailed(problems int) *CLIError {
	return &CLIError{
		Category: Verification,
		Message:  fmt.Sprintf("%d problem(s) found", problems),
		Remediation: []string{
			"Remove the override mark from methods that do not override anything",
			"Or try the other resolution mode with --mode",
		},
	}
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}
