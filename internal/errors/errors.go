// Package errors provides structured CLI errors for overcheck. Each error
// carries a category and the steps a user can take to fix it.
package errors

import (
	"fmt"

	"github.com/ariel-frischer/overcheck/internal/override"
	crdb "github.com/cockroachdb/errors"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Argument errors are caused by invalid or missing command arguments.
	Argument ErrorCategory = iota
	// Configuration errors are caused by invalid configuration values or files.
	Configuration
	// Declaration errors come from unreadable or invalid declaration files.
	Declaration
	// Verification errors mean at least one class failed verification.
	Verification
	// Runtime errors occur during command execution.
	Runtime
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Declaration:
		return "Declaration Error"
	case Verification:
		return "Verification Failed"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Argument, Configuration, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional, for argument errors).
	Usage string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewArgumentError creates a new argument error with the given message and remediation steps.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage creates a new argument error that includes correct usage syntax.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewRuntimeError creates a new runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Runtime, Message: message, Remediation: remediation}
}

// Wrap wraps an existing error with a CLIError, preserving the original
// message. Hints attached with cockroachdb/errors become remediation steps.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: append(crdb.GetAllHints(err), remediation...),
		Cause:       err,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: append(crdb.GetAllHints(err), remediation...),
		Cause:       err,
	}
}

// IsCLIError checks if an error is or wraps a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if crdb.As(err, &cliErr) {
		return cliErr
	}
	return nil
}

// FromError classifies any error as a CLIError. Verification errors from
// the override engine keep their category; anything unknown is Runtime.
func FromError(err error) *CLIError {
	if err == nil {
		return nil
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr
	}
	switch {
	case crdb.Is(err, override.ErrConfiguration):
		return Wrap(err, Configuration, "Valid resolution modes: "+modeList())
	case crdb.Is(err, override.ErrOverrideVerification), crdb.Is(err, override.ErrClassHierarchy):
		return Wrap(err, Verification)
	default:
		return Wrap(err, Runtime)
	}
}

func modeList() string {
	out := ""
	for i, m := range override.ValidModes {
		if i > 0 {
			out += ", "
		}
		out += m.String()
	}
	return out
}
