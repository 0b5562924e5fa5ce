package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for the overcheck CLI
const (
	// ExitSuccess means every declaration verified
	ExitSuccess = 0

	// ExitVerificationFailed means at least one class or file failed
	ExitVerificationFailed = 1

	// ExitInvalidArguments means bad flags, arguments or configuration
	ExitInvalidArguments = 3
)

// ExitError carries a process exit code alongside the error that caused it.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// withExitCode attaches code to err. A nil err stays nil.
func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error to a process exit code. Errors without an attached
// code are treated as verification failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitVerificationFailed
}
