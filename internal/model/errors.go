package model

import "errors"

// ExitCode defines the process exit codes of the lvenv CLI.
// Scripts can rely on "zero means success" and on the individual codes
// to tell apart the failure classes listed below.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitUsageError indicates malformed or conflicting command-line arguments.
	// The value matches the conventional argument-parser exit status.
	ExitUsageError ExitCode = 2

	// ExitPythonNotFound indicates no usable interpreter was found.
	ExitPythonNotFound ExitCode = 3

	// ExitProvisionFailed indicates environment creation failed on both
	// the first attempt and the symlink retry.
	ExitProvisionFailed ExitCode = 4

	// ExitShimFailed indicates sitecustomize.py could not be written.
	ExitShimFailed ExitCode = 5

	// ExitConfigError indicates the --config file could not be read or parsed.
	ExitConfigError ExitCode = 6
)

// CLIError pairs a message with the exit code the process should end with.
// Every failure that reaches the command line is one of these; anything else
// maps to ExitGeneralError.
type CLIError struct {
	Code    ExitCode
	Message string
	Err     error // cause, may be nil
}

func (e *CLIError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CLIError) Unwrap() error { return e.Err }

// NewCLIError returns a CLIError without a cause.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError returns a CLIError caused by err.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitCodeOf returns the exit code for err: ExitSuccess for nil, the code of
// the first CLIError in the chain, or ExitGeneralError.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitGeneralError
}
