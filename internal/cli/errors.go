package cli

import (
	"errors"
	"fmt"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // operation failure (invalid code, bad device file, ...)
	ExitCommandError = 2 // command error (missing paths, unknown protocol, ...)
)

// Error codes reported in CLI output.
const (
	ErrCodeGeneric         = "E001"
	ErrCodeInvalidCode     = "E002" // code string failed to decode
	ErrCodeUnknownProtocol = "E003"
	ErrCodeInvalidSignal   = "E004" // durations outside the wire range
	ErrCodeNotFound        = "E005" // file, directory, or library row missing
	ErrCodeInvalidDevice   = "E006" // device file failed validation
	ErrCodeWriteFailed     = "E007"
	ErrCodeDatabase        = "E008"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // exit code (ExitFailure or ExitCommandError)
	Message string // error message
	Err     error  // underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// fail emits the error through the formatter and returns an ExitError so
// the process exits with the right code without cobra re-printing it.
func fail(formatter *OutputFormatter, exitCode int, errCode, message string) error {
	_ = formatter.Error(errCode, message, nil)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", errCode, message))
}
