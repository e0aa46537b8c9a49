package cli

import (
	"errors"
	"fmt"

	"mfdb/pkg/mfdb"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0 // Successful execution
	ExitFailure = 1 // Accession not found, invalid range or unsupported slice
	ExitUsage   = 2 // Bad flags, config or sources
	ExitIO      = 3 // A file or index could not be opened, or output failed
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	switch {
	case e.Message == "":
		return e.Err.Error()
	case e.Err == nil:
		return e.Message
	default:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// ExitError come from cobra's own flag and argument checks, so they map to
// ExitUsage.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// classify maps store errors to exit codes.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mfdb.ErrSourceNotFound):
		return WrapExitError(ExitUsage, "", err)
	case mfdb.IsNotFound(err), mfdb.IsInvalidRange(err), errors.Is(err, mfdb.ErrUnsupportedIndex):
		return WrapExitError(ExitFailure, "", err)
	default:
		return WrapExitError(ExitIO, "", err)
	}
}
