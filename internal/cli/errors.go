package cli

import (
	"errors"
	"fmt"
)

// Exit statuses.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Reconstruction failure (structural error, host rejected an object)
	ExitCommandError = 2 // Command error (unreadable document, bad flags, bad config)
)

// Error codes for CLI responses.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // Document or database not found or unreadable
	ErrCodeUnsupported = "E003" // Unsupported document type
	ErrCodeDecode      = "E004" // Document failed to decode or validate against the schema
	ErrCodeConfig      = "E005" // Config file or flag error
	ErrCodeWriteFailed = "E006" // Database or snapshot write error

	ErrCodeStructural = "E101" // Tree builder aborted on a structural error
	ErrCodeGenerate   = "E102" // Scene generation failed
)

// ExitError carries the process exit status for a failed command along
// with its error code.
type ExitError struct {
	Status  int
	Code    string // empty when the failure has no CLI error code
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps err with an exit status and error code.
func WrapExitError(status int, code, message string, err error) *ExitError {
	return &ExitError{Status: status, Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit status for err: the ExitError's status when
// there is one in the chain, ExitFailure otherwise.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Status
	}
	return ExitFailure
}

// fail reports a coded error through the formatter and returns it as an
// ExitError for main.
func fail(f *OutputFormatter, status int, code, message string) error {
	_ = f.Error(code, message, nil)
	return &ExitError{Status: status, Code: code, Message: message}
}
