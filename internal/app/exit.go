package app

import (
	"errors"

	"github.com/restbind/restbind"
)

// ExitResult lets CLI handlers control exit code + whether output goes to stderr.
// This keeps command output clean while still using `error` as the control flow.
// Note: ExitResult is also used for successful output (Code: 0) — the name
// reflects that it controls process exit, not that something went wrong.
type ExitResult struct {
	Code     int
	Message  string
	ToStderr bool
}

func (e ExitResult) Error() string   { return e.Message }
func (e ExitResult) ExitCode() int   { return e.Code }
func (e ExitResult) UseStderr() bool { return e.ToStderr }

// usageExit creates an ExitResult for usage errors (code 2, stderr).
func usageExit(message string) error {
	return ExitResult{Code: 2, Message: message, ToStderr: true}
}

// failExit creates an ExitResult for runtime failures (code 1, stderr).
func failExit(message string) error {
	return ExitResult{Code: 1, Message: message, ToStderr: true}
}

// BindingError reports whether err belongs to the pre-network binding and
// lookup class, which commands turn into a usage exit rather than a runtime
// failure.
func BindingError(err error) bool {
	var (
		missing    *restbind.MissingParameterError
		unexpected *restbind.UnexpectedParametersError
		badRes     *restbind.UnknownResourceError
		badOp      *restbind.UnknownOperationError
	)
	return errors.As(err, &missing) || errors.As(err, &unexpected) ||
		errors.As(err, &badRes) || errors.As(err, &badOp)
}
