package domain

import (
	"errors"
	"fmt"
)

// Request validation rejections. No process is spawned for these.
var (
	ErrAlreadyActive       = errors.New("governor already active")
	ErrUnknownGovernor     = errors.New("unknown governor")
	ErrOperationInProgress = errors.New("a governor switch is already in progress")
	ErrControllerClosed    = errors.New("governor controller closed")
)

// Execution outcomes.
var (
	// ErrLaunchFailure means the command could not be spawned.
	ErrLaunchFailure = errors.New("command launch failed")

	// ErrExecutionFailure means the command ran but exit status or stderr
	// reported failure.
	ErrExecutionFailure = errors.New("command execution failed")

	// ErrParseAmbiguity means probe output carried the override marker but
	// no recognizable mode name.
	ErrParseAmbiguity = errors.New("ambiguous probe output")
)

// GenericSwitchDiagnostic is shown when a failed switch left no diagnostic text.
const GenericSwitchDiagnostic = "Please try again or check system logs."

// SwitchError represents a failed governor switch.
type SwitchError struct {
	// Governor is the requested target
	Governor GovernorID
	// Kind is ErrLaunchFailure or ErrExecutionFailure
	Kind error
	// Diagnostic is the user-facing text (stderr, launch error or generic hint)
	Diagnostic string
	// Err is the underlying launch or wait error, if any
	Err error
}

// Error returns a formatted error message
func (e *SwitchError) Error() string {
	return fmt.Sprintf("switch to %s: %v: %s", e.Governor, e.Kind, e.Diagnostic)
}

// Unwrap exposes Kind and the underlying cause for errors.Is/As.
func (e *SwitchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
