// Package domain contains core business entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

import (
	"strings"
	"time"
)

// GovernorID identifies a CPU power governor mode.
// Registered values are the constants below; probe output may also yield
// provisional identifiers that are not in the registry.
type GovernorID string

const (
	GovernorBalanced    GovernorID = "balanced"
	GovernorPowersave   GovernorID = "powersave"
	GovernorPerformance GovernorID = "performance"
)

// FallbackIconID is shown for governors the registry does not know about.
const FallbackIconID = "cpu-symbolic"

func (id GovernorID) String() string {
	return string(id)
}

// NormalizeGovernorID lowercases and trims a governor name.
// The tool's own aliases for the default mode all collapse to balanced.
func NormalizeGovernorID(name string) GovernorID {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "reset", "default", "auto":
		return GovernorBalanced
	}
	return GovernorID(n)
}

// GovernorDescriptor is one immutable registry entry.
type GovernorDescriptor struct {
	ID                GovernorID
	DisplayName       string
	IconID            string
	ActivationCommand string // Shell expression, run through the configured shell
}

// OperationKind distinguishes the two operations the controller issues.
type OperationKind string

const (
	OperationProbe  OperationKind = "probe"
	OperationSwitch OperationKind = "switch"
)

// PendingOperation tracks an in-flight probe or switch.
type PendingOperation struct {
	ID             string
	Kind           OperationKind
	Attempt        int        // Probe only; switches are never retried
	TargetGovernor GovernorID // Switch only
	StartedAt      time.Time
}

// ProbePhase is the startup probe state machine.
type ProbePhase string

const (
	ProbeIdle     ProbePhase = "idle"
	ProbeProbing  ProbePhase = "probing"
	ProbeResolved ProbePhase = "resolved"
	ProbeFailed   ProbePhase = "probe_failed"
)

// CommandResult captures what happened during a single external command run.
type CommandResult struct {
	Argv      []string
	Stdout    string
	Stderr    string
	ExitCode  int
	LaunchErr error // Set when the process could not be spawned at all
	WaitErr   error // Non-exit error while waiting (I/O failure)
	Duration  time.Duration
}

// Launched reports whether the process was spawned.
func (r CommandResult) Launched() bool {
	return r.LaunchErr == nil
}

// OK reports success: the process ran, exited zero and wrote nothing but
// whitespace to stderr. Privilege wrappers can exit 0 after printing an
// authorization failure, so stderr counts.
func (r CommandResult) OK() bool {
	return r.LaunchErr == nil &&
		r.WaitErr == nil &&
		r.ExitCode == 0 &&
		strings.TrimSpace(r.Stderr) == ""
}

// Diagnostic returns the most useful failure text available, or "".
func (r CommandResult) Diagnostic() string {
	if stderr := strings.TrimSpace(r.Stderr); stderr != "" {
		return stderr
	}
	if r.LaunchErr != nil {
		return r.LaunchErr.Error()
	}
	if r.WaitErr != nil {
		return r.WaitErr.Error()
	}
	return ""
}

// CPUSnapshot is a point-in-time view of the host CPU for status reporting.
type CPUSnapshot struct {
	Model           string
	PhysicalCores   int
	LogicalCores    int
	Driver          string         // scaling_driver of cpu0, if readable
	KernelGovernors map[string]int // scaling_governor -> number of CPUs
	AverageMHz      float64        // from scaling_cur_freq; 0 when unknown
}
