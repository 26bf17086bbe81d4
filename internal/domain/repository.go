package domain

import (
	"context"
	"os"
	"time"
)

// CommandRunner spawns one external process per call and reports the outcome
// to done. Implementations deliver done on the caller's event loop.
type CommandRunner interface {
	// Run executes argv (never a shell string) and captures both output
	// streams fully before calling done exactly once.
	Run(argv []string, done func(CommandResult))
}

// Timer is a cancellable delayed callback.
type Timer interface {
	// Stop cancels the callback. A callback that already fired or was
	// queued but not yet run becomes a no-op.
	Stop() bool
}

// Scheduler is the single-threaded cooperative event loop seen by components.
type Scheduler interface {
	// Post queues fn to run on the loop.
	Post(fn func())

	// AfterFunc runs fn on the loop after d.
	AfterFunc(d time.Duration, fn func()) Timer
}

// GovernorStore provides access to the compiled-in governor table.
type GovernorStore interface {
	// GetAll returns all governors in display order.
	GetAll() []GovernorDescriptor

	// GetByID returns the descriptor for id, or ErrUnknownGovernor.
	GetByID(id GovernorID) (*GovernorDescriptor, error)

	// List returns governor IDs in display order.
	List() []GovernorID
}

// Presenter is implemented by whatever renders governor state to the user
// (menu checkmarks, indicator icon, notifications).
type Presenter interface {
	// OnGovernorChanged fires once per state mutation.
	OnGovernorChanged(id GovernorID, displayName, iconID string)

	// OnSwitchSucceeded acknowledges a successful user switch.
	OnSwitchSucceeded(displayName string)

	// OnSwitchFailed acknowledges a failed user switch.
	OnSwitchFailed(displayName, diagnostic string)
}

// ProcessManager handles OS process lookups.
// Implementation: uses gopsutil for cross-platform support.
type ProcessManager interface {
	// FindByName returns PIDs of processes whose name or command line
	// matches the pattern.
	FindByName(pattern string) ([]int, error)

	// IsRunning checks if a PID exists and is running.
	IsRunning(pid int) bool
}

// FileSystemManager handles filesystem operations.
type FileSystemManager interface {
	// Exists checks if a path exists.
	Exists(path string) bool

	// ReadTrimmed reads a small text file (sysfs attribute) without
	// surrounding whitespace.
	ReadTrimmed(path string) (string, error)

	// Glob expands a pattern after home expansion.
	Glob(pattern string) ([]string, error)

	// WriteAtomic replaces path with data in one rename.
	WriteAtomic(path string, data []byte, perm os.FileMode) error

	// ExpandHome expands ~ to the user's home directory.
	ExpandHome(path string) string
}

// SystemInspector collects CPU details for the status command.
type SystemInspector interface {
	Snapshot(ctx context.Context) (*CPUSnapshot, error)
}
