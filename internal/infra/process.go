package infra

import (
	"os"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

// AutoCpufreqProcessName is the daemon process status looks for.
const AutoCpufreqProcessName = "auto-cpufreq"

// ProcessManagerImpl implements domain.ProcessManager using gopsutil.
type ProcessManagerImpl struct{}

// NewProcessManager creates a new process manager.
func NewProcessManager() domain.ProcessManager {
	return &ProcessManagerImpl{}
}

// FindByName returns PIDs of processes matching the pattern (case-insensitive).
// auto-cpufreq runs under a python interpreter, so the command line is
// checked as well as the process name.
func (pm *ProcessManagerImpl) FindByName(pattern string) ([]int, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	var found []int
	patternLower := strings.ToLower(pattern)
	self := int32(os.Getpid())

	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		name, err := p.Name()
		if err != nil {
			continue // Process may have exited
		}

		if strings.Contains(strings.ToLower(name), patternLower) {
			found = append(found, int(p.Pid))
			continue
		}

		cmdline, err := p.Cmdline()
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(cmdline), patternLower) {
			found = append(found, int(p.Pid))
		}
	}

	return found, nil
}

// IsRunning checks if a PID exists and is running.
func (pm *ProcessManagerImpl) IsRunning(pid int) bool {
	// On Unix, FindProcess always succeeds
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// Send signal 0 to check if process exists
	err = proc.Signal(syscall.Signal(0))
	return err == nil
}

// RunningPIDs returns the PIDs matching pattern that are still alive.
// Processes listed by FindByName can exit before they are reported.
func RunningPIDs(pm domain.ProcessManager, pattern string) ([]int, error) {
	pids, err := pm.FindByName(pattern)
	if err != nil {
		return nil, err
	}

	running := pids[:0]
	for _, pid := range pids {
		if pm.IsRunning(pid) {
			running = append(running, pid)
		}
	}
	return running, nil
}

// Ensure ProcessManagerImpl implements domain.ProcessManager.
var _ domain.ProcessManager = (*ProcessManagerImpl)(nil)
