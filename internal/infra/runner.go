// Package infra implements infrastructure concerns (process execution, filesystem, system inspection).
package infra

import (
	"bytes"
	"errors"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

var errEmptyArgv = errors.New("empty argument vector")

// ExecRunner implements domain.CommandRunner using os/exec.
// Results are posted back onto the scheduler, so done always runs on the loop.
type ExecRunner struct {
	scheduler domain.Scheduler
	logger    *zap.Logger

	// For mocking in tests
	commandFunc func(name string, args ...string) *exec.Cmd
}

// NewExecRunner creates a runner delivering results through s.
func NewExecRunner(s domain.Scheduler, logger *zap.Logger) *ExecRunner {
	return &ExecRunner{
		scheduler:   s,
		logger:      logger,
		commandFunc: exec.Command,
	}
}

// Run spawns argv and reports the outcome through done.
// A process that cannot be spawned resolves right away with LaunchErr set.
// Once spawned, the process always runs to completion; there is no cancellation.
func (r *ExecRunner) Run(argv []string, done func(domain.CommandResult)) {
	start := time.Now()
	result := domain.CommandResult{Argv: append([]string(nil), argv...)}

	if len(argv) == 0 {
		result.LaunchErr = errEmptyArgv
		result.ExitCode = -1
		r.scheduler.Post(func() { done(result) })
		return
	}

	cmd := r.commandFunc(argv[0], argv[1:]...)
	cmd.Stdin = nil // Prevent any interactive prompts on our terminal
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		r.logger.Debug("command launch failed",
			zap.Strings("argv", argv),
			zap.Error(err))
		result.LaunchErr = err
		result.ExitCode = -1
		result.Duration = time.Since(start)
		r.scheduler.Post(func() { done(result) })
		return
	}

	go func() {
		err := cmd.Wait()
		result.Stdout = stdout.String()
		result.Stderr = stderr.String()
		result.Duration = time.Since(start)

		var exitErr *exec.ExitError
		switch {
		case err == nil:
			result.ExitCode = 0
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
		default:
			result.ExitCode = -1
			result.WaitErr = err
		}

		r.logger.Debug("command finished",
			zap.Strings("argv", argv),
			zap.Int("exit_code", result.ExitCode),
			zap.Int("stderr_bytes", len(result.Stderr)),
			zap.Duration("duration", result.Duration))

		r.scheduler.Post(func() { done(result) })
	}()
}

// Ensure ExecRunner implements domain.CommandRunner.
var _ domain.CommandRunner = (*ExecRunner)(nil)
