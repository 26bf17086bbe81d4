package usecase

import (
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

// RetryConfig bounds automatic retries of read-only commands.
type RetryConfig struct {
	MaxRetries int           // Retries after the first attempt (default 3)
	Delay      time.Duration // Fixed delay between attempts (default 1s)
}

// DefaultRetryConfig returns the default retry budget.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		Delay:      time.Second,
	}
}

// RetryingExecutor re-runs a failing command after a fixed delay, up to
// MaxRetries extra attempts. It is only used for the status probe: a
// privileged switch must never repeat its authorization prompt on its own.
type RetryingExecutor struct {
	runner    domain.CommandRunner
	scheduler domain.Scheduler
	config    RetryConfig
	logger    *zap.Logger

	timer    domain.Timer
	attempts int
	run      uint64 // Bumped per RunWithRetry; stale callbacks compare against it
	closed   bool
}

// NewRetryingExecutor creates an executor. It must be driven from the loop
// that s represents.
func NewRetryingExecutor(
	runner domain.CommandRunner,
	s domain.Scheduler,
	config RetryConfig,
	logger *zap.Logger,
) *RetryingExecutor {
	return &RetryingExecutor{
		runner:    runner,
		scheduler: s,
		config:    config,
		logger:    logger,
	}
}

// RunWithRetry runs argv until it succeeds or the retry budget is spent.
// Exactly one of onSuccess or onFailure is called, unless the executor is
// closed first, in which case neither is.
func (e *RetryingExecutor) RunWithRetry(
	argv []string,
	onSuccess func(stdout string),
	onFailure func(last domain.CommandResult),
) {
	e.cancelTimer()
	e.attempts = 0
	e.run++
	e.attempt(e.run, argv, 0, onSuccess, onFailure)
}

// Attempts returns how many attempts the current run has made.
func (e *RetryingExecutor) Attempts() int {
	return e.attempts
}

// Close cancels any pending retry. Results of a process already running
// are discarded when they arrive.
func (e *RetryingExecutor) Close() {
	e.closed = true
	e.cancelTimer()
}

func (e *RetryingExecutor) attempt(
	run uint64,
	argv []string,
	retry int,
	onSuccess func(string),
	onFailure func(domain.CommandResult),
) {
	if e.closed || run != e.run {
		return
	}
	e.attempts++

	e.runner.Run(argv, func(res domain.CommandResult) {
		if e.closed || run != e.run {
			return
		}
		if res.OK() {
			onSuccess(res.Stdout)
			return
		}

		if retry >= e.config.MaxRetries {
			e.logger.Warn("command failed, retries exhausted",
				zap.Strings("argv", argv),
				zap.Int("attempts", e.attempts),
				zap.Int("exit_code", res.ExitCode),
				zap.String("diagnostic", res.Diagnostic()))
			onFailure(res)
			return
		}

		e.logger.Debug("command failed, scheduling retry",
			zap.Strings("argv", argv),
			zap.Int("attempt", e.attempts),
			zap.Duration("delay", e.config.Delay),
			zap.String("diagnostic", res.Diagnostic()))

		e.cancelTimer()
		e.timer = e.scheduler.AfterFunc(e.config.Delay, func() {
			e.timer = nil
			e.attempt(run, argv, retry+1, onSuccess, onFailure)
		})
	})
}

func (e *RetryingExecutor) cancelTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
