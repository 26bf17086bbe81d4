// Package usecase contains application business logic.
//
// Everything here runs on the single event loop: the controller, its
// executor and its state are not safe for concurrent use. Process
// completions and retry timers re-enter through domain.Scheduler.
package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

// ControllerConfig holds controller settings.
type ControllerConfig struct {
	ProbeArgv []string // Read-only, time-bounded status command
	Shell     string   // Interpreter for activation commands
	Retry     RetryConfig
}

// DefaultControllerConfig returns default controller configuration.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		ProbeArgv: ProbeArgv(time.Second),
		Shell:     "sh",
		Retry:     DefaultRetryConfig(),
	}
}

// ProbeArgv builds the bounded status command for a timeout.
func ProbeArgv(timeout time.Duration) []string {
	return []string{"timeout", formatTimeout(timeout), "auto-cpufreq", "--stats"}
}

// formatTimeout renders d for coreutils timeout, which takes decimal seconds.
// d is rounded up to whole milliseconds with a floor of 1ms: timeout treats
// 0 as no limit.
func formatTimeout(d time.Duration) string {
	ms := (d + time.Millisecond - 1) / time.Millisecond
	if ms < 1 {
		ms = 1
	}
	s := fmt.Sprintf("%.3f", float64(ms)/1000)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "s"
}

// GovernorController keeps GovernorState in line with the system: it probes
// once at construction and applies user-requested switches.
type GovernorController struct {
	config    ControllerConfig
	store     domain.GovernorStore
	runner    domain.CommandRunner
	executor  *RetryingExecutor
	state     *GovernorState
	presenter domain.Presenter
	logger    *zap.Logger

	phase     domain.ProbePhase
	probeOp   *domain.PendingOperation
	switchOp  *domain.PendingOperation
	probeDone chan struct{}
	renderSub SubscriptionID
	closed    bool
}

// NewGovernorController creates a controller, subscribes the presenter and
// issues the startup probe. Must be called on the loop s represents.
func NewGovernorController(
	config ControllerConfig,
	store domain.GovernorStore,
	runner domain.CommandRunner,
	s domain.Scheduler,
	presenter domain.Presenter,
	logger *zap.Logger,
) *GovernorController {
	c := &GovernorController{
		config:    config,
		store:     store,
		runner:    runner,
		executor:  NewRetryingExecutor(runner, s, config.Retry, logger),
		state:     NewGovernorState(),
		presenter: presenter,
		logger:    logger,
		phase:     domain.ProbeIdle,
		probeDone: make(chan struct{}),
	}
	c.renderSub = c.state.Subscribe(c.render)
	c.probe()
	return c
}

// State exposes the governor state for additional subscribers.
func (c *GovernorController) State() *GovernorState {
	return c.state
}

// Active returns the active governor, if resolved.
func (c *GovernorController) Active() (domain.GovernorID, bool) {
	return c.state.Active()
}

// Phase returns the startup probe phase.
func (c *GovernorController) Phase() domain.ProbePhase {
	return c.phase
}

// ProbeDone is closed once the startup probe resolves, successfully or not.
// It is safe to wait on from any goroutine.
func (c *GovernorController) ProbeDone() <-chan struct{} {
	return c.probeDone
}

// RequestSwitch asks for governor id. Validation failures (closed, unknown
// governor, switch in progress, already active) are returned
// immediately and spawn nothing. Otherwise the activation command runs
// once, the presenter receives exactly one acknowledgment, and done (if
// not nil) receives nil or a *domain.SwitchError.
func (c *GovernorController) RequestSwitch(id domain.GovernorID, done func(error)) error {
	if c.closed {
		return domain.ErrControllerClosed
	}

	desc, err := c.store.GetByID(id)
	if err != nil {
		return err
	}

	if c.switchOp != nil {
		return fmt.Errorf("%w: switching to %s", domain.ErrOperationInProgress, c.switchOp.TargetGovernor)
	}

	if active, ok := c.state.Active(); ok && active == id {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyActive, desc.DisplayName)
	}

	op := newOperation(domain.OperationSwitch, id)
	c.switchOp = op

	c.logger.Info("switching governor",
		zap.String("op_id", op.ID),
		zap.String("governor", id.String()))

	c.runner.Run(shellArgv(c.config.Shell, desc.ActivationCommand), func(res domain.CommandResult) {
		c.finishSwitch(op, *desc, res, done)
	})
	return nil
}

// Close tears the controller down: pending retries are cancelled and
// results that arrive later are discarded. Safe to call twice.
func (c *GovernorController) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.executor.Close()
	c.state.Unsubscribe(c.renderSub)
	c.logger.Debug("governor controller closed")
}

func (c *GovernorController) probe() {
	c.phase = domain.ProbeProbing
	c.probeOp = newOperation(domain.OperationProbe, "")

	c.logger.Debug("probing current governor",
		zap.String("op_id", c.probeOp.ID),
		zap.Strings("argv", c.config.ProbeArgv))

	c.executor.RunWithRetry(c.config.ProbeArgv, c.probeSucceeded, c.probeFailed)
}

func (c *GovernorController) probeSucceeded(stdout string) {
	c.probeOp.Attempt = c.executor.Attempts()

	id, err := ParseStats(stdout)
	switch {
	case err == nil:
		c.logger.Info("probe resolved governor",
			zap.String("op_id", c.probeOp.ID),
			zap.String("governor", id.String()),
			zap.Int("attempts", c.probeOp.Attempt))
		c.state.SetActive(id)
	case errors.Is(err, domain.ErrParseAmbiguity):
		c.logger.Warn("probe output not understood",
			zap.String("op_id", c.probeOp.ID),
			zap.Error(err),
			zap.String("stdout", stdout))
		c.applyFallback()
	}

	c.resolveProbe(domain.ProbeResolved)
}

func (c *GovernorController) probeFailed(last domain.CommandResult) {
	c.probeOp.Attempt = c.executor.Attempts()

	c.logger.Warn("probe failed, assuming default governor",
		zap.String("op_id", c.probeOp.ID),
		zap.Int("attempts", c.probeOp.Attempt),
		zap.Bool("launched", last.Launched()),
		zap.String("diagnostic", last.Diagnostic()))

	c.applyFallback()
	c.resolveProbe(domain.ProbeFailed)
}

// applyFallback sets balanced unless a switch already resolved the state;
// a probe that learned nothing must not overwrite a known value.
func (c *GovernorController) applyFallback() {
	if _, ok := c.state.Active(); ok {
		return
	}
	c.state.SetActive(domain.GovernorBalanced)
}

func (c *GovernorController) resolveProbe(phase domain.ProbePhase) {
	c.phase = phase
	c.probeOp = nil
	close(c.probeDone)
}

func (c *GovernorController) finishSwitch(
	op *domain.PendingOperation,
	desc domain.GovernorDescriptor,
	res domain.CommandResult,
	done func(error),
) {
	c.switchOp = nil
	if c.closed {
		if done != nil {
			done(domain.ErrControllerClosed)
		}
		return
	}

	if res.OK() {
		c.logger.Info("governor switched",
			zap.String("op_id", op.ID),
			zap.String("governor", desc.ID.String()),
			zap.Duration("duration", res.Duration))
		c.state.SetActive(desc.ID)
		c.presenter.OnSwitchSucceeded(desc.DisplayName)
		if done != nil {
			done(nil)
		}
		return
	}

	switchErr := &domain.SwitchError{
		Governor:   desc.ID,
		Kind:       domain.ErrExecutionFailure,
		Diagnostic: res.Diagnostic(),
		Err:        res.WaitErr,
	}
	if !res.Launched() {
		switchErr.Kind = domain.ErrLaunchFailure
		switchErr.Err = res.LaunchErr
	}
	if switchErr.Diagnostic == "" {
		switchErr.Diagnostic = domain.GenericSwitchDiagnostic
	}

	c.logger.Warn("governor switch failed",
		zap.String("op_id", op.ID),
		zap.String("governor", desc.ID.String()),
		zap.Int("exit_code", res.ExitCode),
		zap.Error(switchErr))
	c.presenter.OnSwitchFailed(desc.DisplayName, switchErr.Diagnostic)
	if done != nil {
		done(switchErr)
	}
}

// render forwards state changes to the presenter. Provisional governors
// that the registry does not know get their raw name and the fallback icon.
func (c *GovernorController) render(id domain.GovernorID) {
	desc, err := c.store.GetByID(id)
	if err != nil {
		c.presenter.OnGovernorChanged(id, id.String(), domain.FallbackIconID)
		return
	}
	c.presenter.OnGovernorChanged(id, desc.DisplayName, desc.IconID)
}

func newOperation(kind domain.OperationKind, target domain.GovernorID) *domain.PendingOperation {
	return &domain.PendingOperation{
		ID:             uuid.NewString(),
		Kind:           kind,
		TargetGovernor: target,
		StartedAt:      time.Now(),
	}
}

// shellArgv wraps an activation expression for the shell.
func shellArgv(shell, expr string) []string {
	return []string{shell, "-c", expr}
}
