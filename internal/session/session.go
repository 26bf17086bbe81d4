// Package session hosts the governor controller for the CLI: it owns the
// event loop, the command runner and the controller, and offers blocking
// helpers for callers that live outside the loop.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/govswitch/internal/domain"
	"github.com/eliteGoblin/govswitch/internal/governor"
	"github.com/eliteGoblin/govswitch/internal/infra"
	"github.com/eliteGoblin/govswitch/internal/loop"
	"github.com/eliteGoblin/govswitch/internal/ui"
	"github.com/eliteGoblin/govswitch/internal/usecase"
)

// CloseTimeout bounds how long Close waits for the controller teardown.
const CloseTimeout = 2 * time.Second

var (
	ErrAlreadyStarted = errors.New("session already started")
	ErrNotStarted     = errors.New("session not started")
)

// Config holds session settings.
type Config struct {
	Controller usecase.ControllerConfig
	Notify     bool // Desktop notifications for switch acknowledgments
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{Controller: usecase.DefaultControllerConfig()}
}

// Session is the host lifecycle around one GovernorController.
type Session struct {
	config Config
	store  domain.GovernorStore
	loop   *loop.Loop
	runner *infra.ExecRunner
	logger *zap.Logger

	mu   sync.Mutex
	ctrl *usecase.GovernorController
}

// New creates a session. Nothing runs until Start.
func New(config Config, logger *zap.Logger) *Session {
	l := loop.New(logger)
	return &Session{
		config: config,
		store:  governor.NewGovernorStore(),
		loop:   l,
		runner: infra.NewExecRunner(l, logger),
		logger: logger,
	}
}

// Governors returns the registry in display order.
func (s *Session) Governors() []domain.GovernorDescriptor {
	return s.store.GetAll()
}

// Start runs the loop and builds the controller on it, which issues the
// startup probe. presenter receives every event on the loop goroutine.
func (s *Session) Start(ctx context.Context, presenter domain.Presenter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl != nil {
		return ErrAlreadyStarted
	}

	if s.config.Notify {
		presenter = ui.NewMultiPresenter(presenter, ui.NewNotifier(s.runner, s.logger))
	}

	s.loop.Start(ctx)

	var ctrl *usecase.GovernorController
	err := s.loop.Call(ctx, func() {
		ctrl = usecase.NewGovernorController(
			s.config.Controller,
			s.store,
			s.runner,
			s.loop,
			presenter,
			s.logger,
		)
	})
	if err != nil {
		return err
	}
	s.ctrl = ctrl

	s.logger.Debug("session started")
	return nil
}

// ProbeResult is the outcome of the startup probe.
type ProbeResult struct {
	Active domain.GovernorID
	Phase  domain.ProbePhase
}

// AwaitProbe blocks until the startup probe resolves.
func (s *Session) AwaitProbe(ctx context.Context) (ProbeResult, error) {
	ctrl, err := s.controller()
	if err != nil {
		return ProbeResult{}, err
	}

	select {
	case <-ctrl.ProbeDone():
	case <-ctx.Done():
		return ProbeResult{}, ctx.Err()
	}

	var res ProbeResult
	err = s.loop.Call(ctx, func() {
		res.Active, _ = ctrl.Active()
		res.Phase = ctrl.Phase()
	})
	return res, err
}

// Submit requests a switch without waiting for its outcome. Validation
// rejections are returned; the outcome goes to the presenter.
func (s *Session) Submit(id domain.GovernorID) error {
	ctrl, err := s.controller()
	if err != nil {
		return err
	}

	var reqErr error
	if err := s.loop.Call(context.Background(), func() {
		reqErr = ctrl.RequestSwitch(id, nil)
	}); err != nil {
		return err
	}
	return reqErr
}

// Switch requests a switch and waits for its outcome.
// A nil return means the governor is now active.
func (s *Session) Switch(ctx context.Context, id domain.GovernorID) error {
	ctrl, err := s.controller()
	if err != nil {
		return err
	}

	result := make(chan error, 1)
	var reqErr error
	if err := s.loop.Call(ctx, func() {
		reqErr = ctrl.RequestSwitch(id, func(err error) { result <- err })
	}); err != nil {
		return err
	}
	if reqErr != nil {
		return reqErr
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears down the controller on the loop, then stops the loop.
// Safe to call more than once and before Start.
func (s *Session) Close() error {
	s.mu.Lock()
	ctrl := s.ctrl
	s.mu.Unlock()

	if ctrl != nil {
		ctx, cancel := context.WithTimeout(context.Background(), CloseTimeout)
		defer cancel()
		if err := s.loop.Call(ctx, ctrl.Close); err != nil && !errors.Is(err, loop.ErrStopped) {
			s.logger.Warn("controller teardown did not complete", zap.Error(err))
		}
	}
	return s.loop.Stop()
}

func (s *Session) controller() (*usecase.GovernorController, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return nil, ErrNotStarted
	}
	return s.ctrl, nil
}
