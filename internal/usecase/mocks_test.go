package usecase

import (
	"time"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

// pendingRun is one command the fake runner has been asked to run.
type pendingRun struct {
	argv []string
	done func(domain.CommandResult)
}

// mockRunner implements domain.CommandRunner for testing.
// Runs are held until the test completes them, unless auto is set.
type mockRunner struct {
	pending []*pendingRun
	calls   [][]string
	auto    func(argv []string) domain.CommandResult
}

func (m *mockRunner) Run(argv []string, done func(domain.CommandResult)) {
	m.calls = append(m.calls, argv)
	if m.auto != nil {
		res := m.auto(argv)
		res.Argv = argv
		done(res)
		return
	}
	m.pending = append(m.pending, &pendingRun{argv: argv, done: done})
}

// complete finishes the oldest pending run with res.
func (m *mockRunner) complete(res domain.CommandResult) {
	if len(m.pending) == 0 {
		panic("mockRunner: nothing pending")
	}
	p := m.pending[0]
	m.pending = m.pending[1:]
	res.Argv = p.argv
	p.done(res)
}

// completeAt finishes pending run i with res.
func (m *mockRunner) completeAt(i int, res domain.CommandResult) {
	p := m.pending[i]
	m.pending = append(m.pending[:i], m.pending[i+1:]...)
	res.Argv = p.argv
	p.done(res)
}

func okResult(stdout string) domain.CommandResult {
	return domain.CommandResult{Stdout: stdout}
}

func failResult(code int, stderr string) domain.CommandResult {
	return domain.CommandResult{ExitCode: code, Stderr: stderr}
}

// mockTimer implements domain.Timer for testing.
type mockTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *mockTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// mockScheduler implements domain.Scheduler for testing. Posted work runs
// inline; timers run only when the test fires them.
type mockScheduler struct {
	timers []*mockTimer
}

func (s *mockScheduler) Post(fn func()) {
	fn()
}

func (s *mockScheduler) AfterFunc(d time.Duration, fn func()) domain.Timer {
	t := &mockTimer{delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// fireNext runs the oldest live timer. It reports false if none is armed.
func (s *mockScheduler) fireNext() bool {
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.fn()
			return true
		}
	}
	return false
}

// fireLate runs timer i even if it was stopped, like a timer that had
// already been queued when Stop was called.
func (s *mockScheduler) fireLate(i int) {
	t := s.timers[i]
	t.fired = true
	t.fn()
}

// armed counts timers that are neither stopped nor fired.
func (s *mockScheduler) armed() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type governorChange struct {
	id          domain.GovernorID
	displayName string
	iconID      string
}

type switchAck struct {
	ok          bool
	displayName string
	diagnostic  string
}

// mockPresenter implements domain.Presenter for testing.
type mockPresenter struct {
	changes []governorChange
	acks    []switchAck
}

func (p *mockPresenter) OnGovernorChanged(id domain.GovernorID, displayName, iconID string) {
	p.changes = append(p.changes, governorChange{id: id, displayName: displayName, iconID: iconID})
}

func (p *mockPresenter) OnSwitchSucceeded(displayName string) {
	p.acks = append(p.acks, switchAck{ok: true, displayName: displayName})
}

func (p *mockPresenter) OnSwitchFailed(displayName, diagnostic string) {
	p.acks = append(p.acks, switchAck{displayName: displayName, diagnostic: diagnostic})
}

func (p *mockPresenter) lastChange() governorChange {
	if len(p.changes) == 0 {
		return governorChange{}
	}
	return p.changes[len(p.changes)-1]
}
