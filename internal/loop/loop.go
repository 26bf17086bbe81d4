// Package loop implements the single-threaded cooperative event loop that
// owns all governor state. Process completions and retry timers re-enter
// the loop through Post, so component code never runs concurrently.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"vawter.tech/stopper"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

// ErrStopped is returned by Call once the loop has stopped.
var ErrStopped = errors.New("event loop stopped")

// StopGracePeriod bounds how long Stop waits for the loop goroutine.
const StopGracePeriod = 500 * time.Millisecond

// Loop runs posted callbacks one at a time on a single goroutine.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	sctx    *stopper.Context
	stopped bool
	logger  *zap.Logger
}

// New creates a loop. It does nothing until Start.
func New(logger *zap.Logger) *Loop {
	return &Loop{
		wake:   make(chan struct{}, 1),
		logger: logger,
	}
}

// Start launches the loop goroutine. Calling Start twice is a no-op.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sctx != nil || l.stopped {
		return
	}

	l.sctx = stopper.WithContext(ctx)
	l.sctx.Go(func(sctx *stopper.Context) error {
		for {
			select {
			case <-sctx.Stopping():
				return nil
			case <-l.wake:
				l.drain()
			}
		}
	})
}

// Post queues fn. Callbacks posted after Stop are dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		l.logger.Debug("dropping callback posted after stop")
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Call runs fn on the loop and waits for it to return.
// Must not be called from the loop goroutine.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped {
		return ErrStopped
	}

	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopping():
		return ErrStopped
	}
}

// AfterFunc runs fn on the loop after d. Stopping the returned timer
// guarantees fn does not run, even if the timer already fired and its
// callback is waiting in the queue.
func (l *Loop) AfterFunc(d time.Duration, fn func()) domain.Timer {
	lt := &loopTimer{}
	lt.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if lt.cancelled.Load() {
				return
			}
			fn()
		})
	})
	return lt
}

// Stop stops the loop and waits for the goroutine to exit.
// Queued callbacks that have not started are discarded.
func (l *Loop) Stop() error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return nil
	}
	l.stopped = true
	l.queue = nil
	sctx := l.sctx
	l.mu.Unlock()

	if sctx == nil {
		return nil
	}
	sctx.Stop(StopGracePeriod)
	return sctx.Wait()
}

func (l *Loop) stopping() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sctx == nil {
		// Not started: Call waits for ctx only.
		return nil
	}
	return l.sctx.Stopping()
}

func (l *Loop) drain() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 || l.stopped {
			l.mu.Unlock()
			return
		}
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			l.run(fn)
		}
	}
}

// run executes one callback. A panicking callback is logged instead of
// taking the host process down.
func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event loop callback panicked", zap.Any("panic", r))
		}
	}()
	fn()
}

type loopTimer struct {
	timer     *time.Timer
	cancelled atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.cancelled.Store(true)
	return t.timer.Stop()
}

// Ensure Loop implements domain.Scheduler.
var _ domain.Scheduler = (*Loop)(nil)
