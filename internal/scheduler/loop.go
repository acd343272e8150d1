package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

// TickFunc advances the simulation by the time elapsed since the previous tick
type TickFunc func(ctx context.Context, elapsed time.Duration) error

// Loop drives a TickFunc at a fixed pace on a single goroutine. Elapsed time is read
// from the clock, so a slow tick is caught up on the next one. While paused nothing is
// dispatched, and resuming restarts the reference so the paused span is never
// attributed.
type Loop struct {
	interval time.Duration
	clock    clock.Clock
	tick     TickFunc

	mu     sync.Mutex
	paused bool
	last   time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLoop creates a loop. An interval of zero or less uses DefaultTickInterval.
func NewLoop(interval time.Duration, clk clock.Clock, tick TickFunc) *Loop {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Loop{interval: interval, clock: clk, tick: tick}
}

// Start launches the loop. It runs until Stop is called or ctx is cancelled.
// Starting a running loop does nothing.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		return
	}

	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	l.last = l.clock.Now()

	go l.run(ctx, l.done)
	logger.FromContext(ctx).Info(LogMsgLoopStarted, "interval", l.interval)
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.step(ctx)
		case <-ctx.Done():
			logger.FromContext(ctx).Info(LogMsgLoopStopped)
			return
		}
	}
}

// step runs one tick unless paused. Errors are logged and never stop the loop.
func (l *Loop) step(ctx context.Context) {
	l.mu.Lock()
	if l.paused {
		l.mu.Unlock()
		return
	}
	now := l.clock.Now()
	elapsed := now.Sub(l.last)
	l.last = now
	l.mu.Unlock()

	if elapsed <= 0 {
		return
	}
	ctx = logger.NewTrace(ctx)
	if err := l.tick(ctx, elapsed); err != nil {
		logger.FromContext(ctx).Warn(LogMsgTickFailed, "elapsed", elapsed, "error", err)
	}
}

// Stop ends the loop and waits for the in-flight tick
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Pause stops dispatching ticks
func (l *Loop) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.paused {
		l.paused = true
		logger.Info(LogMsgLoopPaused)
	}
}

// Resume dispatches ticks again, measuring from now
func (l *Loop) Resume() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.paused {
		l.paused = false
		l.last = l.clock.Now()
		logger.Info(LogMsgLoopResumed)
	}
}

// Paused reports whether the loop is paused
func (l *Loop) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}
