package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/daily"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

// Roller runs the day rollover
type Roller interface {
	Rollover(ctx context.Context) (*daily.Rollover, error)
}

// RolloverWorker runs the day rollover at every local midnight while the game is open
type RolloverWorker struct {
	roller     Roller
	clock      clock.Clock
	timer      *time.Timer
	lastTarget time.Time
	shutdown   chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
}

// NewRolloverWorker creates a new RolloverWorker
func NewRolloverWorker(roller Roller, clk clock.Clock) *RolloverWorker {
	return &RolloverWorker{
		roller:   roller,
		clock:    clk,
		shutdown: make(chan struct{}),
	}
}

// Start schedules the first rollover
func (w *RolloverWorker) Start() {
	w.scheduleNext()
}

// nextTarget returns the midnight to fire at. A midnight that already fired is never
// targeted twice.
func (w *RolloverWorker) nextTarget(now time.Time) time.Time {
	target := clock.NextMidnight(now)
	if !w.lastTarget.IsZero() && !target.After(w.lastTarget) {
		target = clock.NextMidnight(w.lastTarget)
	}
	return target
}

// scheduleNext arms the timer for the coming midnight
func (w *RolloverWorker) scheduleNext() {
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.shutdown:
		return
	default:
	}
	if w.timer != nil {
		w.timer.Stop()
	}

	now := w.clock.Now()
	target := w.nextTarget(now)
	duration := target.Sub(now)

	// Far from midnight: wake up shortly before it and measure again, so a long
	// timer that drifts cannot fire late.
	if duration > standbyThreshold {
		wait := duration - standbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgRolloverStandby, "next_check_at", now.Add(wait))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		if rem := target.Sub(w.clock.Now()); rem > earlyFireTolerance {
			w.scheduleNext()
			return
		}

		w.mu.Lock()
		w.lastTarget = target
		w.mu.Unlock()

		w.executeRollover()
		w.scheduleNext()
	})
	log.Info(LogMsgRolloverApproach, "rollover_at", target)
}

// executeRollover runs the rollover in a tracked goroutine
func (w *RolloverWorker) executeRollover() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := logger.NewTrace(context.Background())
		log := logger.FromContext(ctx)
		log.Info(LogMsgRolloverStarting)

		res, err := w.roller.Rollover(ctx)
		if err != nil {
			log.Error(LogMsgRolloverFailed, "error", err)
			return
		}
		log.Info(LogMsgRolloverCompleted, "date", res.Date, "new_day", res.NewDay, "streak", res.Streak)
	}()
}

// Shutdown cancels the pending timer and waits for an in-flight rollover
func (w *RolloverWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	w.mu.Lock()
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
		log.Info(LogMsgRolloverCancelled)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgShutdownComplete)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
