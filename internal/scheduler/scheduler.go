package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/worker"
)

// Enqueuer accepts named jobs without blocking
type Enqueuer interface {
	TryEnqueue(name string, job worker.Job) bool
}

// Scheduler hands maintenance jobs to a worker pool at fixed intervals. Scheduling
// never waits on the pool: a run that finds the queue full is skipped.
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a scheduler feeding pool
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule runs job every interval until Stop. Non-positive intervals are ignored.
func (s *Scheduler) Schedule(interval time.Duration, name string, job worker.Job) {
	log := logger.FromContext(context.Background())
	if interval <= 0 {
		log.Warn(LogMsgJobIntervalInvalid, "job", name, "interval", interval)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.pool.TryEnqueue(name, job) {
					log.Warn(LogMsgJobQueueFull, "job", name)
				}
			case <-s.quit:
				return
			}
		}
	}()
	log.Info(LogMsgJobScheduled, "job", name, "interval", interval)
}

// Stop ends all schedules and waits for their goroutines. Stopping twice is safe.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
