package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/metrics"
)

// Job is a unit of background maintenance work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) error

// Process calls f
func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

type queuedJob struct {
	name string
	job  Job
}

// Pool runs named jobs on a fixed number of goroutines. A job that fails or panics is
// logged and counted, and the worker moves on to the next one.
type Pool struct {
	workers  int
	queue    chan queuedJob
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once
}

// NewPool creates a pool with the given number of workers and queue capacity
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers: workers,
		queue:   make(chan queuedJob, queueSize),
		quit:    make(chan struct{}),
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case qj := <-p.queue:
			p.run(qj)
		case <-p.quit:
			return
		}
	}
}

// run executes one job under its own trace id
func (p *Pool) run(qj queuedJob) {
	ctx := logger.NewTrace(context.Background())
	log := logger.FromContext(ctx).With("job", qj.name)
	start := time.Now()

	defer func() {
		metrics.JobDuration.WithLabelValues(qj.name).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			metrics.JobRuns.WithLabelValues(qj.name, metrics.JobResultPanic).Inc()
			log.Error(LogMsgWorkerJobPanicked, "panic", r)
		}
	}()

	if err := qj.job.Process(ctx); err != nil {
		metrics.JobRuns.WithLabelValues(qj.name, metrics.JobResultError).Inc()
		log.Error(LogMsgWorkerJobFailed, "error", err)
		return
	}
	metrics.JobRuns.WithLabelValues(qj.name, metrics.JobResultOK).Inc()
	log.Debug(LogMsgWorkerJobDone, "duration", time.Since(start))
}

// Enqueue queues a job, blocking while the queue is full. It reports false when the
// pool stops before the job could be queued.
func (p *Pool) Enqueue(name string, job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.queue <- queuedJob{name: name, job: job}:
		return true
	case <-p.quit:
		return false
	}
}

// TryEnqueue queues a job unless the queue is full or the pool is stopped
func (p *Pool) TryEnqueue(name string, job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.queue <- queuedJob{name: name, job: job}:
		return true
	default:
		metrics.JobRuns.WithLabelValues(name, metrics.JobResultDropped).Inc()
		return false
	}
}

// Stop stops the workers and waits for running jobs to finish. Jobs still queued are
// discarded. Stopping twice is safe.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
