package schedule

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Job runs Task every Interval. With Immediate the first pass happens at start,
// otherwise the job sleeps one interval first.
type Job struct {
	Task      Task
	Interval  time.Duration
	Immediate bool
}

// Scheduler runs each job on its own goroutine until the context passed to Start is done.
// A failing or panicking pass is logged and the job keeps its schedule.
type Scheduler struct {
	jobs    []Job
	started atomic.Bool
	wg      sync.WaitGroup
}

func NewScheduler(jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs}
}

// Start launches the jobs once per process. Later calls are no-ops and return false.
func (s *Scheduler) Start(ctx context.Context) bool {
	if !s.started.CompareAndSwap(false, true) {
		return false
	}
	for _, job := range s.jobs {
		s.wg.Add(1)
		go func(job Job) {
			defer s.wg.Done()
			s.loop(ctx, job)
		}(job)
	}
	log.Info().Int("jobs", len(s.jobs)).Msg("scheduler started")
	return true
}

func (s *Scheduler) Started() bool {
	return s.started.Load()
}

// Wait blocks until every job loop has returned, i.e. after the start context is done.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	logger := log.With().Str("task", job.Task.Name()).Dur("interval", job.Interval).Logger()
	logger.Info().Bool("immediate", job.Immediate).Msg("task scheduled")

	if job.Immediate {
		runOnce(ctx, job.Task)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("task stopped")
			return
		case <-ticker.C:
			runOnce(ctx, job.Task)
		}
	}
}

func runOnce(ctx context.Context, task Task) {
	if err := safeRun(ctx, task); err != nil {
		log.Error().Err(err).Str("task", task.Name()).Msg("task run failed")
	}
}

func safeRun(ctx context.Context, task Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return task.Run(ctx)
}
