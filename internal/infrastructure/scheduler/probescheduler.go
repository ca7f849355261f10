// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/orris-inc/subhub/internal/shared/goroutine"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// Job is one unit of scheduled work.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job.
type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }

// CronScheduler runs a single job on a standard five-field cron expression.
// Overlapping runs are skipped.
type CronScheduler struct {
	name       string
	schedule   string
	job        Job
	jobTimeout time.Duration
	cron       *cron.Cron
	logger     logger.Interface

	mu        sync.Mutex
	running   bool
	entryID   cron.EntryID
	stop      chan struct{}
	watchDone chan struct{}
}

// NewCronScheduler validates schedule and prepares the scheduler. Each run
// gets its own context bounded by jobTimeout.
func NewCronScheduler(name, schedule string, job Job, jobTimeout time.Duration, log logger.Interface) (*CronScheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}

	s := &CronScheduler{
		name:       name,
		schedule:   schedule,
		job:        job,
		jobTimeout: jobTimeout,
		logger:     log.With("component", "scheduler", "job", name),
	}
	s.cron = cron.New(cron.WithChain(
		cron.Recover(cronLogger{s.logger}),
		cron.SkipIfStillRunning(cronLogger{s.logger}),
	))
	return s, nil
}

// Start registers the job and starts ticking until ctx is done or Stop is
// called. A stopped scheduler can be started again.
func (s *CronScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	id, err := s.cron.AddFunc(s.schedule, func() { s.runOnce(ctx) })
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", s.name, err)
	}

	s.cron.Start()
	s.running = true
	s.entryID = id
	s.stop = make(chan struct{})
	s.watchDone = make(chan struct{})

	s.logger.Infow("scheduler started",
		"schedule", s.schedule,
		"next_run", s.cron.Entry(id).Next,
	)

	stop, done := s.stop, s.watchDone
	goroutine.SafeGo(s.logger, s.name+"-watch", func() {
		defer close(done)
		select {
		case <-ctx.Done():
			s.Stop()
		case <-stop:
		}
	})

	return nil
}

func (s *CronScheduler) runOnce(parent context.Context) {
	ctx := parent
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, s.jobTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.job.Run(ctx); err != nil {
		s.logger.Warnw("scheduled job failed",
			"error", err,
			"duration", time.Since(start),
		)
		return
	}
	s.logger.Debugw("scheduled job completed", "duration", time.Since(start))
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *CronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	close(s.stop)
	s.running = false
	s.logger.Infow("scheduler stopped")
}

// IsRunning reports whether the scheduler is ticking.
func (s *CronScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// cronLogger adapts logger.Interface to cron.Logger.
type cronLogger struct {
	log logger.Interface
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
