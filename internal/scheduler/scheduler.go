package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/metrics"
)

// Logger is the logging interface the scheduler depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job is one periodic duty. Handlers report ErrSkipped when another instance
// already holds the job's lock; that is counted as a skip, not a failure.
type Job struct {
	Name string
	Spec string // five-field cron spec
	Run  func(ctx context.Context) error
}

// ErrSkipped marks a run that was a lock-contention no-op.
var ErrSkipped = errors.New("scheduler: run skipped")

// Scheduler drives the periodic jobs with robfig/cron. Every run is wrapped
// with logging and Prometheus counters; panics in a handler are contained by
// cron's recovery wrapper so one bad run never kills the process.
type Scheduler struct {
	cron    *cron.Cron
	metrics *metrics.Metrics
	logger  Logger
}

// New creates a scheduler. Jobs are registered with Register before Start.
func New(m *metrics.Metrics, logger Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithChain(cron.Recover(cron.DefaultLogger)),
		),
		metrics: m,
		logger:  logger,
	}
}

// Register schedules a job. Returns an error for a malformed cron spec.
func (s *Scheduler) Register(job Job) error {
	_, err := s.cron.AddFunc(job.Spec, func() {
		s.runOnce(job)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Scheduler: registered job=%s spec=%q", job.Name, job.Spec)
	return nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler: started")
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler: stopped")
}

func (s *Scheduler) runOnce(job Job) {
	start := time.Now()
	s.logger.Info("Scheduler: job=%s starting", job.Name)

	err := job.Run(context.Background())
	elapsed := time.Since(start)

	s.metrics.JobRunsTotal.WithLabelValues(job.Name).Inc()
	s.metrics.JobDuration.WithLabelValues(job.Name).Observe(elapsed.Seconds())

	switch {
	case errors.Is(err, ErrSkipped):
		s.logger.Warn("Scheduler: job=%s skipped after %s (already running elsewhere)", job.Name, elapsed)
	case err != nil:
		s.metrics.JobFailuresTotal.WithLabelValues(job.Name).Inc()
		s.logger.Error("Scheduler: job=%s failed after %s: %v", job.Name, elapsed, err)
	default:
		s.logger.Info("Scheduler: job=%s finished in %s", job.Name, elapsed)
	}
}
