package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
)

// Scheduled task names, also used as scheduler lock keys and job_runs names.
const (
	TaskQuotaSweep   = "quota_window_sweep"
	TaskStuckReaper  = "stuck_job_reaper"
	TaskQueueCleanup = "queue_cleanup"
)

// ErrUnknownTask is returned by RunNow for a task name the scheduler does
// not run.
var ErrUnknownTask = errors.New("unknown scheduler task")

// SchedulerStore is the persistence the scheduler needs.
type SchedulerStore interface {
	InsertJobRun(ctx context.Context, jobName string) (string, error)
	CompleteJobRun(ctx context.Context, id, status, errText string, rowsAffected int) error
	RecoverStaleJobRuns(ctx context.Context, olderThan time.Duration) (int, error)
	AcquireSchedulerLock(ctx context.Context, jobName, holder string, ttl time.Duration) (bool, error)
	ReleaseSchedulerLock(ctx context.Context, jobName, holder string) error
	ReapStuckJobs(ctx context.Context, olderThan time.Duration) (int, error)
	PurgeAckedImports(ctx context.Context, olderThan time.Duration) (int, error)
}

// QuotaSweeper rolls over lapsed quota windows.
type QuotaSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// ScheduleConfig holds the intervals of the maintenance tasks.
type ScheduleConfig struct {
	QuotaSweepInterval   time.Duration
	ReaperInterval       time.Duration
	StuckAfter           time.Duration
	QueueCleanupInterval time.Duration
	QueueRetention       time.Duration
}

// DefaultScheduleConfig returns the built-in maintenance schedule.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		QuotaSweepInterval:   time.Hour,
		ReaperInterval:       5 * time.Minute,
		StuckAfter:           3 * time.Hour,
		QueueCleanupInterval: 24 * time.Hour,
		QueueRetention:       7 * 24 * time.Hour,
	}
}

// Scheduler runs periodic maintenance: quota window rollover, reaping of
// jobs nobody is working on, and queue cleanup. Each run takes a Postgres
// lock so only one replica executes it, and is recorded in job_runs.
type Scheduler struct {
	cron    *cron.Cron
	store   SchedulerStore
	sweeper QuotaSweeper
	cfg     ScheduleConfig
	holder  string
	log     *slog.Logger

	sweepEntryID   cron.EntryID
	reaperEntryID  cron.EntryID
	cleanupEntryID cron.EntryID
}

// NewScheduler creates a Scheduler with its tasks registered.
func NewScheduler(
	s SchedulerStore,
	sweeper QuotaSweeper,
	cfg ScheduleConfig,
	log *slog.Logger,
) (*Scheduler, error) {
	host, _ := os.Hostname()
	sched := &Scheduler{
		cron:    cron.New(),
		store:   s,
		sweeper: sweeper,
		cfg:     cfg,
		holder:  fmt.Sprintf("%s-%d", host, os.Getpid()),
		log:     log,
	}

	var err error
	if sched.sweepEntryID, err = sched.every(cfg.QuotaSweepInterval, TaskQuotaSweep, sched.sweepQuotas); err != nil {
		return nil, err
	}
	if sched.reaperEntryID, err = sched.every(cfg.ReaperInterval, TaskStuckReaper, sched.reapStuckJobs); err != nil {
		return nil, err
	}
	if sched.cleanupEntryID, err = sched.every(cfg.QueueCleanupInterval, TaskQueueCleanup, sched.cleanupQueue); err != nil {
		return nil, err
	}

	return sched, nil
}

func (s *Scheduler) every(
	interval time.Duration,
	name string,
	fn func(context.Context) (int, error),
) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, nil
	}
	id, err := s.cron.AddFunc("@every "+interval.String(), func() {
		// Lock TTL matches the interval.
		if err := s.runJob(context.Background(), name, interval, fn); err != nil {
			s.log.Error("scheduled task failed", "task", name, "error", err)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("scheduling %s: %w", name, err)
	}
	return id, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "holder", s.holder)
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RunNow runs a task immediately, outside the cron schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	switch name {
	case TaskQuotaSweep:
		return s.runJob(ctx, name, s.cfg.QuotaSweepInterval, s.sweepQuotas)
	case TaskStuckReaper:
		return s.runJob(ctx, name, s.cfg.ReaperInterval, s.reapStuckJobs)
	case TaskQueueCleanup:
		return s.runJob(ctx, name, s.cfg.QueueCleanupInterval, s.cleanupQueue)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTask, name)
	}
}

// RecoverStaleJobRuns marks job_runs left "running" by a crashed process.
func (s *Scheduler) RecoverStaleJobRuns(ctx context.Context) {
	n, err := s.store.RecoverStaleJobRuns(ctx, 2*time.Hour)
	if err != nil {
		s.log.Error("recovering stale job runs failed", "error", err)
		return
	}
	if n > 0 {
		s.log.Warn("marked stale job runs as crashed", "count", n)
	}
}

// runJob executes fn under the task's scheduler lock and records the run.
// A run skipped because another replica holds the lock is not an error.
func (s *Scheduler) runJob(
	ctx context.Context,
	name string,
	ttl time.Duration,
	fn func(context.Context) (int, error),
) error {
	acquired, err := s.store.AcquireSchedulerLock(ctx, name, s.holder, ttl)
	if err != nil {
		metrics.SchedulerRunsTotal.WithLabelValues(name, "error").Inc()
		return fmt.Errorf("acquiring lock for %s: %w", name, err)
	}
	if !acquired {
		s.log.Debug("scheduled task held by another replica", "task", name)
		metrics.SchedulerRunsTotal.WithLabelValues(name, "skipped").Inc()
		return nil
	}
	defer func() {
		if err := s.store.ReleaseSchedulerLock(context.WithoutCancel(ctx), name, s.holder); err != nil {
			s.log.Warn("releasing scheduler lock failed", "task", name, "error", err)
		}
	}()

	runID, err := s.store.InsertJobRun(ctx, name)
	if err != nil {
		metrics.SchedulerRunsTotal.WithLabelValues(name, "error").Inc()
		return fmt.Errorf("recording start of %s: %w", name, err)
	}

	rows, jobErr := fn(ctx)

	status, errText := "succeeded", ""
	if jobErr != nil {
		status, errText = "failed", jobErr.Error()
	}
	if err := s.store.CompleteJobRun(context.WithoutCancel(ctx), runID, status, errText, rows); err != nil {
		s.log.Warn("recording end of scheduled task failed", "task", name, "error", err)
	}
	metrics.SchedulerRunsTotal.WithLabelValues(name, status).Inc()

	if jobErr != nil {
		return jobErr
	}
	s.log.Info("scheduled task finished", "task", name, "rows", rows)
	return nil
}

func (s *Scheduler) sweepQuotas(ctx context.Context) (int, error) {
	n, err := s.sweeper.SweepExpired(ctx)
	return int(n), err
}

func (s *Scheduler) reapStuckJobs(ctx context.Context) (int, error) {
	n, err := s.store.ReapStuckJobs(ctx, s.cfg.StuckAfter)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Warn("reaped stalled import jobs", "count", n, "stuck_after", s.cfg.StuckAfter)
	}
	return n, nil
}

func (s *Scheduler) cleanupQueue(ctx context.Context) (int, error) {
	return s.store.PurgeAckedImports(ctx, s.cfg.QueueRetention)
}
