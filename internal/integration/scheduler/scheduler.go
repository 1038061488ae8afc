// Package scheduler runs the periodic background jobs: recurring generation,
// the overdue sweep and email queue cleanup.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron"

	"github.com/agency-crm/backend/internal/application/adapter"
)

// LockPrefix namespaces the run lock of every job.
const LockPrefix = "crm:scheduler:"

// JobFunc is one run of a scheduled job.
type JobFunc func(ctx context.Context) error

// Scheduler triggers jobs on cron specs. A run only starts when the job's lock
// is free, so several API replicas can share one schedule.
type Scheduler struct {
	cron    *cron.Cron
	locker  adapter.Locker
	lockTTL time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// New creates a scheduler. lockTTL bounds how long a crashed run keeps its lock.
func New(locker adapter.Locker, lockTTL time.Duration) *Scheduler {
	if lockTTL <= 0 {
		lockTTL = 10 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:    cron.New(),
		locker:  locker,
		lockTTL: lockTTL,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register adds a job. spec uses six fields with seconds first, or a descriptor such as "@hourly".
func (s *Scheduler) Register(name, spec string, job JobFunc) error {
	err := s.cron.AddFunc(spec, func() { s.fire(name, job) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}

	slog.Info("Scheduled job registered", "job", name, "spec", spec)
	return nil
}

// fire is the cron callback. Runs triggered once Stop has begun are dropped.
func (s *Scheduler) fire(name string, job JobFunc) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		slog.Debug("Skipping scheduled job, scheduler stopped", "job", name)
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	if _, err := s.Run(s.ctx, name, job); err != nil {
		slog.Error("Scheduled job failed", "job", name, "error", err)
	}
	return true
}

// Run executes job once under its lock. ran is false when another holder owns the lock.
func (s *Scheduler) Run(ctx context.Context, name string, job JobFunc) (ran bool, err error) {
	release, ok, err := s.locker.TryLock(ctx, LockPrefix+name, s.lockTTL)
	if err != nil {
		return false, err
	}
	if !ok {
		slog.Debug("Skipping scheduled job, lock held elsewhere", "job", name)
		return false, nil
	}
	defer release()

	logger := slog.With("job", name)
	start := time.Now()
	if err := job(ctx); err != nil {
		return true, err
	}
	logger.Debug("Scheduled job finished", "duration", time.Since(start))
	return true, nil
}

// Start begins triggering registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Scheduler started")
}

// Stop halts the schedule, cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
	slog.Info("Scheduler stopped")
}
