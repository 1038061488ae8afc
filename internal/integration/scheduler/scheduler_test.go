package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/integration/adapters"
)

func newRedisScheduler(t *testing.T) (*Scheduler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(adapters.NewRedisLocker(client), time.Minute), mr
}

func TestScheduler_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the job under its lock and releases it", func(t *testing.T) {
		s, mr := newRedisScheduler(t)
		var lockedDuringRun bool

		ran, err := s.Run(ctx, JobOverdueSweep, func(context.Context) error {
			lockedDuringRun = mr.Exists(LockPrefix + JobOverdueSweep)
			return nil
		})

		require.NoError(t, err)
		assert.True(t, ran)
		assert.True(t, lockedDuringRun)
		assert.False(t, mr.Exists(LockPrefix+JobOverdueSweep))
	})

	t.Run("skips the run while another holder owns the lock", func(t *testing.T) {
		s, mr := newRedisScheduler(t)
		require.NoError(t, mr.Set(LockPrefix+JobRecurringGeneration, "other-replica"))
		called := false

		ran, err := s.Run(ctx, JobRecurringGeneration, func(context.Context) error {
			called = true
			return nil
		})

		require.NoError(t, err)
		assert.False(t, ran)
		assert.False(t, called)
		got, _ := mr.Get(LockPrefix + JobRecurringGeneration)
		assert.Equal(t, "other-replica", got)
	})

	t.Run("returns the job error and still releases the lock", func(t *testing.T) {
		s, mr := newRedisScheduler(t)
		boom := errors.New("boom")

		ran, err := s.Run(ctx, JobEmailCleanup, func(context.Context) error { return boom })

		assert.True(t, ran)
		assert.ErrorIs(t, err, boom)
		assert.False(t, mr.Exists(LockPrefix+JobEmailCleanup))
	})

	t.Run("local lock serializes runs in one process", func(t *testing.T) {
		s := New(adapters.NewLocalLocker(), time.Minute)
		var nested bool

		ran, err := s.Run(ctx, JobOverdueSweep, func(ctx context.Context) error {
			var innerErr error
			nested, innerErr = s.Run(ctx, JobOverdueSweep, func(context.Context) error { return nil })
			return innerErr
		})

		require.NoError(t, err)
		assert.True(t, ran)
		assert.False(t, nested)
	})
}

func TestScheduler_Register(t *testing.T) {
	s := New(adapters.NewLocalLocker(), 0)
	noop := func(context.Context) error { return nil }

	assert.NoError(t, s.Register(JobOverdueSweep, "0 30 * * * *", noop))
	assert.NoError(t, s.Register(JobEmailCleanup, "@daily", noop))
	assert.Error(t, s.Register(JobRecurringGeneration, "not a spec", noop))
}

func TestScheduler_FireAfterStop(t *testing.T) {
	s := New(adapters.NewLocalLocker(), time.Minute)
	calls := 0
	job := func(context.Context) error {
		calls++
		return nil
	}

	assert.True(t, s.fire(JobOverdueSweep, job))
	assert.Equal(t, 1, calls)

	s.Stop()

	assert.False(t, s.fire(JobOverdueSweep, job))
	assert.Equal(t, 1, calls)
}

type cleanerStub struct {
	days int
	err  error
}

func (c *cleanerStub) CleanupFinishedJobs(_ context.Context, olderThanDays int) error {
	c.days = olderThanDays
	return c.err
}

func TestEmailCleanup(t *testing.T) {
	stub := &cleanerStub{}

	require.NoError(t, EmailCleanup(stub, 30)(context.Background()))
	assert.Equal(t, 30, stub.days)

	stub.err = errors.New("db down")
	assert.Error(t, EmailCleanup(stub, 7)(context.Background()))
}
