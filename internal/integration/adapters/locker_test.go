package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := NewRedisLocker(client)
	ctx := context.Background()

	release, ok, err := locker.TryLock(ctx, "crm:scheduler:recurring", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("crm:scheduler:recurring"))

	_, ok, err = locker.TryLock(ctx, "crm:scheduler:recurring", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must be refused")

	release()
	assert.False(t, mr.Exists("crm:scheduler:recurring"))

	_, ok, err = locker.TryLock(ctx, "crm:scheduler:recurring", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLocker_ExpiredLockIsNotReleasedByOldHolder(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := NewRedisLocker(client)
	ctx := context.Background()

	staleRelease, ok, err := locker.TryLock(ctx, "job", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok, err = locker.TryLock(ctx, "job", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	staleRelease()
	assert.True(t, mr.Exists("job"), "stale holder must not delete the new lock")
}

func TestLocalLocker(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	locker := &localLocker{held: map[string]time.Time{}, clock: func() time.Time { return now }}
	ctx := context.Background()

	release, ok, err := locker.TryLock(ctx, "job", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, _ = locker.TryLock(ctx, "job", time.Minute)
	assert.False(t, ok)

	release()
	_, ok, _ = locker.TryLock(ctx, "job", time.Minute)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = locker.TryLock(ctx, "job", time.Minute)
	assert.True(t, ok, "expired lock is reclaimed")
}
