package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/agency-crm/backend/internal/application/adapter"
)

// releaseScript deletes the key only while it still holds our token, so a lock
// that expired and was taken by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisLocker implements adapter.Locker with SET NX PX.
type redisLocker struct {
	client *redis.Client
}

// NewRedisLocker creates a lock shared by every process using client.
func NewRedisLocker(client *redis.Client) adapter.Locker {
	return &redisLocker{
		client: client,
	}
}

// TryLock acquires key for ttl without waiting.
func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// The job context may already be cancelled at this point.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			slog.Warn("Failed to release lock", "key", key, "error", err)
		}
	}
	return release, true, nil
}

// localLocker implements adapter.Locker inside a single process.
type localLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

// NewLocalLocker creates a process-local lock for deployments without Redis.
func NewLocalLocker() adapter.Locker {
	return &localLocker{
		held:  make(map[string]time.Time),
		clock: time.Now,
	}
}

// TryLock acquires key for ttl without waiting.
func (l *localLocker) TryLock(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if until, ok := l.held[key]; ok && now.Before(until) {
		return nil, false, nil
	}
	until := now.Add(ttl)
	l.held[key] = until

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key].Equal(until) {
			delete(l.held, key)
		}
	}
	return release, true, nil
}
