package adapter

import (
	"context"
	"time"
)

// Locker provides mutual exclusion for scheduled jobs across processes.
type Locker interface {
	// TryLock acquires key for ttl without waiting. ok is false when another holder owns it.
	// The returned release func is safe to call once the work is done.
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}
