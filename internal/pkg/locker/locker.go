// Package locker provides entity-scoped exclusive locks with a bounded
// acquisition wait. Transition execution serializes on the owning entity's
// key so concurrent read-decide-write sequences never interleave, while
// unrelated entities proceed fully independently.
package locker

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrLockTimeout is returned when an entity lock could not be acquired within
// the configured wait. The condition is transient; callers should retry with
// backoff rather than treat it as a hard failure.
var ErrLockTimeout = errors.New("entity lock acquisition timed out")

// DefaultAcquireTimeout bounds how long a transition request may wait for its
// entity lock before failing retryably.
const DefaultAcquireTimeout = 5 * time.Second

// EntityLocker hands out one exclusive lock per key. Locks are created lazily
// and kept for the lifetime of the locker; the number of distinct entities a
// single process transitions concurrently stays small enough that no eviction
// is needed.
type EntityLocker struct {
	mu             sync.Mutex
	locks          map[string]*semaphore.Weighted
	acquireTimeout time.Duration
}

// NewEntityLocker creates a locker with the given acquisition timeout.
// A non-positive timeout falls back to DefaultAcquireTimeout.
func NewEntityLocker(acquireTimeout time.Duration) *EntityLocker {
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}
	return &EntityLocker{
		locks:          make(map[string]*semaphore.Weighted),
		acquireTimeout: acquireTimeout,
	}
}

func (l *EntityLocker) lockFor(key string) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()

	sem, ok := l.locks[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.locks[key] = sem
	}
	return sem
}

// Acquire takes the exclusive lock for key, waiting at most the configured
// timeout (or less if ctx expires first). On success the returned release
// function must be called exactly once, typically via defer.
func (l *EntityLocker) Acquire(ctx context.Context, key string) (release func(), err error) {
	sem := l.lockFor(key)

	waitCtx, cancel := context.WithTimeout(ctx, l.acquireTimeout)
	defer cancel()

	if err := sem.Acquire(waitCtx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, err
	}

	return func() { sem.Release(1) }, nil
}
