package locker

import (
	"context"
	"sync"
	"time"
)

// LocalLocker implements DistributedLocker inside one process. It is used with
// the embedded and in-memory backends, where no second process shares the data.
type LocalLocker struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewLocalLocker creates an in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Acquire takes key unless an unexpired holder has it.
func (l *LocalLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if until, held := l.expires[key]; held && now.Before(until) {
		return false, nil
	}
	l.expires[key] = now.Add(ttl)
	return true, nil
}

// Release frees key.
func (l *LocalLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.expires, key)
	return nil
}
