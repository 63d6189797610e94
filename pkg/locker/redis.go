package locker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLocker implements DistributedLocker with Redsync (Redlock) so that
// several catalog processes pointed at the same Redis do not reconcile twice.
type RedisLocker struct {
	rs      *redsync.Redsync
	prefix  string
	logger  *zap.Logger
	mutexes map[string]*redsync.Mutex
	mu      sync.Mutex
}

// NewRedisLocker creates a Redis-backed locker. Lock keys are namespaced with prefix.
func NewRedisLocker(client *redis.Client, prefix string, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{
		rs:      redsync.New(goredis.NewPool(client)),
		prefix:  prefix,
		logger:  logger,
		mutexes: make(map[string]*redsync.Mutex),
	}
}

// Acquire makes a single, non-blocking attempt at the lock.
func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	mutex := r.rs.NewMutex(
		r.prefix+key,
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	if err := mutex.LockContext(ctx); err != nil {
		// Contention surfaces as ErrFailed or as a wrapped "lock already taken" error.
		if errors.Is(err, redsync.ErrFailed) || strings.Contains(err.Error(), "lock already taken") {
			r.logger.Debug("lock held elsewhere", zap.String("key", key))
			return false, nil
		}
		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	r.mu.Lock()
	r.mutexes[key] = mutex
	r.mu.Unlock()

	r.logger.Debug("lock acquired",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
	)

	return true, nil
}

// Release unlocks key if this locker took it. Redsync checks the token, so an
// expired lock re-taken by someone else is left alone.
func (r *RedisLocker) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	mutex, exists := r.mutexes[key]
	delete(r.mutexes, key)
	r.mu.Unlock()

	if !exists {
		return nil
	}

	ok, err := mutex.UnlockContext(ctx)
	if err != nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}

	r.logger.Debug("lock released",
		zap.String("key", key),
		zap.Bool("owned", ok),
	)

	return nil
}
