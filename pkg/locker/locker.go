// Package locker provides mutual exclusion for background jobs that may run
// in several processes sharing one store.
package locker

import (
	"context"
	"time"
)

// DistributedLocker hands out expiring, non-blocking locks.
// Implementations must be safe for concurrent use.
//
// Typical usage:
//
//	acquired, err := locker.Acquire(ctx, "reconcile:analytics:lock", time.Minute)
//	if err != nil {
//	    return err
//	}
//	if !acquired {
//	    return nil // someone else is on it
//	}
//	defer locker.Release(ctx, "reconcile:analytics:lock")
type DistributedLocker interface {
	// Acquire tries once to take the lock. It returns false, not an error,
	// when another holder has it. The lock expires after ttl if not released.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release gives the lock back. Releasing a lock this holder does not own is a no-op.
	Release(ctx context.Context, key string) error
}
