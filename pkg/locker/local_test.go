package locker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_AcquireRelease(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	acquired, err := l.Acquire(ctx, testLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = l.Acquire(ctx, testLockKey, time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired, "held lock must not be re-acquired")

	require.NoError(t, l.Release(ctx, testLockKey))

	acquired, err = l.Acquire(ctx, testLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestLocalLocker_Expiry(t *testing.T) {
	l := NewLocalLocker()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	acquired, err := l.Acquire(ctx, testLockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	now = now.Add(61 * time.Second)

	acquired, err = l.Acquire(ctx, testLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "expired lock can be taken")
}

func TestLocalLocker_ReleaseUnknownKey(t *testing.T) {
	assert.NoError(t, NewLocalLocker().Release(context.Background(), "never-taken"))
}

func TestLocalLocker_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acquired, err := NewLocalLocker().Acquire(ctx, testLockKey, time.Minute)
	assert.Error(t, err)
	assert.False(t, acquired)
}
