package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-service/internal/domain"
)

func TestActivityLog_EmptyByDefault(t *testing.T) {
	env := newTestEnv(t)

	logs := env.log.List(context.Background())
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestActivityLog_Append(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entry, err := env.log.Append(ctx, domain.ActionAddMovie, "first", domain.LogSuccess)
	require.NoError(t, err)
	assert.Equal(t, "log000001", entry.ID)
	assert.Equal(t, fixedNow.UnixMilli(), entry.Timestamp)

	_, err = env.log.Append(ctx, domain.ActionDeleteMovie, "second", domain.LogDanger)
	require.NoError(t, err)

	logs := env.log.List(ctx)
	require.Len(t, logs, 2)
	assert.Equal(t, "second", logs[0].Details, "newest first")
	assert.Equal(t, "first", logs[1].Details)
}

func TestActivityLog_Bounded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < domain.MaxLogEntries+25; i++ {
		_, err := env.log.Append(ctx, domain.ActionUpdateMovie, fmt.Sprintf("entry %d", i), domain.LogInfo)
		require.NoError(t, err)
	}

	logs := env.log.List(ctx)
	require.Len(t, logs, domain.MaxLogEntries)
	assert.Equal(t, fmt.Sprintf("entry %d", domain.MaxLogEntries+24), logs[0].Details)
	assert.Equal(t, "entry 25", logs[len(logs)-1].Details)
}

func TestActivityLog_Clear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := env.log.Append(ctx, domain.ActionAddMovie, "x", domain.LogSuccess)
		require.NoError(t, err)
	}

	require.NoError(t, env.log.Clear(ctx))

	logs := env.log.List(ctx)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionClearLogs, logs[0].Action)
	assert.Equal(t, domain.LogWarning, logs[0].Type)
	assert.Equal(t, "Audit logs cleared by administrator", logs[0].Details)

	require.NoError(t, env.log.Clear(ctx))
	assert.Len(t, env.log.List(ctx), 1)
}

func TestActivityLog_CorruptReadsEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.kv.MemoryKV.Set(ctx, domain.KeyLogs, []byte("not json")))

	assert.Empty(t, env.log.List(ctx))

	_, err := env.log.Append(ctx, domain.ActionAddMovie, "after corruption", domain.LogSuccess)
	require.NoError(t, err)
	assert.Len(t, env.log.List(ctx), 1)
}

func TestActivityLog_UnreachableBackendKeepsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := env.log.Append(ctx, domain.ActionAddMovie, fmt.Sprintf("entry %d", i), domain.LogSuccess)
		require.NoError(t, err)
	}
	before := env.kv.raw(t, domain.KeyLogs)

	env.kv.failGet(errors.New("connection reset"))
	_, err := env.log.Append(ctx, domain.ActionDeleteMovie, "lost", domain.LogDanger)
	env.kv.failGet(nil)

	assert.ErrorIs(t, err, domain.ErrStorageWriteFailed)
	assert.Equal(t, before, env.kv.raw(t, domain.KeyLogs))
	assert.Len(t, env.log.List(ctx), 3)
}

func TestActivityLog_ClearFailureKeepsLog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := env.log.Append(ctx, domain.ActionAddMovie, "x", domain.LogSuccess)
		require.NoError(t, err)
	}

	env.kv.failSet(domain.KeyLogs, errors.New("disk error"))
	err := env.log.Clear(ctx)

	assert.ErrorIs(t, err, domain.ErrStorageWriteFailed)
	assert.Len(t, env.log.List(ctx), 3, "never left empty")
}
