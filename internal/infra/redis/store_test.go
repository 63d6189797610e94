package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-catalog-service/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, zap.NewNop(), "catalog"), mr
}

func TestStore_GetMissing(t *testing.T) {
	s, _ := setupTestStore(t)

	got, err := s.Get(context.Background(), domain.KeyMovies)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SetGetDelete(t *testing.T) {
	s, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, domain.KeyAds, []byte(`[{"id":"ad-top"}]`)))

	raw, err := mr.Get("catalog:" + domain.KeyAds)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"ad-top"}]`, raw, "key must carry the prefix")
	assert.Zero(t, mr.TTL("catalog:"+domain.KeyAds), "no expiry")

	got, err := s.Get(ctx, domain.KeyAds)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"ad-top"}]`), got)

	require.NoError(t, s.Delete(ctx, domain.KeyAds))
	require.NoError(t, s.Delete(ctx, domain.KeyAds))
	assert.False(t, mr.Exists("catalog:"+domain.KeyAds))
}

func TestStore_OOMIsStorageFull(t *testing.T) {
	s, mr := setupTestStore(t)
	ctx := context.Background()

	mr.SetError("OOM command not allowed when used memory > 'maxmemory'.")

	err := s.Set(ctx, domain.KeyMovies, []byte(`[]`))
	assert.ErrorIs(t, err, domain.ErrStorageFull)
}

func TestStore_OtherErrorsAreNotStorageFull(t *testing.T) {
	s, mr := setupTestStore(t)
	ctx := context.Background()

	mr.SetError("READONLY You can't write against a read only replica.")

	err := s.Set(ctx, domain.KeyMovies, []byte(`[]`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrStorageFull)

	_, err = s.Get(ctx, domain.KeyMovies)
	assert.Error(t, err)
}

func TestStore_Ping(t *testing.T) {
	s, mr := setupTestStore(t)

	assert.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
