package postgres

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgresContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/infra/postgres/migrations"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a migrated GORM DB
//
// Prerequisites:
//   - Docker must be running
//
// OR
//   - Skip tests with: go test -short
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgresContainer.Run(ctx,
		"postgres:16-alpine",
		postgresContainer.WithDatabase("testdb"),
		postgresContainer.WithUsername("testuser"),
		postgresContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf(`Failed to start PostgreSQL container: %v

Docker Prerequisites:
1. Ensure Docker is running
2. OR skip integration tests: go test -short

`, err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, migrations.Run(db), "Failed to run migrations")

	cleanup := func() {
		_ = Close(db)
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

func TestStore_SetGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStore(db, "catalog")
	ctx := context.Background()

	got, err := store.Get(ctx, domain.KeyMovies)
	require.NoError(t, err)
	assert.Nil(t, got, "missing key reads as nil")

	require.NoError(t, store.Set(ctx, domain.KeyMovies, []byte(`[]`)))
	require.NoError(t, store.Set(ctx, domain.KeyMovies, []byte(`[{"id":"1"}]`)))

	got, err = store.Get(ctx, domain.KeyMovies)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), got)

	var count int64
	require.NoError(t, db.Model(&KVRecordModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert must not duplicate rows")

	require.NoError(t, store.Delete(ctx, domain.KeyMovies))
	require.NoError(t, store.Delete(ctx, domain.KeyMovies))

	got, err = store.Get(ctx, domain.KeyMovies)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, store.Ping(ctx))
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	a := NewStore(db, "site-a")
	b := NewStore(db, "site-b")

	require.NoError(t, a.Set(ctx, domain.KeyAds, []byte(`["a"]`)))

	got, err := b.Get(ctx, domain.KeyAds)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_OversizedValueIsStorageFull(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStore(db, "catalog")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.KeyMovies, []byte(`[]`)))

	huge := bytes.Repeat([]byte("a"), migrations.MaxValueBytes+1)
	err := store.Set(ctx, domain.KeyMovies, huge)
	assert.ErrorIs(t, err, domain.ErrStorageFull)

	got, err := store.Get(ctx, domain.KeyMovies)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got, "previous value kept")
}

func TestStore_ConcurrentSets(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStore(db, "catalog")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Set(ctx, domain.KeyAnalytics, []byte(`{"dailyViews":1}`)))
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&KVRecordModel{}).Where("key = ?", domain.KeyAnalytics).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMigrations_Rollback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, migrations.Rollback(db))

	store := NewStore(db, "catalog")
	huge := bytes.Repeat([]byte("a"), migrations.MaxValueBytes+1)
	assert.NoError(t, store.Set(context.Background(), domain.KeyMovies, huge), "size limit dropped with its migration")
}
