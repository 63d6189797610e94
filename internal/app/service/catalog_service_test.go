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

func TestCatalogService_List_SeedsMissingCollection(t *testing.T) {
	env := newTestEnv(t)

	movies := env.catalog.List(context.Background())

	require.Len(t, movies, 4)
	assert.Equal(t, "vikram-vedha-2022", movies[0].Slug)
	assert.NotNil(t, env.kv.raw(t, domain.KeyMovies), "seed should be written back")
}

func TestCatalogService_List_CorruptServesSeedWithoutWriting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	corrupt := []byte(`[{"id":"1","title":"Vikram`)
	require.NoError(t, env.kv.MemoryKV.Set(ctx, domain.KeyMovies, corrupt))

	movies := env.catalog.List(ctx)

	assert.Len(t, movies, 4)
	assert.Equal(t, corrupt, env.kv.raw(t, domain.KeyMovies))
}

func TestCatalogService_List_UnavailableServesSeed(t *testing.T) {
	env := newTestEnv(t)
	env.kv.failGet(errors.New("disk gone"))

	movies := env.catalog.List(context.Background())

	assert.Len(t, movies, 4)
	assert.Nil(t, env.kv.raw(t, domain.KeyMovies))
}

func TestCatalogService_Add(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	added, err := env.catalog.Add(ctx, testMovie("Test Film"))
	require.NoError(t, err)

	assert.Equal(t, "movie-1", added.ID)
	assert.Equal(t, "test-film", added.Slug)
	assert.Equal(t, fixedNow.UnixMilli(), added.CreatedAt)

	movies := env.catalog.List(ctx)
	require.Len(t, movies, 5)
	assert.Equal(t, added.ID, movies[0].ID, "new movies go to the front")

	got, err := env.catalog.GetBySlug(ctx, domain.Slugify("Test Film"))
	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)

	assert.Equal(t, 5, env.analytics.Get(ctx).TotalMovies)

	logs := env.log.List(ctx)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionAddMovie, logs[0].Action)
	assert.Equal(t, domain.LogSuccess, logs[0].Type)
	assert.Equal(t, `Published new title: "Test Film"`, logs[0].Details)
}

func TestCatalogService_Add_KeepsCallerIDAndCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m := testMovie("Leo")
	m.ID = "caller-id"
	m.CreatedAt = 1700000000000

	added, err := env.catalog.Add(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, "caller-id", added.ID)
	assert.Equal(t, int64(1700000000000), added.CreatedAt)
}

func TestCatalogService_Add_DuplicateID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m := testMovie("Another Vikram")
	m.ID = "1"

	_, err := env.catalog.Add(ctx, m)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, env.catalog.List(ctx), 4)
	assert.Empty(t, env.log.List(ctx))
}

func TestCatalogService_Add_UniqueSlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.catalog.Add(ctx, testMovie("Test!"))
	require.NoError(t, err)
	second, err := env.catalog.Add(ctx, testMovie("Test?"))
	require.NoError(t, err)
	third, err := env.catalog.Add(ctx, testMovie("test"))
	require.NoError(t, err)

	assert.Equal(t, "test", first.Slug)
	assert.Equal(t, "test-2", second.Slug)
	assert.Equal(t, "test-3", third.Slug)

	got, err := env.catalog.GetBySlug(ctx, "test-2")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestCatalogService_Add_StorageFull(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.catalog.List(ctx)
	env.kv.failSet(domain.KeyMovies, fmt.Errorf("quota: %w", domain.ErrStorageFull))

	_, err := env.catalog.Add(ctx, testMovie("Huge Poster"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageFull)
	assert.Equal(t, "Database full. Please use a smaller poster image or delete existing movies.", domain.UserMessage(err))
	assert.Len(t, env.catalog.List(ctx), 4)
	assert.Empty(t, env.log.List(ctx), "failed add must not be logged")
	assert.Zero(t, env.analytics.Get(ctx).TotalMovies)
}

func TestCatalogService_Add_SideEffectFailureKeepsMovie(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.kv.failSet(domain.KeyAnalytics, errors.New("analytics disk error"))
	env.kv.failSet(domain.KeyLogs, errors.New("log disk error"))

	added, err := env.catalog.Add(ctx, testMovie("Test Film"))
	require.NoError(t, err)

	_, err = env.catalog.GetBySlug(ctx, added.Slug)
	assert.NoError(t, err)
}

func TestCatalogService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	original, err := env.catalog.GetByID(ctx, "2")
	require.NoError(t, err)

	changed := *original.Clone()
	changed.Description = "Updated description for the agent thriller"
	changed.IsTrending = false

	_, err = env.catalog.Update(ctx, changed)
	require.NoError(t, err)

	got, err := env.catalog.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, changed.Description, got.Description)
	assert.False(t, got.IsTrending)
	assert.Equal(t, original.Slug, got.Slug)
	assert.Equal(t, original.CreatedAt, got.CreatedAt)

	logs := env.log.List(ctx)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionUpdateMovie, logs[0].Action)
	assert.Equal(t, domain.LogInfo, logs[0].Type)
	assert.Equal(t, `Updated metadata for: "The Gray Man"`, logs[0].Details)
}

func TestCatalogService_Update_NotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.catalog.List(ctx)
	before := env.kv.raw(t, domain.KeyMovies)

	_, err := env.catalog.Update(ctx, testMovie("Ghost"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, env.kv.raw(t, domain.KeyMovies))
	assert.Empty(t, env.log.List(ctx))
}

func TestCatalogService_Update_KeepsConcurrentCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	stored, err := env.catalog.GetByID(ctx, "4")
	require.NoError(t, err)

	// a view and a download land between the edit form load and its save
	require.NoError(t, env.catalog.IncrementView(ctx, "4"))
	require.NoError(t, env.catalog.IncrementDownload(ctx, "4"))

	edited := *stored.Clone()
	edited.Title = "RRR (Director's Cut)"
	saved, err := env.catalog.Update(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, stored.Views+1, saved.Views)
	assert.Equal(t, stored.Downloads+1, saved.Downloads)

	got, err := env.catalog.GetByID(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, "RRR (Director's Cut)", got.Title)
	assert.Equal(t, stored.Views+1, got.Views)
	assert.Equal(t, stored.Downloads+1, got.Downloads)
}

func TestCatalogService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	target, err := env.catalog.GetByID(ctx, "3")
	require.NoError(t, err)

	require.NoError(t, env.catalog.Delete(ctx, "3"))

	_, err = env.catalog.GetBySlug(ctx, target.Slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, env.catalog.List(ctx), 3)
	assert.Equal(t, 3, env.analytics.Get(ctx).TotalMovies)

	logs := env.log.List(ctx)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionDeleteMovie, logs[0].Action)
	assert.Equal(t, domain.LogDanger, logs[0].Type)
	assert.Equal(t, `Permanently removed title: "Ponniyin Selvan: I"`, logs[0].Details)
}

func TestCatalogService_Delete_NotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.catalog.Delete(ctx, "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, env.catalog.List(ctx), 4)
	assert.Empty(t, env.log.List(ctx))
}

func TestCatalogService_IncrementView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before, err := env.catalog.GetByID(ctx, "1")
	require.NoError(t, err)
	views := before.Views

	const n = 7
	for i := 0; i < n; i++ {
		require.NoError(t, env.catalog.IncrementView(ctx, "1"))
	}

	after, err := env.catalog.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, views+n, after.Views)
	assert.Equal(t, n, env.analytics.Get(ctx).DailyViews)
	assert.Empty(t, env.log.List(ctx), "counters are not audited")
}

func TestCatalogService_IncrementDownload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before, err := env.catalog.GetByID(ctx, "4")
	require.NoError(t, err)

	require.NoError(t, env.catalog.IncrementDownload(ctx, "4"))
	require.NoError(t, env.catalog.IncrementDownload(ctx, "4"))

	after, err := env.catalog.GetByID(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, before.Downloads+2, after.Downloads)
	assert.Equal(t, 2, env.analytics.Get(ctx).TotalDownloads)
}

func TestCatalogService_IncrementUnknownIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.catalog.List(ctx)
	before := env.kv.raw(t, domain.KeyMovies)

	assert.NoError(t, env.catalog.IncrementView(ctx, "missing"))
	assert.NoError(t, env.catalog.IncrementDownload(ctx, "missing"))

	assert.Equal(t, before, env.kv.raw(t, domain.KeyMovies))
	assert.Equal(t, domain.Analytics{}, env.analytics.Get(ctx))
}

func TestCatalogService_ReconcileAnalytics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	corrected, err := env.catalog.ReconcileAnalytics(ctx)
	require.NoError(t, err)
	assert.True(t, corrected)
	assert.Equal(t, 4, env.analytics.Get(ctx).TotalMovies)

	corrected, err = env.catalog.ReconcileAnalytics(ctx)
	require.NoError(t, err)
	assert.False(t, corrected)
}

func TestCatalogService_Queries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Len(t, env.catalog.Trending(ctx), 3)
	assert.Len(t, env.catalog.Latest(ctx, domain.GenreAll), 4)
	assert.NotEmpty(t, env.catalog.ByLanguage(ctx, domain.LanguageTamil))
	assert.Empty(t, env.catalog.Search(ctx, ""))

	hits := env.catalog.Search(ctx, "rrr")
	require.Len(t, hits, 1)
	assert.Equal(t, "4", hits[0].ID)

	target, err := env.catalog.GetBySlug(ctx, "the-gray-man-2022")
	require.NoError(t, err)
	for _, m := range env.catalog.Related(ctx, target) {
		assert.NotEqual(t, target.ID, m.ID)
	}
}

func TestCatalogService_UnreachableBackendRefusesMutations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.Add(ctx, testMovie("First Extra"))
	require.NoError(t, err)
	_, err = env.catalog.Add(ctx, testMovie("Second Extra"))
	require.NoError(t, err)

	moviesBefore := env.kv.raw(t, domain.KeyMovies)
	analyticsBefore := env.kv.raw(t, domain.KeyAnalytics)

	env.kv.failGet(errors.New("connection reset"))

	existing := testMovie("Renamed")
	existing.ID = "1"

	_, addErr := env.catalog.Add(ctx, testMovie("Third Extra"))
	_, updateErr := env.catalog.Update(ctx, existing)
	_, reconcileErr := env.catalog.ReconcileAnalytics(ctx)

	for name, err := range map[string]error{
		"add":       addErr,
		"update":    updateErr,
		"delete":    env.catalog.Delete(ctx, "1"),
		"view":      env.catalog.IncrementView(ctx, "1"),
		"download":  env.catalog.IncrementDownload(ctx, "1"),
		"reconcile": reconcileErr,
	} {
		assert.ErrorIs(t, err, domain.ErrStorageWriteFailed, name)
	}

	env.kv.failGet(nil)

	assert.Equal(t, moviesBefore, env.kv.raw(t, domain.KeyMovies))
	assert.Equal(t, analyticsBefore, env.kv.raw(t, domain.KeyAnalytics))
	assert.Len(t, env.catalog.List(ctx), 6)
	assert.Equal(t, 6, env.analytics.Get(ctx).TotalMovies)
}

func TestCatalogService_CorruptCatalogStillAcceptsAdd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.kv.MemoryKV.Set(ctx, domain.KeyMovies, []byte("{broken")))

	_, err := env.catalog.Add(ctx, testMovie("Fresh Start"))
	require.NoError(t, err)

	assert.Len(t, env.catalog.List(ctx), 5, "seed plus the new title")
}
