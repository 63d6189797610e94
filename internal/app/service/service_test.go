package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/infra/store"
	"movie-catalog-service/internal/validator"
)

var fixedNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// flakyKV is a MemoryKV whose reads and per-key writes can be made to fail.
type flakyKV struct {
	*store.MemoryKV

	mu      sync.Mutex
	getErr  error
	setErrs map[string]error
}

func newFlakyKV() *flakyKV {
	return &flakyKV{
		MemoryKV: store.NewMemoryKV(0),
		setErrs:  make(map[string]error),
	}
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	err := f.getErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	err := f.setErrs[key]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func (f *flakyKV) failSet(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErrs[key] = err
}

func (f *flakyKV) failGet(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

func (f *flakyKV) raw(t *testing.T, key string) []byte {
	t.Helper()
	b, err := f.MemoryKV.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("raw get %s: %v", key, err)
	}
	return b
}

type testEnv struct {
	kv        *flakyKV
	store     *store.Store
	log       *ActivityLog
	analytics *AnalyticsService
	catalog   *CatalogService
	ads       *AdService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	kv := newFlakyKV()
	s := store.New(kv, validator.New(), logger)

	log := NewActivityLog(s, logger)
	log.now = func() time.Time { return fixedNow }
	logSeq := 0
	log.newID = func() string {
		logSeq++
		return fmt.Sprintf("log%06d", logSeq)
	}

	analytics := NewAnalyticsService(s, logger)

	catalog := NewCatalogService(s, log, analytics, logger)
	catalog.now = func() time.Time { return fixedNow }
	movieSeq := 0
	catalog.newID = func() string {
		movieSeq++
		return fmt.Sprintf("movie-%d", movieSeq)
	}

	return &testEnv{
		kv:        kv,
		store:     s,
		log:       log,
		analytics: analytics,
		catalog:   catalog,
		ads:       NewAdService(s, log, logger),
	}
}

func testMovie(title string) domain.Movie {
	return domain.Movie{
		Title:       title,
		Poster:      "http://x/p.jpg",
		Description: "A long enough description",
		ReleaseYear: 2026,
		Languages:   []domain.Language{domain.LanguageTamil},
		Genres:      []domain.Genre{domain.GenreAction},
		Duration:    "2h 30m",
		DownloadLinks: []domain.QualityLink{
			{Quality: domain.Quality720p, URL: "http://x/f"},
		},
	}
}
