package domain

import (
	"context"
)

// KVStore is the key-value storage the catalog persists into.
// Implementations: internal/infra/store (memory), internal/infra/badger,
// internal/infra/redis, internal/infra/postgres.
type KVStore interface {
	// Get returns the raw value for key, or nil with no error if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value for key. A capacity rejection must wrap ErrStorageFull;
	// the previous value stays in place on any failure.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// Storage keys of the persisted collections.
const (
	KeyMovies    = "cf_movies"
	KeyAds       = "cf_ads"
	KeyAnalytics = "cf_analytics"
	KeyLogs      = "cf_activity_logs"
	KeyDraft     = "cf_movie_editor_draft"
)
