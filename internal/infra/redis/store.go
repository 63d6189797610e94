package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"movie-catalog-service/internal/domain"
)

// Store implements domain.KVStore using Redis.
// Keys are namespaced with keyPrefix so several catalogs can share one instance.
type Store struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
}

// NewStore creates a new Redis-backed store.
func NewStore(client *redis.Client, logger *zap.Logger, keyPrefix string) *Store {
	return &Store{
		client:    client,
		logger:    logger,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value by key. Returns nil if the key doesn't exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	fullKey := s.buildKey(key)

	data, err := s.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// Key doesn't exist - this is not an error condition
		return nil, nil
	}
	if err != nil {
		s.logger.Error("redis get failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return nil, err
	}

	s.logger.Debug("redis get",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)

	return data, nil
}

// Set stores value without expiry. A maxmemory rejection is reported as domain.ErrStorageFull.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	fullKey := s.buildKey(key)

	err := s.client.Set(ctx, fullKey, value, 0).Err()
	if err != nil {
		s.logger.Error("redis set failed",
			zap.String("key", key),
			zap.Int("bytes", len(value)),
			zap.Error(err),
		)

		if isOOM(err) {
			return fmt.Errorf("set %s: %w: %w", key, domain.ErrStorageFull, err)
		}
		return fmt.Errorf("set %s: %w", key, err)
	}

	s.logger.Debug("redis set",
		zap.String("key", key),
		zap.Int("bytes", len(value)),
	)

	return nil
}

// Delete removes a value by key.
// Returns nil if the key doesn't exist (idempotent operation).
func (s *Store) Delete(ctx context.Context, key string) error {
	fullKey := s.buildKey(key)

	if err := s.client.Del(ctx, fullKey).Err(); err != nil {
		s.logger.Error("redis delete failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return err
	}

	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// buildKey creates a fully-qualified key by prefixing with the configured keyPrefix.
func (s *Store) buildKey(key string) string {
	return s.keyPrefix + ":" + key
}

// isOOM matches the error Redis returns once maxmemory is reached under a noeviction policy.
func isOOM(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM ")
}
