// Package store is the persistent store adapter: it reads and writes whole
// collections as JSON documents on top of a domain.KVStore backend.
//
// Reads never fail. A missing key, undecodable bytes, a value that fails its
// schema check and an unreachable backend all come back as an absent Result
// with a State describing why, so callers can fall back to defaults.
// Writes map backend failures onto domain.ErrStorageFull and
// domain.ErrStorageWriteFailed wrapped in a *domain.StorageError.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/metrics"
)

// State tags the outcome of a read.
type State int

const (
	StateFound State = iota
	StateMissing
	StateCorrupt
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateMissing:
		return "missing"
	case StateCorrupt:
		return "corrupt"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of Read. Value is only meaningful when State is StateFound.
type Result[T any] struct {
	Value T
	State State
}

// Ok reports whether a trusted value was read.
func (r Result[T]) Ok() bool {
	return r.State == StateFound
}

// Checker validates a decoded value before it is trusted.
// Implementations: internal/validator.Validator
type Checker interface {
	Check(v interface{}) error
}

// Store binds a backend to a schema checker and a logger.
type Store struct {
	kv      domain.KVStore
	checker Checker
	logger  *zap.Logger
}

// New creates a Store. checker may be nil to skip schema checks.
func New(kv domain.KVStore, checker Checker, logger *zap.Logger) *Store {
	return &Store{
		kv:      kv,
		checker: checker,
		logger:  logger,
	}
}

// Read loads and decodes the collection stored under key.
func Read[T any](ctx context.Context, s *Store, key string) Result[T] {
	var res Result[T]

	start := time.Now()
	raw, err := s.kv.Get(ctx, key)
	metrics.StoreOperationDuration.WithLabelValues("read").Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		s.logger.Error("store read failed", zap.String("key", key), zap.Error(err))
		res.State = StateUnavailable
	case raw == nil:
		res.State = StateMissing
	default:
		res.State = s.decode(key, raw, &res.Value)
	}

	metrics.StoreOperations.WithLabelValues("read", key, res.State.String()).Inc()

	return res
}

// decode fills out from raw, returning StateCorrupt on any parse or schema failure.
func (s *Store) decode(key string, raw []byte, out interface{}) State {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		s.logger.Warn("corrupt record treated as absent",
			zap.String("key", key),
			zap.String("reason", "null document"),
		)
		return StateCorrupt
	}

	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("corrupt record treated as absent",
			zap.String("key", key),
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		return StateCorrupt
	}

	if s.checker != nil {
		if err := s.checker.Check(out); err != nil {
			s.logger.Warn("record failed schema check, treated as absent",
				zap.String("key", key),
				zap.Error(err),
			)
			return StateCorrupt
		}
	}

	return StateFound
}

// Write encodes value and stores it under key, replacing what was there.
func Write[T any](ctx context.Context, s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		metrics.StoreOperations.WithLabelValues("write", key, "failed").Inc()
		return &domain.StorageError{
			Collection: key,
			Err:        fmt.Errorf("%w: encoding: %w", domain.ErrStorageWriteFailed, err),
		}
	}

	start := time.Now()
	err = s.kv.Set(ctx, key, data)
	metrics.StoreOperationDuration.WithLabelValues("write").Observe(time.Since(start).Seconds())

	if err != nil {
		return s.writeError("write", key, len(data), err)
	}

	metrics.StoreOperations.WithLabelValues("write", key, "ok").Inc()
	metrics.StoreValueBytes.WithLabelValues(key).Set(float64(len(data)))

	s.logger.Debug("store write",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)

	return nil
}

// Delete removes key. Removing an absent key succeeds.
func (s *Store) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.kv.Delete(ctx, key)
	metrics.StoreOperationDuration.WithLabelValues("delete").Observe(time.Since(start).Seconds())

	if err != nil {
		return s.writeError("delete", key, 0, err)
	}

	metrics.StoreOperations.WithLabelValues("delete", key, "ok").Inc()

	return nil
}

// RefuseWrite is returned by read-modify-write callers when the current value
// could not be read. Writing a fallback there would replace real data.
func RefuseWrite(key string) error {
	metrics.StoreOperations.WithLabelValues("write", key, "refused").Inc()
	return &domain.StorageError{
		Collection: key,
		Err:        fmt.Errorf("%w: current value unreadable", domain.ErrStorageWriteFailed),
	}
}

// Ping checks the backend.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// writeError classifies a backend failure.
func (s *Store) writeError(op, key string, size int, err error) error {
	if errors.Is(err, domain.ErrStorageFull) {
		metrics.StoreOperations.WithLabelValues(op, key, "full").Inc()
		s.logger.Error("store rejected write: capacity exceeded",
			zap.String("key", key),
			zap.Int("bytes", size),
			zap.Error(err),
		)
		return &domain.StorageError{Collection: key, Err: err}
	}

	metrics.StoreOperations.WithLabelValues(op, key, "failed").Inc()
	s.logger.Error("store write failed",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(err),
	)

	if errors.Is(err, domain.ErrStorageWriteFailed) {
		return &domain.StorageError{Collection: key, Err: err}
	}

	return &domain.StorageError{
		Collection: key,
		Err:        fmt.Errorf("%w: %w", domain.ErrStorageWriteFailed, err),
	}
}
