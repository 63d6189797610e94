package badger

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"movie-catalog-service/internal/domain"
)

// Options configures the embedded store.
type Options struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps everything in RAM; used by tests and the demo mode.
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// MaxValueBytes rejects larger values with domain.ErrStorageFull. Zero disables the check.
	MaxValueBytes int
}

// Store implements domain.KVStore on top of BadgerDB.
type Store struct {
	db            *badger.DB
	logger        *zap.Logger
	maxValueBytes int
}

// Open opens (or creates) the database described by opts.
func Open(opts Options, logger *zap.Logger) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts = bopts.WithSyncWrites(opts.SyncWrites)
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", opts.Path, err)
	}

	logger.Info("badger store opened",
		zap.String("path", opts.Path),
		zap.Bool("in_memory", opts.InMemory),
		zap.Bool("sync_writes", opts.SyncWrites),
	)

	return &Store{
		db:            db,
		logger:        logger,
		maxValueBytes: opts.MaxValueBytes,
	}, nil
}

// Get returns the value for key, or nil if absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return data, nil
}

// Set replaces the value for key in a single transaction.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.maxValueBytes > 0 && len(value) > s.maxValueBytes {
		return fmt.Errorf("set %s (%d bytes, limit %d): %w", key, len(value), s.maxValueBytes, domain.ErrStorageFull)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		if isCapacityError(err) {
			return fmt.Errorf("set %s: %w: %w", key, domain.ErrStorageFull, err)
		}
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Ping reports whether the database is still open.
func (s *Store) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger: database closed")
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.logger.Info("closing badger store")
	return s.db.Close()
}

func isCapacityError(err error) bool {
	return errors.Is(err, badger.ErrTxnTooBig) || errors.Is(err, syscall.ENOSPC)
}
