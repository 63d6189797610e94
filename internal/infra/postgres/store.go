package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/infra/postgres/migrations"
)

// SQLSTATE codes that mean the server ran out of room.
const (
	codeDiskFull             = "53100"
	codeProgramLimitExceeded = "54000"
	codeCheckViolation       = "23514"
)

// Store implements domain.KVStore on a single PostgreSQL table.
type Store struct {
	db        *gorm.DB
	namespace string
}

// NewStore creates a new PostgreSQL-backed store scoped to namespace.
func NewStore(db *gorm.DB, namespace string) *Store {
	return &Store{db: db, namespace: namespace}
}

// Get returns the value for key, or nil if there is no row.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var model KVRecordModel
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.namespace, key).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting %s: %w", key, err)
	}

	return model.Value, nil
}

// Set upserts the row for key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	model := &KVRecordModel{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(model).Error

	if err != nil {
		if isCapacityError(err) {
			return fmt.Errorf("upserting %s: %w: %w", key, domain.ErrStorageFull, err)
		}
		return fmt.Errorf("upserting %s: %w", key, err)
	}

	return nil
}

// Delete removes the row for key, if any.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.namespace, key).
		Delete(&KVRecordModel{}).Error
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func isCapacityError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case codeDiskFull, codeProgramLimitExceeded:
		return true
	case codeCheckViolation:
		return pgErr.ConstraintName == migrations.ValueSizeConstraint
	default:
		return false
	}
}
