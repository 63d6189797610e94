package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/infra/store"
)

// ActivityLog keeps the bounded, newest-first audit trail of admin actions.
type ActivityLog struct {
	store  *store.Store
	logger *zap.Logger

	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

// NewActivityLog creates a new ActivityLog.
func NewActivityLog(s *store.Store, logger *zap.Logger) *ActivityLog {
	return &ActivityLog{
		store:  s,
		logger: logger,
		now:    time.Now,
		newID:  newLogID,
	}
}

// List returns all entries, newest first. A missing or corrupt log reads as empty.
func (l *ActivityLog) List(ctx context.Context) []domain.ActivityLogEntry {
	entries, _ := l.load(ctx)
	return entries
}

// load reads the log for an append. An unreachable backend is an error so the
// append does not replace the stored history with a single entry.
func (l *ActivityLog) load(ctx context.Context) ([]domain.ActivityLogEntry, error) {
	res := store.Read[[]domain.ActivityLogEntry](ctx, l.store, domain.KeyLogs)
	switch {
	case res.State == store.StateUnavailable:
		return []domain.ActivityLogEntry{}, store.RefuseWrite(domain.KeyLogs)
	case !res.Ok() || res.Value == nil:
		return []domain.ActivityLogEntry{}, nil
	default:
		return res.Value, nil
	}
}

// Append prepends a new entry and trims the log to domain.MaxLogEntries.
func (l *ActivityLog) Append(ctx context.Context, action domain.LogAction, details string, typ domain.LogType) (domain.ActivityLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, err := l.load(ctx)
	if err != nil {
		return domain.ActivityLogEntry{}, err
	}

	entry := l.newEntry(action, details, typ)

	n := len(current) + 1
	if n > domain.MaxLogEntries {
		n = domain.MaxLogEntries
	}
	entries := make([]domain.ActivityLogEntry, 0, n)
	entries = append(entries, entry)
	entries = append(entries, current[:n-1]...)

	if err := store.Write(ctx, l.store, domain.KeyLogs, entries); err != nil {
		return domain.ActivityLogEntry{}, err
	}

	return entry, nil
}

// Clear replaces the whole log with the single entry recording the wipe.
// If that write fails the previous log is left as it was.
func (l *ActivityLog) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.newEntry(domain.ActionClearLogs, "Audit logs cleared by administrator", domain.LogWarning)
	if err := store.Write(ctx, l.store, domain.KeyLogs, []domain.ActivityLogEntry{entry}); err != nil {
		return err
	}

	l.logger.Info("activity log cleared")
	return nil
}

func (l *ActivityLog) newEntry(action domain.LogAction, details string, typ domain.LogType) domain.ActivityLogEntry {
	return domain.ActivityLogEntry{
		ID:        l.newID(),
		Action:    action,
		Details:   details,
		Timestamp: l.now().UnixMilli(),
		Type:      typ,
	}
}

// record appends an entry for a mutation that has already been persisted.
// Failures are logged and swallowed: the primary write stands.
func (l *ActivityLog) record(ctx context.Context, action domain.LogAction, typ domain.LogType, format string, args ...interface{}) {
	details := fmt.Sprintf(format, args...)
	if _, err := l.Append(ctx, action, details, typ); err != nil {
		l.logger.Warn("activity log append failed",
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}
