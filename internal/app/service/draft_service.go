package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/infra/store"
)

const (
	// DefaultDraftDebounce is the quiet period before a draft is persisted.
	DefaultDraftDebounce = 500 * time.Millisecond

	draftWriteTimeout = 5 * time.Second
)

// DraftService mirrors the in-progress add form into its own storage slot.
// Saves are debounced: only the last draft inside the window reaches the store.
type DraftService struct {
	store    *store.Store
	logger   *zap.Logger
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *domain.MovieDraft
	// gen counts Saves. A timer only flushes the draft it was scheduled for.
	gen uint64
}

// NewDraftService creates a new DraftService. A non-positive debounce uses DefaultDraftDebounce.
func NewDraftService(s *store.Store, debounce time.Duration, logger *zap.Logger) *DraftService {
	if debounce <= 0 {
		debounce = DefaultDraftDebounce
	}
	return &DraftService{
		store:    s,
		logger:   logger,
		debounce: debounce,
	}
}

// Save schedules draft to be written once no newer Save arrives within the debounce window.
func (d *DraftService) Save(draft domain.MovieDraft) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = &draft
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.debounce, func() { d.flushAsync(gen) })
}

// Flush writes the pending draft now, if any.
func (d *DraftService) Flush(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.flushLocked(ctx)
}

// Load returns the latest draft, pending or stored. The bool is false when there is none.
func (d *DraftService) Load(ctx context.Context) (domain.MovieDraft, bool) {
	d.mu.Lock()
	pending := d.pending
	d.mu.Unlock()

	if pending != nil {
		return *pending, true
	}

	res := store.Read[domain.MovieDraft](ctx, d.store, domain.KeyDraft)
	if !res.Ok() {
		return domain.MovieDraft{}, false
	}
	return res.Value, true
}

// HasDraft reports whether a draft worth restoring exists.
func (d *DraftService) HasDraft(ctx context.Context) bool {
	draft, ok := d.Load(ctx)
	return ok && draft.HasContent()
}

// Discard drops any pending draft and removes the stored one.
func (d *DraftService) Discard(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.pending = nil

	if err := d.store.Delete(ctx, domain.KeyDraft); err != nil {
		d.logger.Warn("discard draft failed", zap.Error(err))
		return err
	}
	return nil
}

// Close flushes any pending draft.
func (d *DraftService) Close(ctx context.Context) error {
	return d.Flush(ctx)
}

// flushAsync runs on the debounce timer. A timer that fired while a newer
// Save held the lock finds gen moved on and leaves the newer draft to its own timer.
func (d *DraftService) flushAsync(gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), draftWriteTimeout)
	defer cancel()

	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen {
		return
	}
	if err := d.flushLocked(ctx); err != nil {
		d.logger.Warn("draft autosave failed", zap.Error(err))
	}
}

func (d *DraftService) flushLocked(ctx context.Context) error {
	d.stopLocked()
	if d.pending == nil {
		return nil
	}

	if err := store.Write(ctx, d.store, domain.KeyDraft, *d.pending); err != nil {
		return err
	}

	d.logger.Debug("draft saved", zap.String("title", d.pending.Title))
	d.pending = nil
	return nil
}

func (d *DraftService) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
