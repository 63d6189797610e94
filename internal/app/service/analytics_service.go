package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/infra/store"
	"movie-catalog-service/internal/metrics"
)

// AnalyticsService maintains the running totals record.
type AnalyticsService struct {
	store  *store.Store
	logger *zap.Logger

	mu sync.Mutex
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(s *store.Store, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:  s,
		logger: logger,
	}
}

// Get returns the current totals. An absent or corrupt record reads as zeros.
func (a *AnalyticsService) Get(ctx context.Context) domain.Analytics {
	current, _ := a.load(ctx)
	return current
}

// load is Get for updates. Zeros written over an unreachable record would
// wipe the totals, so that case is an error.
func (a *AnalyticsService) load(ctx context.Context) (domain.Analytics, error) {
	res := store.Read[domain.Analytics](ctx, a.store, domain.KeyAnalytics)
	switch res.State {
	case store.StateFound:
		return res.Value, nil
	case store.StateUnavailable:
		return domain.Analytics{}, store.RefuseWrite(domain.KeyAnalytics)
	default:
		return domain.Analytics{}, nil
	}
}

// SetTotalMovies overwrites totalMovies with the current catalog size.
func (a *AnalyticsService) SetTotalMovies(ctx context.Context, n int) error {
	return a.update(ctx, func(s *domain.Analytics) { s.TotalMovies = n })
}

// RecordView bumps dailyViews.
func (a *AnalyticsService) RecordView(ctx context.Context) error {
	return a.update(ctx, func(s *domain.Analytics) { s.DailyViews++ })
}

// RecordDownload bumps totalDownloads.
func (a *AnalyticsService) RecordDownload(ctx context.Context) error {
	return a.update(ctx, func(s *domain.Analytics) { s.TotalDownloads++ })
}

// Reconcile corrects totalMovies if it drifted from movieCount. It reports
// whether a correction was written.
func (a *AnalyticsService) Reconcile(ctx context.Context, movieCount int) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, err := a.load(ctx)
	if err != nil {
		return false, err
	}
	if current.TotalMovies == movieCount {
		return false, nil
	}

	a.logger.Warn("analytics drift detected",
		zap.Int("recorded", current.TotalMovies),
		zap.Int("actual", movieCount),
	)
	metrics.AnalyticsDrift.Inc()

	current.TotalMovies = movieCount
	if err := store.Write(ctx, a.store, domain.KeyAnalytics, current); err != nil {
		return false, err
	}
	return true, nil
}

func (a *AnalyticsService) update(ctx context.Context, fn func(*domain.Analytics)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, err := a.load(ctx)
	if err != nil {
		return err
	}
	fn(&current)
	return store.Write(ctx, a.store, domain.KeyAnalytics, current)
}

// bestEffort runs an analytics side effect, logging instead of failing.
func (a *AnalyticsService) bestEffort(op string, err error) {
	if err != nil {
		a.logger.Warn("analytics update failed", zap.String("op", op), zap.Error(err))
	}
}
