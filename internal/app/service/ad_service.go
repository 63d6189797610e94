package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/infra/store"
)

// AdService owns the ad slot configuration.
type AdService struct {
	store  *store.Store
	log    *ActivityLog
	logger *zap.Logger

	mu sync.Mutex
}

// NewAdService creates a new AdService.
func NewAdService(s *store.Store, log *ActivityLog, logger *zap.Logger) *AdService {
	return &AdService{
		store:  s,
		log:    log,
		logger: logger,
	}
}

// List returns the ad slots, falling back to the seed slots like CatalogService.List.
func (a *AdService) List(ctx context.Context) []domain.AdConfig {
	ads, _ := a.load(ctx)
	return ads
}

// load reports an unreachable backend as an error for Toggle and UpdateCode,
// which write the whole slot list back.
func (a *AdService) load(ctx context.Context) ([]domain.AdConfig, error) {
	res := store.Read[[]domain.AdConfig](ctx, a.store, domain.KeyAds)

	switch res.State {
	case store.StateFound:
		if res.Value == nil {
			return []domain.AdConfig{}, nil
		}
		return res.Value, nil
	case store.StateMissing:
		seed := domain.SeedAds()
		if err := store.Write(ctx, a.store, domain.KeyAds, seed); err != nil {
			a.logger.Warn("seeding ads failed", zap.Error(err))
		}
		return seed, nil
	case store.StateUnavailable:
		a.logger.Warn("ads unreachable, serving seed")
		return domain.SeedAds(), store.RefuseWrite(domain.KeyAds)
	default:
		a.logger.Warn("ads unreadable, serving seed", zap.String("state", res.State.String()))
		return domain.SeedAds(), nil
	}
}

// Save replaces the whole slot list. Unless silent, an UPDATE_ADS entry is logged.
func (a *AdService) Save(ctx context.Context, ads []domain.AdConfig, silent bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.saveLocked(ctx, ads, silent)
}

// Toggle flips the enabled flag of slot id and logs a TOGGLE_AD entry.
func (a *AdService) Toggle(ctx context.Context, id string) (domain.AdConfig, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ads, err := a.load(ctx)
	if err != nil {
		return domain.AdConfig{}, err
	}
	idx := domain.FindAd(ads, id)
	if idx < 0 {
		return domain.AdConfig{}, fmt.Errorf("ad %s: %w", id, domain.ErrNotFound)
	}
	ads[idx].Enabled = !ads[idx].Enabled

	if err := a.saveLocked(ctx, ads, true); err != nil {
		return domain.AdConfig{}, err
	}

	verb := "Disabled"
	if ads[idx].Enabled {
		verb = "Enabled"
	}
	a.log.record(ctx, domain.ActionToggleAd, domain.LogInfo, "%s ad placement: \"%s\"", verb, ads[idx].Name)

	return ads[idx], nil
}

// UpdateCode replaces the embed code of slot id and saves with an UPDATE_ADS entry.
func (a *AdService) UpdateCode(ctx context.Context, id, code string) (domain.AdConfig, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ads, err := a.load(ctx)
	if err != nil {
		return domain.AdConfig{}, err
	}
	idx := domain.FindAd(ads, id)
	if idx < 0 {
		return domain.AdConfig{}, fmt.Errorf("ad %s: %w", id, domain.ErrNotFound)
	}
	ads[idx].Code = code

	if err := a.saveLocked(ctx, ads, false); err != nil {
		return domain.AdConfig{}, err
	}
	return ads[idx], nil
}

func (a *AdService) saveLocked(ctx context.Context, ads []domain.AdConfig, silent bool) error {
	if ads == nil {
		ads = []domain.AdConfig{}
	}
	if err := store.Write(ctx, a.store, domain.KeyAds, ads); err != nil {
		a.logger.Error("save ads failed", zap.Error(err))
		return err
	}

	a.logger.Info("ads saved", zap.Int("count", len(ads)), zap.Bool("silent", silent))

	if !silent {
		a.log.record(ctx, domain.ActionUpdateAds, domain.LogWarning, "Synchronized global advertisement configurations")
	}
	return nil
}
