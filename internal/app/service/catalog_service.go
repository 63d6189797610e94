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

// CatalogService owns the movie collection: CRUD, counters and the public queries.
// Every successful mutation is followed by best-effort activity log and
// analytics updates.
type CatalogService struct {
	store     *store.Store
	log       *ActivityLog
	analytics *AnalyticsService
	logger    *zap.Logger

	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(s *store.Store, log *ActivityLog, analytics *AnalyticsService, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:     s,
		log:       log,
		analytics: analytics,
		logger:    logger,
		now:       time.Now,
		newID:     newMovieID,
	}
}

// List returns the catalog, newest additions first. When nothing is stored yet
// the seed catalog is returned and written back; when the stored value is
// corrupt or the backend is unreachable the seed is returned without writing.
func (c *CatalogService) List(ctx context.Context) []domain.Movie {
	movies, _ := c.load(ctx)
	return movies
}

// load is List for read-modify-write paths: an unreachable backend is an
// error, so callers never write the seed over a catalog they could not read.
func (c *CatalogService) load(ctx context.Context) ([]domain.Movie, error) {
	res := store.Read[[]domain.Movie](ctx, c.store, domain.KeyMovies)

	switch res.State {
	case store.StateFound:
		if res.Value == nil {
			return []domain.Movie{}, nil
		}
		return res.Value, nil
	case store.StateMissing:
		seed := domain.SeedMovies(c.now())
		if err := store.Write(ctx, c.store, domain.KeyMovies, seed); err != nil {
			c.logger.Warn("seeding catalog failed", zap.Error(err))
		} else {
			c.logger.Info("catalog seeded", zap.Int("count", len(seed)))
		}
		return seed, nil
	case store.StateUnavailable:
		c.logger.Warn("catalog unreachable, serving seed")
		return domain.SeedMovies(c.now()), store.RefuseWrite(domain.KeyMovies)
	default:
		c.logger.Warn("catalog unreadable, serving seed",
			zap.String("state", res.State.String()),
		)
		return domain.SeedMovies(c.now()), nil
	}
}

// GetByID returns the movie with id.
func (c *CatalogService) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	movies := c.List(ctx)
	if idx := indexByID(movies, id); idx >= 0 {
		return &movies[idx], nil
	}
	return nil, domain.ErrNotFound
}

// GetBySlug returns the first movie whose slug matches.
func (c *CatalogService) GetBySlug(ctx context.Context, slug string) (*domain.Movie, error) {
	movies := c.List(ctx)
	for i := range movies {
		if movies[i].Slug == slug {
			return &movies[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Add stores a new movie at the front of the catalog. The id is generated when
// the caller left it empty, the slug is always derived from the title and made
// unique, and createdAt defaults to now.
func (c *CatalogService) Add(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	movies, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	m := movie.Clone()

	if m.ID == "" {
		m.ID = c.newID()
	} else if indexByID(movies, m.ID) >= 0 {
		return nil, fmt.Errorf("movie %s: %w", m.ID, domain.ErrConflict)
	}

	m.Slug = domain.UniqueSlug(domain.Slugify(m.Title), func(s string) bool {
		for i := range movies {
			if movies[i].Slug == s {
				return true
			}
		}
		return false
	})
	if m.CreatedAt == 0 {
		m.CreatedAt = c.now().UnixMilli()
	}

	next := make([]domain.Movie, 0, len(movies)+1)
	next = append(next, *m)
	next = append(next, movies...)

	if err := store.Write(ctx, c.store, domain.KeyMovies, next); err != nil {
		c.logger.Error("add movie failed", zap.String("title", m.Title), zap.Error(err))
		return nil, err
	}

	c.logger.Info("movie added",
		zap.String("id", m.ID),
		zap.String("slug", m.Slug),
	)

	c.log.record(ctx, domain.ActionAddMovie, domain.LogSuccess, "Published new title: \"%s\"", m.Title)
	c.analytics.bestEffort("set_total_movies", c.analytics.SetTotalMovies(ctx, len(next)))

	return m, nil
}

// Update replaces the movie with the same id and returns what was stored.
// Slug and createdAt must already be set on movie. Views and downloads are
// taken from the stored record so an edit never undoes a concurrent increment.
func (c *CatalogService) Update(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	movies, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexByID(movies, movie.ID)
	if idx < 0 {
		return nil, fmt.Errorf("movie %s: %w", movie.ID, domain.ErrNotFound)
	}

	m := movie.Clone()
	m.Views = movies[idx].Views
	m.Downloads = movies[idx].Downloads

	next := make([]domain.Movie, len(movies))
	copy(next, movies)
	next[idx] = *m

	if err := store.Write(ctx, c.store, domain.KeyMovies, next); err != nil {
		c.logger.Error("update movie failed", zap.String("id", movie.ID), zap.Error(err))
		return nil, err
	}

	c.logger.Info("movie updated", zap.String("id", movie.ID))

	c.log.record(ctx, domain.ActionUpdateMovie, domain.LogInfo, "Updated metadata for: \"%s\"", m.Title)

	return m, nil
}

// Delete removes the movie with id.
func (c *CatalogService) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	movies, err := c.load(ctx)
	if err != nil {
		return err
	}
	idx := indexByID(movies, id)
	if idx < 0 {
		return fmt.Errorf("movie %s: %w", id, domain.ErrNotFound)
	}
	title := movies[idx].Title

	next := make([]domain.Movie, 0, len(movies)-1)
	next = append(next, movies[:idx]...)
	next = append(next, movies[idx+1:]...)

	if err := store.Write(ctx, c.store, domain.KeyMovies, next); err != nil {
		c.logger.Error("delete movie failed", zap.String("id", id), zap.Error(err))
		return err
	}

	c.logger.Info("movie deleted", zap.String("id", id))

	c.log.record(ctx, domain.ActionDeleteMovie, domain.LogDanger, "Permanently removed title: \"%s\"", title)
	c.analytics.bestEffort("set_total_movies", c.analytics.SetTotalMovies(ctx, len(next)))

	return nil
}

// IncrementView bumps the movie's view counter and the global dailyViews.
// An unknown id is a no-op.
func (c *CatalogService) IncrementView(ctx context.Context, id string) error {
	found, err := c.bump(ctx, id, func(m *domain.Movie) { m.Views++ })
	if err != nil || !found {
		return err
	}
	c.analytics.bestEffort("record_view", c.analytics.RecordView(ctx))
	return nil
}

// IncrementDownload bumps the movie's download counter and the global totalDownloads.
// An unknown id is a no-op.
func (c *CatalogService) IncrementDownload(ctx context.Context, id string) error {
	found, err := c.bump(ctx, id, func(m *domain.Movie) { m.Downloads++ })
	if err != nil || !found {
		return err
	}
	c.analytics.bestEffort("record_download", c.analytics.RecordDownload(ctx))
	return nil
}

func (c *CatalogService) bump(ctx context.Context, id string, fn func(*domain.Movie)) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	movies, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	idx := indexByID(movies, id)
	if idx < 0 {
		c.logger.Debug("counter bump for unknown movie", zap.String("id", id))
		return false, nil
	}

	fn(&movies[idx])

	if err := store.Write(ctx, c.store, domain.KeyMovies, movies); err != nil {
		c.logger.Error("counter update failed", zap.String("id", id), zap.Error(err))
		return true, err
	}
	return true, nil
}

// ReconcileAnalytics recomputes totalMovies from the stored catalog.
func (c *CatalogService) ReconcileAnalytics(ctx context.Context) (bool, error) {
	c.mu.Lock()
	movies, err := c.load(ctx)
	c.mu.Unlock()
	if err != nil {
		return false, err
	}

	return c.analytics.Reconcile(ctx, len(movies))
}

// Trending returns the flagged titles in catalog order.
func (c *CatalogService) Trending(ctx context.Context) []domain.Movie {
	return domain.Trending(c.List(ctx))
}

// Latest returns titles newest first, optionally limited to a genre.
func (c *CatalogService) Latest(ctx context.Context, genre domain.Genre) []domain.Movie {
	return domain.Latest(c.List(ctx), genre)
}

// ByLanguage returns titles available in lang.
func (c *CatalogService) ByLanguage(ctx context.Context, lang domain.Language) []domain.Movie {
	return domain.ByLanguage(c.List(ctx), lang)
}

// Search matches q against titles, genres and languages.
func (c *CatalogService) Search(ctx context.Context, q string) []domain.Movie {
	return domain.Search(c.List(ctx), q)
}

// AdminFilter matches q against titles and languages for the admin table.
func (c *CatalogService) AdminFilter(ctx context.Context, q string) []domain.Movie {
	return domain.AdminFilter(c.List(ctx), q)
}

// Related returns up to domain.RelatedLimit titles sharing a genre or language with target.
func (c *CatalogService) Related(ctx context.Context, target *domain.Movie) []domain.Movie {
	return domain.Related(c.List(ctx), target, domain.RelatedLimit, c.now())
}

func indexByID(movies []domain.Movie, id string) int {
	for i := range movies {
		if movies[i].ID == id {
			return i
		}
	}
	return -1
}
