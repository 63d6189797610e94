package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movie-catalog-service/internal/app/service"
	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/transport/httpserver/dto"
	"movie-catalog-service/internal/validator"
)

// CatalogHandler serves the public site: listings, detail pages, counters and ads.
type CatalogHandler struct {
	catalog   *service.CatalogService
	ads       *service.AdService
	validator *validator.Validator
	logger    *zap.Logger
	now       func() time.Time
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService, ads *service.AdService, v *validator.Validator, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:   catalog,
		ads:       ads,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// List handles GET /api/v1/movies
//
// With q set the result is the search match set; otherwise movies come newest
// first, narrowed by genre, language and trending when given.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	var req dto.MovieListRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters", "INVALID_PARAMS")
	}

	if err := h.validator.Validate(&req); err != nil {
		return writeError(c, h.logger, "list movies", err)
	}

	ctx := c.Context()
	var movies []domain.Movie
	if req.Query != "" {
		movies = h.catalog.Search(ctx, req.Query)
	} else {
		movies = h.catalog.Latest(ctx, domain.Genre(req.Genre))
	}

	if req.Language != "" {
		movies = domain.ByLanguage(movies, domain.Language(req.Language))
	}
	if req.Trending {
		movies = domain.Trending(movies)
	}

	return c.JSON(dto.FromMovies(movies, h.now()))
}

// Trending handles GET /api/v1/movies/trending
func (h *CatalogHandler) Trending(c *fiber.Ctx) error {
	return c.JSON(dto.FromMovies(h.catalog.Trending(c.Context()), h.now()))
}

// GetBySlug handles GET /api/v1/movies/:slug
func (h *CatalogHandler) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return badRequest(c, "slug is required", "MISSING_SLUG")
	}

	ctx := c.Context()
	movie, err := h.catalog.GetBySlug(ctx, slug)
	if err != nil {
		return writeError(c, h.logger, "get movie", err)
	}

	related := h.catalog.Related(ctx, movie)

	return c.JSON(dto.FromMovieDetail(movie, related, h.now()))
}

// RecordView handles POST /api/v1/movies/:id/views
func (h *CatalogHandler) RecordView(c *fiber.Ctx) error {
	if err := h.catalog.IncrementView(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.logger, "record view", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordDownload handles POST /api/v1/movies/:id/downloads
func (h *CatalogHandler) RecordDownload(c *fiber.Ctx) error {
	if err := h.catalog.IncrementDownload(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.logger, "record download", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Ads handles GET /api/v1/ads
// Only enabled slots are exposed to the public site.
func (h *CatalogHandler) Ads(c *fiber.Ctx) error {
	all := h.ads.List(c.Context())
	enabled := make([]domain.AdConfig, 0, len(all))
	for _, a := range all {
		if a.Enabled {
			enabled = append(enabled, a)
		}
	}
	return c.JSON(dto.AdListResponse{Ads: enabled})
}
