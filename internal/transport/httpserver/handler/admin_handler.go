package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movie-catalog-service/internal/app/service"
	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/transport/httpserver/dto"
	"movie-catalog-service/internal/validator"
)

// PosterInliner converts a poster URL into a data URI.
// Implementations: internal/infra/poster.Inliner
type PosterInliner interface {
	Inline(ctx context.Context, rawURL string) (string, error)
}

// AdminServices groups the services behind the admin API.
type AdminServices struct {
	Catalog   *service.CatalogService
	Ads       *service.AdService
	Analytics *service.AnalyticsService
	Logs      *service.ActivityLog
	Drafts    *service.DraftService
}

// AdminHandler handles the admin dashboard API.
type AdminHandler struct {
	svc       AdminServices
	posters   PosterInliner
	validator *validator.Validator
	logger    *zap.Logger
	now       func() time.Time
}

// NewAdminHandler creates a new AdminHandler. posters may be nil, in which case
// inlinePoster requests are rejected.
func NewAdminHandler(svc AdminServices, posters PosterInliner, v *validator.Validator, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		svc:       svc,
		posters:   posters,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// ListMovies handles GET /api/v1/admin/movies
func (h *AdminHandler) ListMovies(c *fiber.Ctx) error {
	var req dto.AdminMovieListRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters", "INVALID_PARAMS")
	}
	if err := h.validator.Validate(&req); err != nil {
		return writeError(c, h.logger, "admin list movies", err)
	}

	return c.JSON(dto.FromMovies(h.svc.Catalog.AdminFilter(c.Context(), req.Query), h.now()))
}

// CreateMovie handles POST /api/v1/admin/movies
func (h *AdminHandler) CreateMovie(c *fiber.Ctx) error {
	req, err := h.bindMovie(c)
	if err != nil {
		return writeError(c, h.logger, "bind movie", err)
	}

	ctx := c.Context()
	movie := req.ToMovie(h.now())
	if req.InlinePoster {
		if movie.Poster, err = h.inline(ctx, movie.Poster); err != nil {
			return writeError(c, h.logger, "inline poster", err)
		}
	}

	added, err := h.svc.Catalog.Add(ctx, movie)
	if err != nil {
		return writeError(c, h.logger, "add movie", err)
	}

	h.logger.Info("movie published",
		zap.String("id", added.ID),
		zap.String("slug", added.Slug),
	)

	if err := h.svc.Drafts.Discard(ctx); err != nil {
		h.logger.Warn("draft not discarded after publish", zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromDomainMovie(added, h.now()))
}

// UpdateMovie handles PUT /api/v1/admin/movies/:id
func (h *AdminHandler) UpdateMovie(c *fiber.Ctx) error {
	id := c.Params("id")

	req, err := h.bindMovie(c)
	if err != nil {
		return writeError(c, h.logger, "bind movie", err)
	}

	ctx := c.Context()
	stored, err := h.svc.Catalog.GetByID(ctx, id)
	if err != nil {
		return writeError(c, h.logger, "update movie", err)
	}

	movie := req.ApplyTo(stored, h.now())
	if req.InlinePoster && movie.Poster != stored.Poster {
		if movie.Poster, err = h.inline(ctx, movie.Poster); err != nil {
			return writeError(c, h.logger, "inline poster", err)
		}
	}

	saved, err := h.svc.Catalog.Update(ctx, movie)
	if err != nil {
		return writeError(c, h.logger, "update movie", err)
	}

	return c.JSON(dto.FromDomainMovie(saved, h.now()))
}

// DeleteMovie handles DELETE /api/v1/admin/movies/:id
func (h *AdminHandler) DeleteMovie(c *fiber.Ctx) error {
	if err := h.svc.Catalog.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.logger, "delete movie", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAds handles GET /api/v1/admin/ads
func (h *AdminHandler) ListAds(c *fiber.Ctx) error {
	return c.JSON(dto.AdListResponse{Ads: h.svc.Ads.List(c.Context())})
}

// SaveAds handles PUT /api/v1/admin/ads
func (h *AdminHandler) SaveAds(c *fiber.Ctx) error {
	var req dto.AdListResponse
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}
	if err := h.validator.Check(req.Ads); err != nil {
		return badRequest(c, err.Error(), "VALIDATION_ERROR")
	}

	if !sameSlots(h.svc.Ads.List(c.Context()), req.Ads) {
		return badRequest(c, "ad slots cannot be added or removed", "AD_SLOTS_FIXED")
	}

	if err := h.svc.Ads.Save(c.Context(), req.Ads, false); err != nil {
		return writeError(c, h.logger, "save ads", err)
	}
	return c.JSON(dto.AdListResponse{Ads: h.svc.Ads.List(c.Context())})
}

// ToggleAd handles POST /api/v1/admin/ads/:id/toggle
func (h *AdminHandler) ToggleAd(c *fiber.Ctx) error {
	ad, err := h.svc.Ads.Toggle(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, "toggle ad", err)
	}
	return c.JSON(ad)
}

// UpdateAdCode handles PUT /api/v1/admin/ads/:id/code
func (h *AdminHandler) UpdateAdCode(c *fiber.Ctx) error {
	var req dto.AdCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}
	if err := h.validator.Validate(&req); err != nil {
		return writeError(c, h.logger, "update ad code", err)
	}

	ad, err := h.svc.Ads.UpdateCode(c.Context(), c.Params("id"), req.Code)
	if err != nil {
		return writeError(c, h.logger, "update ad code", err)
	}
	return c.JSON(ad)
}

// Analytics handles GET /api/v1/admin/analytics
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	return c.JSON(dto.FromAnalytics(h.svc.Analytics.Get(c.Context())))
}

// ReconcileAnalytics handles POST /api/v1/admin/analytics/reconcile
func (h *AdminHandler) ReconcileAnalytics(c *fiber.Ctx) error {
	h.logger.Info("manual analytics reconcile triggered")

	ctx := c.Context()
	corrected, err := h.svc.Catalog.ReconcileAnalytics(ctx)
	if err != nil {
		return writeError(c, h.logger, "reconcile analytics", err)
	}

	return c.JSON(dto.ReconcileResponse{
		Corrected: corrected,
		Analytics: dto.FromAnalytics(h.svc.Analytics.Get(ctx)),
	})
}

// Logs handles GET /api/v1/admin/logs
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	return c.JSON(dto.FromLogEntries(h.svc.Logs.List(c.Context())))
}

// ClearLogs handles DELETE /api/v1/admin/logs
func (h *AdminHandler) ClearLogs(c *fiber.Ctx) error {
	ctx := c.Context()
	if err := h.svc.Logs.Clear(ctx); err != nil {
		return writeError(c, h.logger, "clear logs", err)
	}
	return c.JSON(dto.FromLogEntries(h.svc.Logs.List(ctx)))
}

// GetDraft handles GET /api/v1/admin/draft
func (h *AdminHandler) GetDraft(c *fiber.Ctx) error {
	draft, ok := h.svc.Drafts.Load(c.Context())
	return c.JSON(dto.DraftResponse{
		Exists: ok && draft.HasContent(),
		Draft:  draft,
	})
}

// SaveDraft handles PUT /api/v1/admin/draft
// The write is debounced, so the response only acknowledges receipt.
func (h *AdminHandler) SaveDraft(c *fiber.Ctx) error {
	var draft domain.MovieDraft
	if err := c.BodyParser(&draft); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}

	h.svc.Drafts.Save(draft)

	return c.SendStatus(fiber.StatusAccepted)
}

// DiscardDraft handles DELETE /api/v1/admin/draft
func (h *AdminHandler) DiscardDraft(c *fiber.Ctx) error {
	if err := h.svc.Drafts.Discard(c.Context()); err != nil {
		return writeError(c, h.logger, "discard draft", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// sameSlots reports whether next holds exactly the slot ids of current, each once.
func sameSlots(current, next []domain.AdConfig) bool {
	if len(current) != len(next) {
		return false
	}

	want := make(map[string]struct{}, len(current))
	for _, a := range current {
		want[a.ID] = struct{}{}
	}
	for _, a := range next {
		if _, ok := want[a.ID]; !ok {
			return false
		}
		delete(want, a.ID)
	}
	return len(want) == 0
}

// bindMovie parses and validates the add/edit body.
func (h *AdminHandler) bindMovie(c *fiber.Ctx) (*dto.MovieRequest, error) {
	var req dto.MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	if err := h.validator.Validate(&req); err != nil {
		return nil, err
	}

	return &req, nil
}

func (h *AdminHandler) inline(ctx context.Context, src string) (string, error) {
	if h.posters == nil {
		return "", fiber.NewError(fiber.StatusNotImplemented, "poster inlining is disabled")
	}
	return h.posters.Inline(ctx, src)
}
