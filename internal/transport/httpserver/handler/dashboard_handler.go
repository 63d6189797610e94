package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movie-catalog-service/internal/transport/httpserver/dto"
)

// dashboardLogLimit is how many recent log entries the dashboard shows.
const dashboardLogLimit = 10

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	svc    AdminServices
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc AdminServices, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		svc:    svc,
		logger: logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	ctx := c.Context()

	analytics := h.svc.Analytics.Get(ctx)
	movieCount := len(h.svc.Catalog.List(ctx))

	ads := h.svc.Ads.List(ctx)
	enabled := 0
	for _, a := range ads {
		if a.Enabled {
			enabled++
		}
	}

	logs := h.svc.Logs.List(ctx)
	if len(logs) > dashboardLogLimit {
		logs = logs[:dashboardLogLimit]
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":      "Cinema Admin Dashboard",
		"Analytics":  dto.FromAnalytics(analytics),
		"MovieCount": movieCount,
		"Drift":      analytics.TotalMovies != movieCount,
		"EnabledAds": enabled,
		"TotalAds":   len(ads),
		"HasDraft":   h.svc.Drafts.HasDraft(ctx),
		"Logs":       dto.FromLogEntries(logs).Logs,
	}, "layouts/base")
}
