// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"movie-catalog-service/internal/transport/httpserver/handler"
	"movie-catalog-service/internal/transport/httpserver/middleware"
	"movie-catalog-service/internal/validator"
	"movie-catalog-service/web"
)

// DefaultBodyLimit fits a 1MB poster after base64 inflation plus the rest of the form.
const DefaultBodyLimit = 4 * 1024 * 1024

// ServerConfig holds server configuration.
type ServerConfig struct {
	BodyLimit   int
	Debug       bool
	Metrics     bool
	MetricsPath string
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	svc handler.AdminServices,
	posters handler.PosterInliner,
	health middleware.Pinger,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	// Template engine for dashboard
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:      "movie-catalog-service",
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(health))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(cors.New())
	app.Use(compress.New())

	if cfg.Metrics {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	catalogHandler := handler.NewCatalogHandler(svc.Catalog, svc.Ads, v, logger)
	adminHandler := handler.NewAdminHandler(svc, posters, v, logger)
	dashboardHandler := handler.NewDashboardHandler(svc, logger)

	registerRoutes(app, catalogHandler, adminHandler, dashboardHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	catalogHandler *handler.CatalogHandler,
	adminHandler *handler.AdminHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Dashboard (HTML)
	app.Get("/dashboard", dashboardHandler.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	v1 := app.Group("/api/v1")

	// Public catalog
	movies := v1.Group("/movies")
	movies.Get("/", catalogHandler.List)
	movies.Get("/trending", catalogHandler.Trending)
	movies.Get("/:slug", catalogHandler.GetBySlug)
	movies.Post("/:id/views", catalogHandler.RecordView)
	movies.Post("/:id/downloads", catalogHandler.RecordDownload)
	v1.Get("/ads", catalogHandler.Ads)

	// Admin routes
	admin := v1.Group("/admin")

	adminMovies := admin.Group("/movies")
	adminMovies.Get("/", adminHandler.ListMovies)
	adminMovies.Post("/", adminHandler.CreateMovie)
	adminMovies.Put("/:id", adminHandler.UpdateMovie)
	adminMovies.Delete("/:id", adminHandler.DeleteMovie)

	ads := admin.Group("/ads")
	ads.Get("/", adminHandler.ListAds)
	ads.Put("/", adminHandler.SaveAds)
	ads.Post("/:id/toggle", adminHandler.ToggleAd)
	ads.Put("/:id/code", adminHandler.UpdateAdCode)

	admin.Get("/analytics", adminHandler.Analytics)
	admin.Post("/analytics/reconcile", adminHandler.ReconcileAnalytics)

	admin.Get("/logs", adminHandler.Logs)
	admin.Delete("/logs", adminHandler.ClearLogs)

	admin.Get("/draft", adminHandler.GetDraft)
	admin.Put("/draft", adminHandler.SaveDraft)
	admin.Delete("/draft", adminHandler.DiscardDraft)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server on host:port.
func (s *Server) Start(addr string) error {
	s.Logger.Info("starting HTTP server", zap.String("addr", addr))

	return s.App.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
