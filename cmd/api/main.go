// Package main is the entry point for the movie-catalog-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"movie-catalog-service/internal/app/service"
	"movie-catalog-service/internal/config"
	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/infra/badger"
	"movie-catalog-service/internal/infra/poster"
	"movie-catalog-service/internal/infra/postgres"
	"movie-catalog-service/internal/infra/postgres/migrations"
	rediskv "movie-catalog-service/internal/infra/redis"
	"movie-catalog-service/internal/infra/store"
	"movie-catalog-service/internal/job"
	"movie-catalog-service/internal/logger"
	"movie-catalog-service/internal/transport/httpserver"
	"movie-catalog-service/internal/transport/httpserver/handler"
	"movie-catalog-service/internal/validator"
	"movie-catalog-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("APP_CONFIG"))
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Name:   cfg.App.Name,
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting movie-catalog-service",
		zap.String("env", cfg.App.Env),
		zap.String("addr", cfg.App.Addr()),
		zap.String("storage", cfg.Storage.Driver),
	)

	ctx := context.Background()

	// Open the key-value backend
	kv, redisClient, closeBackend, err := openBackend(ctx, cfg, log.Logger)
	if err != nil {
		log.Fatal("failed to open storage backend", zap.Error(err))
	}
	defer closeBackend()

	// Create validator and store adapter
	v := validator.New()
	st := store.New(kv, v, log.Logger)

	// Create services
	activityLog := service.NewActivityLog(st, log.Logger)
	analytics := service.NewAnalyticsService(st, log.Logger)
	svc := handler.AdminServices{
		Catalog:   service.NewCatalogService(st, activityLog, analytics, log.Logger),
		Ads:       service.NewAdService(st, activityLog, log.Logger),
		Analytics: analytics,
		Logs:      activityLog,
		Drafts:    service.NewDraftService(st, cfg.Draft.Debounce, log.Logger),
	}

	// Create poster inliner
	inliner := poster.New(
		poster.ClientConfig{
			Timeout:  cfg.Poster.Timeout,
			MaxBytes: cfg.Poster.MaxBytes,
			Retry: poster.RetryConfig{
				MaxAttempts: cfg.Poster.Retry.MaxAttempts,
				WaitTime:    cfg.Poster.Retry.WaitTime,
				MaxWaitTime: cfg.Poster.Retry.MaxWaitTime,
			},
			CB: poster.CBConfig{
				MaxRequests:  cfg.Poster.CB.MaxRequests,
				Interval:     cfg.Poster.CB.Interval,
				Timeout:      cfg.Poster.CB.Timeout,
				FailureRatio: cfg.Poster.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			BodyLimit:   httpserver.DefaultBodyLimit,
			Debug:       cfg.App.Debug,
			Metrics:     cfg.Metrics.Enabled,
			MetricsPath: cfg.Metrics.Path,
		},
		svc,
		inliner,
		st,
		v,
		log.Logger,
	)

	// Start analytics reconciliation. Only the redis driver is shared between
	// instances, so every other driver locks in-process.
	var scheduler *job.ReconcileScheduler
	if cfg.Reconcile.Enabled {
		var distLocker locker.DistributedLocker = locker.NewLocalLocker()
		if redisClient != nil {
			distLocker = locker.NewRedisLocker(redisClient, cfg.Storage.Namespace, log.Logger)
		}

		scheduler = job.NewReconcileScheduler(
			svc.Catalog,
			job.ReconcileConfig{
				Interval:  cfg.Reconcile.Interval,
				Timeout:   cfg.Reconcile.Timeout,
				OnStartup: cfg.Reconcile.OnStartup,
			},
			log.Logger,
			distLocker,
		)
		scheduler.Start(cfg.Reconcile.OnStartup)
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		if scheduler != nil {
			scheduler.Stop()
		}

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}

		// Persist an in-flight autosave before the backend closes
		if err := svc.Drafts.Close(ctx); err != nil {
			log.Warn("draft flush on shutdown failed", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Addr()); err != nil {
		log.Fatal("server error", zap.Error(err))
	}

	// Listen returns as soon as shutdown begins; wait for the draft flush before closing the backend.
	<-shutdownDone
}

// openBackend builds the domain.KVStore selected by storage.driver. The redis
// client is returned for the distributed locker and is nil for other drivers.
func openBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (domain.KVStore, *redis.Client, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return store.NewMemoryKV(cfg.Storage.QuotaBytes), nil, func() {}, nil

	case config.DriverBadger:
		db, err := badger.Open(badger.Options{
			Path:          cfg.Badger.Path,
			InMemory:      cfg.Badger.InMemory,
			SyncWrites:    cfg.Badger.SyncWrites,
			MaxValueBytes: cfg.Storage.QuotaBytes,
		}, log)
		if err != nil {
			return nil, nil, nil, err
		}
		return db, nil, func() { _ = db.Close() }, nil

	case config.DriverRedis:
		client, err := rediskv.NewClient(ctx, rediskv.Config{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err != nil {
			return nil, nil, nil, err
		}
		return rediskv.NewStore(client, log, cfg.Storage.Namespace), client, func() { _ = client.Close() }, nil

	case config.DriverPostgres:
		db, err := postgres.NewConnection(
			postgres.Config{
				Host:         cfg.Database.Host,
				Port:         cfg.Database.Port,
				Name:         cfg.Database.Name,
				User:         cfg.Database.User,
				Password:     cfg.Database.Password,
				SSLMode:      cfg.Database.SSLMode,
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				MaxLifetime:  cfg.Database.MaxLifetime,
			},
			log,
		)
		if err != nil {
			return nil, nil, nil, err
		}

		if err := migrations.Run(db); err != nil {
			_ = postgres.Close(db)
			return nil, nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		log.Info("database migrations completed")

		return postgres.NewStore(db, cfg.Storage.Namespace), nil, func() { _ = postgres.Close(db) }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
