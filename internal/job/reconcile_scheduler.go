// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"movie-catalog-service/pkg/locker"
)

// ReconcileLockKey guards the analytics reconciliation across processes.
const ReconcileLockKey = "reconcile:analytics:lock"

// Reconciler recomputes derived analytics from the catalog.
// Implementations: service.CatalogService
type Reconciler interface {
	ReconcileAnalytics(ctx context.Context) (bool, error)
}

// ReconcileConfig holds reconcile scheduler configuration.
type ReconcileConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// ReconcileScheduler periodically corrects analytics drift, holding a lock so
// only one process does it per interval.
type ReconcileScheduler struct {
	reconciler Reconciler
	interval   time.Duration
	timeout    time.Duration
	logger     *zap.Logger
	locker     locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReconcileScheduler creates a new ReconcileScheduler.
func NewReconcileScheduler(
	reconciler Reconciler,
	cfg ReconcileConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *ReconcileScheduler {
	return &ReconcileScheduler{
		reconciler: reconciler,
		interval:   cfg.Interval,
		timeout:    cfg.Timeout,
		logger:     logger,
		locker:     locker,
	}
}

// Start begins the background job.
func (s *ReconcileScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting reconcile scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *ReconcileScheduler) Stop() {
	s.logger.Info("stopping reconcile scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("reconcile scheduler stopped")
}

// run is the main loop of the scheduler.
func (s *ReconcileScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.execute()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute()
		}
	}
}

// execute runs one reconciliation under the lock.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: lock held for the full interval so other processes skip this round
//   - Failure: lock released immediately so the next tick anywhere can retry
func (s *ReconcileScheduler) execute() {
	acquired, err := s.locker.Acquire(s.ctx, ReconcileLockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire reconcile lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("reconcile already ran this interval, skipping")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	corrected, err := s.reconciler.ReconcileAnalytics(ctx)
	if err != nil {
		if err := s.locker.Release(s.ctx, ReconcileLockKey); err != nil {
			s.logger.Error("failed to release lock after reconcile error", zap.Error(err))
		}
		s.logger.Warn("analytics reconcile failed, lock released for retry", zap.Error(err))

		return
	}

	s.logger.Info("analytics reconcile completed",
		zap.Bool("corrected", corrected),
		zap.Duration("cooldown", s.interval),
	)
}
