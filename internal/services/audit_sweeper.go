package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tasklane/backend/internal/infrastructure/audit"
)

// SweeperConfig controls audit trail retention.
type SweeperConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// AuditSweeper periodically trims audit events past the retention window.
// It is pure housekeeping and never touches caller-visible state.
type AuditSweeper struct {
	store  *audit.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    SweeperConfig
}

func NewAuditSweeper(store *audit.Store, logger *zap.Logger, cfg SweeperConfig) *AuditSweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sweeper := &AuditSweeper{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = sweeper.cron.AddFunc(schedule, func() {
		if err := sweeper.Sweep(); err != nil {
			sweeper.logger.Error("audit sweep failed", zap.Error(err))
		}
	})

	return sweeper
}

// Start launches the cron scheduler.
func (s *AuditSweeper) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("audit sweeper started",
		zap.Duration("interval", s.cfg.Interval),
		zap.Duration("retention", s.cfg.Retention))
}

// Stop gracefully stops the scheduler, waiting for an in-flight sweep.
func (s *AuditSweeper) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("audit sweeper stopped")
}

// Sweep removes events older than the retention window.
func (s *AuditSweeper) Sweep() error {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Cleanup(time.Now().Add(-s.cfg.Retention))
}
