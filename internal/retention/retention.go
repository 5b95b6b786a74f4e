// Package retention runs the scheduled status-expiry sweep. Statuses are
// already hidden from listings once they pass their lifetime; the sweep
// reclaims the storage.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"familyconnect/pkg/config"
	"familyconnect/pkg/logger"
	"familyconnect/pkg/status"
)

// Start starts the retention scheduler if enabled. It returns a cancel
// func; callers cancel it during shutdown.
func Start(ctx context.Context, cfg config.RetentionConfig, statuses *status.Store) (context.CancelFunc, error) {
	if !cfg.Enabled {
		logger.Info("retention_disabled")
		return func() {}, nil
	}

	cronExpr := cfg.Cron
	if cronExpr == "" {
		cronExpr = "*/15 * * * *"
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("retention_invalid_cron", "cron", cfg.Cron)
		return nil, fmt.Errorf("invalid retention cron expression: %s", cfg.Cron)
	}

	logger.Info("retention_enabled", "cron", cronExpr, "batch", cfg.BatchSize, "dry_run", cfg.DryRun)
	ctx2, cancel := context.WithCancel(ctx)
	go runScheduler(ctx2, cfg, statuses, cronExpr)
	return cancel, nil
}

// runScheduler computes the next tick for the cron expression with gronx
// and sleeps until it is due.
func runScheduler(ctx context.Context, cfg config.RetentionConfig, statuses *status.Store, cronExpr string) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("retention_scheduler_stopping")
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("retention_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case <-time.After(time.Until(next)):
		case <-ctx.Done():
			logger.Info("retention_scheduler_stopping")
			return
		}

		RunOnce(cfg, statuses)
	}
}

// RunOnce performs a single sweep. Exposed so tests and admin triggers can
// invoke the purge on demand.
func RunOnce(cfg config.RetentionConfig, statuses *status.Store) int {
	n := statuses.PurgeExpired(cfg.BatchSize, cfg.DryRun)
	if n > 0 {
		logger.Info("retention_run_complete", "purged", n, "dry_run", cfg.DryRun)
	}
	return n
}
