package scheduler

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"time"

	"path-sweep/internal/config"
	"path-sweep/internal/database"
	"path-sweep/internal/metrics"
	"path-sweep/internal/safety"
	"path-sweep/internal/sweep"
)

// RunOnce performs a single sweep cycle, writing outcome lines to out
func RunOnce(ctx context.Context, cfg *config.Config, logger *log.Logger, db *database.SweepDB, out io.Writer) error {
	if logger == nil {
		logger = log.Default()
	}
	if cfg == nil {
		return errors.New("nil config")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	start := time.Now()
	metrics.RecordSweepRun()

	runner := sweep.NewRunner(out, logger, db)
	runner.SetValidator(safety.NewValidator(cfg.Safety.AllowedRoots, cfg.Safety.ProtectedPaths))

	results := runner.Run(sweep.Targets{
		Files:     cfg.Targets,
		Directory: cfg.Directory,
	})

	removed, missing, failed := 0, 0, 0
	for _, res := range results {
		switch res.Outcome {
		case sweep.OutcomeRemoved:
			removed++
		case sweep.OutcomeNotFound:
			missing++
		case sweep.OutcomeFailed:
			failed++
		}
	}

	elapsed := time.Since(start).Seconds()
	metrics.SweepDuration.Observe(elapsed)

	logger.Printf("cycle complete: targets=%d removed=%d missing=%d failed=%d duration=%.3fs",
		len(results), removed, missing, failed, elapsed)
	return nil
}

// Run performs an immediate sweep and then repeats at the configured
// interval until ctx is cancelled. A nudge on trigger forces an
// immediate cycle (wired to the metrics server's /trigger endpoint).
func Run(ctx context.Context, cfg *config.Config, logger *log.Logger, db *database.SweepDB, out io.Writer, trigger chan os.Signal) error {
	if logger == nil {
		logger = log.Default()
	}
	if cfg == nil {
		return errors.New("nil config")
	}

	if err := RunOnce(ctx, cfg, logger, db, out); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := RunOnce(ctx, cfg, logger, db, out); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				logger.Printf("sweep cycle failed: %v", err)
			}
		case sig := <-trigger:
			logger.Printf("sweep triggered by %v", sig)
			if err := RunOnce(ctx, cfg, logger, db, out); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				logger.Printf("triggered sweep failed: %v", err)
			}
		}
	}
}
