package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"path-sweep/internal/config"
	"path-sweep/internal/database"
	"path-sweep/internal/exitcodes"
	"path-sweep/internal/logging"
	"path-sweep/internal/metrics"
	"path-sweep/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "/etc/path-sweep/config.yaml", "Path to configuration file")
	daemon := flag.Bool("daemon", false, "Keep running and sweep at the configured interval")
	flag.Parse()

	// Load configuration first so the logger can pick up rotation settings
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New().Printf("ERROR: Failed to load config: %v", err)
		os.Exit(exitcodes.InvalidConfig)
	}

	logger := logging.NewWithConfig(cfg)
	logger.Printf("Config file: %s", *configPath)
	logger.Printf("Targets: %d files, directory=%q", len(cfg.Targets), cfg.Directory)

	// Initialize metrics (Prometheus)
	metrics.Init()

	// Open sweep history database
	var db *database.SweepDB
	if cfg.DatabasePath != "" {
		logger.Printf("Opening sweep database: %s", cfg.DatabasePath)
		db, err = database.NewSweepDB(cfg.DatabasePath)
		if err != nil {
			logger.Printf("ERROR: Failed to open database: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Printf("ERROR: Failed to close database: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if *daemon {
		// Metrics exposition and on-demand trigger only make sense for
		// a long-lived process
		if cfg.Prometheus.Port > 0 {
			addr := cfg.PrometheusAddress()
			logger.Printf("Starting Prometheus metrics on %s", addr)
			metrics.StartServer(addr, logger)
		}

		trigger := make(chan os.Signal, 1)
		metrics.SetTriggerChannel(trigger)
		signal.Notify(trigger, syscall.SIGUSR1)

		logger.Println("Starting sweep scheduler...")
		err = scheduler.Run(ctx, cfg, logger, db, os.Stdout, trigger)
		if err != nil && err != context.Canceled {
			logger.Printf("ERROR: Scheduler failed: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
	} else {
		if err := scheduler.RunOnce(ctx, cfg, logger, db, os.Stdout); err != nil {
			logger.Printf("ERROR: Sweep failed: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
	}

	logger.Println("path-sweep stopped")
}
