// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/tomtom215/meridian/internal/api"
	"github.com/tomtom215/meridian/internal/config"
	"github.com/tomtom215/meridian/internal/database"
	"github.com/tomtom215/meridian/internal/eventprocessor"
	"github.com/tomtom215/meridian/internal/logging"
	"github.com/tomtom215/meridian/internal/recommend"
	"github.com/tomtom215/meridian/internal/recommend/storage"
	"github.com/tomtom215/meridian/internal/supervisor"
	"github.com/tomtom215/meridian/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Meridian exited with error")
	}
}

//nolint:gocyclo // sequential startup steps
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(loggingConfig(&cfg.Logging))
	logger := logging.Logger()
	serverLog := logging.WithComponent("server")

	serverLog.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("store_path", cfg.Store.Path).
		Bool("store_in_memory", cfg.Store.InMemory).
		Msg("Starting Meridian with supervisor tree")

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			serverLog.Error().Err(err).Msg("Error closing database")
		}
	}()
	serverLog.Info().Msg("Database initialized successfully")

	store, err := storage.Open(storeConfig(&cfg.Store), logger)
	if err != nil {
		return fmt.Errorf("open recommendation store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			serverLog.Error().Err(err).Msg("Error closing recommendation store")
		}
	}()

	updater := &lateUpdater{}
	processor, err := eventprocessor.New(queueConfig(&cfg.Queue), updater, logger)
	if err != nil {
		return fmt.Errorf("create analysis processor: %w", err)
	}
	defer func() {
		if err := processor.Close(); err != nil {
			serverLog.Error().Err(err).Msg("Error closing analysis processor")
		}
	}()

	items := itemDirectory(db.Items())
	serverLog.Info().Interface("item_types", items.Types()).Msg("Item catalog lookups registered")

	engine, err := recommend.NewEngine(engineConfig(&cfg.Recommend), recommend.Dependencies{
		Interactions:    db,
		Recommendations: store,
		Preferences:     store,
		Scheduler:       processor.Scheduler(),
		Items:           items,
	}, logger)
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}
	updater.bind(engine)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddWorkerService(services.NewAnalysisService(processor, logger))

	if cfg.Cleanup.Enabled {
		tree.AddMaintenanceService(services.NewCleanupService(engine, cleanupConfig(&cfg.Cleanup), logger))
		serverLog.Info().
			Dur("interval", cfg.Cleanup.Interval).
			Int("retention_days", cfg.Cleanup.RetentionDays).
			Msg("Interaction cleanup enabled")
	}

	handler := api.NewRouter(routerConfig(&cfg.Server), healthChecks(db, store, processor), logger)
	server := services.NewOpsServer(cfg.Server.Addr(), handler, cfg.Server.ReadHeaderTimeout)
	tree.AddOpsService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	serverLog.Info().Str("addr", cfg.Server.Addr()).Msg("Ops server added to supervisor tree")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverLog.Info().Msg("Supervisor tree starting")
	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		serverLog.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			serverLog.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}

	serverLog.Info().Msg("Meridian stopped")
	return nil
}
