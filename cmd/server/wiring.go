// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package main

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/tomtom215/meridian/internal/api"
	"github.com/tomtom215/meridian/internal/config"
	"github.com/tomtom215/meridian/internal/database"
	"github.com/tomtom215/meridian/internal/eventprocessor"
	"github.com/tomtom215/meridian/internal/logging"
	"github.com/tomtom215/meridian/internal/models"
	"github.com/tomtom215/meridian/internal/recommend"
	"github.com/tomtom215/meridian/internal/recommend/patterns"
	"github.com/tomtom215/meridian/internal/recommend/reranking"
	"github.com/tomtom215/meridian/internal/recommend/storage"
	"github.com/tomtom215/meridian/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	errEngineNotBound  = errors.New("recommendation engine not bound")
	errAnalysisStopped = errors.New("analysis worker not accepting tasks")
)

// lateUpdater lets the processor be built before the engine that consumes
// its scheduler. Tasks arriving before bind fail and are retried.
type lateUpdater struct {
	engine atomic.Pointer[recommend.Engine]
}

func (u *lateUpdater) bind(e *recommend.Engine) {
	u.engine.Store(e)
}

func (u *lateUpdater) UpdateRecommendations(ctx context.Context, userID string, itemType models.ItemType) (*recommend.UpdateResult, error) {
	e := u.engine.Load()
	if e == nil {
		return nil, errEngineNotBound
	}
	return e.UpdateRecommendations(ctx, userID, itemType)
}

func loggingConfig(cfg *config.LoggingConfig) logging.Config {
	return logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		Caller:    cfg.Caller,
		Timestamp: true,
	}
}

func storeConfig(cfg *config.StoreConfig) storage.Config {
	out := storage.DefaultConfig(cfg.Path)
	out.InMemory = cfg.InMemory
	out.SyncWrites = cfg.SyncWrites
	if cfg.BreakerFailures > 0 {
		out.BreakerFailures = cfg.BreakerFailures
	}
	if cfg.BreakerTimeout > 0 {
		out.BreakerTimeout = cfg.BreakerTimeout
	}
	return out
}

func queueConfig(cfg *config.QueueConfig) eventprocessor.Config {
	return eventprocessor.Config{
		Topic:                cfg.Topic,
		PoisonTopic:          cfg.PoisonTopic,
		BufferSize:           cfg.BufferSize,
		RatePerSecond:        cfg.RatePerSecond,
		Burst:                cfg.Burst,
		TaskTimeout:          cfg.TaskTimeout,
		CloseTimeout:         cfg.CloseTimeout,
		RetryMaxRetries:      cfg.RetryCount,
		RetryInitialInterval: cfg.RetryInitialInterval,
		RetryMaxInterval:     cfg.RetryMaxInterval,
		RetryMultiplier:      cfg.RetryMultiplier,
		ErrorBuffer:          cfg.ErrorBuffer,
	}
}

func engineConfig(cfg *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		MinInteractionCount: cfg.MinInteractions,
		AnalysisWindow:      cfg.AnalysisWindow,
		RerankLimit:         cfg.RerankLimit,
		RecommendationTTL:   cfg.RecommendationTTL,
		Weights: patterns.ActionWeights{
			Apply:  cfg.Weights.Apply,
			Like:   cfg.Weights.Like,
			Save:   cfg.Weights.Save,
			View:   cfg.Weights.View,
			Ignore: cfg.Weights.Ignore,
		},
		TopSequences: cfg.TopSequences,
		Timezone:     cfg.Timezone,
		Adjust: reranking.AdjustConfig{
			WeightFactor:       cfg.Adjust.WeightFactor,
			WeightCap:          cfg.Adjust.WeightCap,
			AboveAverageFactor: cfg.Adjust.AboveAverageFactor,
			AboveAverageCap:    cfg.Adjust.AboveAverageCap,
		},
		Query: recommend.QueryConfig{
			DefaultLimit: cfg.QueryDefaultLimit,
			MaxLimit:     cfg.QueryMaxLimit,
		},
		CleanupMaxDays: cfg.CleanupMaxDays,
	}
}

func cleanupConfig(cfg *config.CleanupConfig) services.CleanupServiceConfig {
	return services.CleanupServiceConfig{
		Interval:      cfg.Interval,
		RetentionDays: cfg.RetentionDays,
	}
}

func routerConfig(cfg *config.ServerConfig) api.RouterConfig {
	return api.RouterConfig{
		RateLimitRequests: cfg.MetricsRateLimit,
		RateLimitWindow:   time.Minute,
		Version:           version,
	}
}

// itemDirectory registers the catalog lookup of every item type.
func itemDirectory(catalog *database.ItemCatalog) *recommend.ItemDirectory {
	dir := recommend.NewItemDirectory()
	for _, t := range models.ItemTypes {
		dir.Register(t, catalog.Lookup(t))
	}
	return dir
}

// pinger is satisfied by the Badger store.
type pinger interface {
	Ping() error
}

// runner is satisfied by the analysis processor.
type runner interface {
	IsRunning() bool
}

func healthChecks(db *database.DB, store pinger, worker runner) []api.HealthCheck {
	return []api.HealthCheck{
		{Name: "duckdb", Check: db.Ping},
		{Name: "badger", Check: func(context.Context) error { return store.Ping() }},
		{Name: "analysis", Check: func(context.Context) error {
			if !worker.IsRunning() {
				return errAnalysisStopped
			}
			return nil
		}},
	}
}
