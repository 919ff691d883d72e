// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/meridian/internal/recommend"
)

// InteractionCleaner deletes old interactions. *recommend.Engine implements it.
type InteractionCleaner interface {
	CleanupOldInteractions(ctx context.Context, days int) (*recommend.CleanupResult, error)
}

// CleanupServiceConfig holds configuration for the cleanup service.
type CleanupServiceConfig struct {
	// Interval between runs. Default: 24h
	Interval time.Duration

	// RetentionDays is passed to CleanupOldInteractions.
	RetentionDays int

	// RunOnStartup triggers a run when the service starts.
	RunOnStartup bool

	// Timeout bounds one run. Default: 10m
	Timeout time.Duration
}

// CleanupService periodically deletes interactions past the retention window.
type CleanupService struct {
	cleaner InteractionCleaner
	config  CleanupServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewCleanupService creates a cleanup service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCleanupService(cleaner InteractionCleaner, cfg CleanupServiceConfig, logger zerolog.Logger) *CleanupService {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &CleanupService{
		cleaner: cleaner,
		config:  cfg,
		logger:  logger.With().Str("service", "cleanup").Logger(),
		name:    "interaction-cleanup",
	}
}

// Serve implements suture.Service.
func (s *CleanupService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Int("retention_days", s.config.RetentionDays).
		Msg("cleanup service starting")

	if s.config.RunOnStartup {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

// run performs one cleanup. Failures are logged and retried next tick.
func (s *CleanupService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	result, err := s.cleaner.CleanupOldInteractions(runCtx, s.config.RetentionDays)
	if err != nil {
		s.logger.Warn().Err(err).Msg("interaction cleanup failed")
		return
	}
	s.logger.Debug().
		Int64("deleted", result.DeletedCount).
		Dur("duration", time.Since(start)).
		Msg("interaction cleanup complete")
}

func (s *CleanupService) String() string {
	return s.name
}
