// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterConfig configures the ops router.
type RouterConfig struct {
	// RateLimitRequests per RateLimitWindow per client IP. 0 disables limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// CheckTimeout bounds all health checks of one request. Default: 5s
	CheckTimeout time.Duration

	Version string
}

// NewRouter builds the ops handler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(cfg RouterConfig, checks []HealthCheck, logger zerolog.Logger) http.Handler {
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = time.Minute
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = 5 * time.Second
	}
	logger = logger.With().Str("component", "api").Logger()

	health := &healthHandler{
		checks:  checks,
		timeout: cfg.CheckTimeout,
		version: cfg.Version,
		started: time.Now(),
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDWithLogging)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(accessLog(logger))
	r.Use(rateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

	r.Get("/healthz/live", health.live)
	r.Get("/healthz", health.ready)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
