// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/meridian/internal/logging"
)

// HealthCheck checks one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthStatus is the /healthz response body.
type HealthStatus struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Version   string            `json:"version,omitempty"`
	Uptime    float64           `json:"uptime_seconds"`
	Timestamp time.Time         `json:"timestamp"`
}

type healthHandler struct {
	checks  []HealthCheck
	timeout time.Duration
	version string
	started time.Time
	logger  zerolog.Logger
}

func (h *healthHandler) live(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, http.StatusOK, &HealthStatus{
		Status:    "ok",
		Version:   h.version,
		Uptime:    time.Since(h.started).Seconds(),
		Timestamp: time.Now().UTC(),
	})
}

func (h *healthHandler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := &HealthStatus{
		Status:    "healthy",
		Checks:    make(map[string]string, len(h.checks)),
		Version:   h.version,
		Uptime:    time.Since(h.started).Seconds(),
		Timestamp: time.Now().UTC(),
	}
	code := http.StatusOK
	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("check", c.Name).Msg("health check failed")
			status.Checks[c.Name] = err.Error()
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[c.Name] = "ok"
	}
	h.respond(w, code, status)
}

func (h *healthHandler) respond(w http.ResponseWriter, code int, body *HealthStatus) {
	data, err := json.Marshal(body)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal health response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		h.logger.Debug().Err(err).Msg("failed to write health response")
	}
}
