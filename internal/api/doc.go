// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package api serves the operational HTTP surface using Chi.
//
// Routes:
//
//	GET /healthz/live   process is up
//	GET /healthz        runs every registered HealthCheck (200 or 503)
//	GET /metrics        Prometheus exposition
//
// All routes share an IP-based rate limit from go-chi/httprate. Every request
// gets an X-Request-ID that doubles as the logging correlation id.
package api
