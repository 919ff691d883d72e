// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package main is the entry point for the Meridian server.
//
// Meridian learns from user interactions with jobs, courses and candidates
// and re-ranks the stored recommendations of each user accordingly.
//
// # Startup Order
//
//  1. Configuration: defaults, config file, environment (Koanf v2)
//  2. Logging: zerolog, bridged to slog for the supervisor
//  3. DuckDB: interaction log and item catalog
//  4. BadgerDB: recommendations and preference snapshots
//  5. Analysis processor: Watermill router on an in-process pub/sub
//  6. Engine: learning and re-ranking, wired to the processor's scheduler
//  7. Supervisor tree: analysis worker, cleanup ticker, ops HTTP server
//
// # Configuration
//
// Layered sources, highest priority wins:
//   - Environment variables (LOG_LEVEL, DUCKDB_PATH, QUEUE_RETRY_COUNT, ...)
//   - Config file (CONFIG_PATH, ./config.yaml, /etc/meridian/config.yaml)
//   - Built-in defaults
//
// # Ops Endpoints
//
//	GET /healthz/live   process liveness
//	GET /healthz        database, store and analysis worker readiness
//	GET /metrics        Prometheus metrics
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The supervisor stops every
// service, then the processor, the store and the database are closed in
// reverse construction order.
package main
