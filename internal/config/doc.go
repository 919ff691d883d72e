// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

/*
Package config loads Meridian configuration.

Configuration is layered with Koanf, each layer overriding the previous one:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/meridian/config.yaml, /etc/meridian/config.yml
 3. Environment variables, mapped explicitly by envTransformFunc

Unmapped environment variables are ignored.

# Sections

  - server: ops HTTP listener (/metrics, /healthz) and shutdown timing
  - logging: zerolog level, format and caller
  - database: DuckDB interaction log and item catalog
  - store: Badger recommendation and profile store with its circuit breaker
  - queue: Watermill analysis task queue
  - recommend: learning engine limits, action weights and score adjustment
  - cleanup: periodic deletion of old interactions

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT: ops listener (default: 0.0.0.0:9464)
  - SHUTDOWN_TIMEOUT: graceful shutdown budget (default: 30s)
  - METRICS_RATE_LIMIT: ops requests per minute per client (default: 120)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Database:
  - DUCKDB_PATH (default: /data/meridian.duckdb)
  - DUCKDB_MAX_MEMORY (default: 1GB)
  - DUCKDB_THREADS (default: 0, all CPUs)

Store:
  - STORE_PATH (default: /data/recommendations)
  - STORE_IN_MEMORY, STORE_SYNC_WRITES
  - STORE_BREAKER_FAILURES, STORE_BREAKER_TIMEOUT

Queue:
  - QUEUE_TOPIC, QUEUE_BUFFER_SIZE, QUEUE_RATE_PER_SECOND, QUEUE_BURST
  - QUEUE_TASK_TIMEOUT, QUEUE_RETRY_COUNT, QUEUE_RETRY_INTERVAL

Recommend:
  - RECOMMEND_MIN_INTERACTIONS, RECOMMEND_ANALYSIS_WINDOW, RECOMMEND_RERANK_LIMIT
  - RECOMMEND_TTL, RECOMMEND_TIMEZONE
  - RECOMMEND_WEIGHT_APPLY, _LIKE, _SAVE, _VIEW, _IGNORE

Cleanup:
  - CLEANUP_ENABLED, CLEANUP_INTERVAL, CLEANUP_RETENTION_DAYS

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("failed to load configuration")
	}
*/
package config
