// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

/*
Package metrics exposes Prometheus instrumentation for Meridian.

All collectors are package-level variables registered with the default
registry through promauto, so importing the package is enough to expose them
at /metrics.

Metric Families:

Interaction log (DuckDB):
  - meridian_db_query_duration_seconds{operation, table}
  - meridian_db_query_errors_total{operation, table}
  - meridian_interactions_logged_total{item_type, action}
  - meridian_interactions_deleted_total

Recommendation store (BadgerDB):
  - meridian_store_operation_duration_seconds{store, operation}
  - meridian_store_errors_total{store, operation}
  - meridian_store_breaker_state{store} (0 closed, 1 half-open, 2 open)
  - meridian_status_flag_updates_total{flag}

Learning engine:
  - meridian_analyses_total{item_type, result} with result analyzed|insufficient|failed
  - meridian_analysis_duration_seconds{item_type}
  - meridian_rerank_duration_seconds
  - meridian_rerank_size
  - meridian_retrain_requests_total

Analysis task queue (Watermill):
  - meridian_analysis_tasks_total{outcome} with outcome scheduled|dropped|completed|failed
  - meridian_analysis_tasks_inflight

Helper functions (RecordDBQuery, RecordStoreOperation, RecordAnalysis,
RecordTask) keep label values consistent across packages.

Example:

	start := time.Now()
	rows, err := db.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "interactions", time.Since(start), err)
*/
package metrics
