// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Interaction log metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meridian_db_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meridian_db_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	InteractionsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meridian_interactions_logged_total",
			Help: "Total number of interactions persisted",
		},
		[]string{"item_type", "action"},
	)

	InteractionsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meridian_interactions_deleted_total",
			Help: "Total number of interactions removed by retention cleanup",
		},
	)

	// Recommendation store metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meridian_store_operation_duration_seconds",
			Help:    "Duration of BadgerDB store operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"store", "operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meridian_store_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"store", "operation"},
	)

	StoreConflictRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meridian_store_conflict_retries_total",
			Help: "Total number of store transactions retried after a write conflict",
		},
		[]string{"store", "operation"},
	)

	StoreBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "meridian_store_breaker_state",
			Help: "Circuit breaker state per store (0 closed, 1 half-open, 2 open)",
		},
		[]string{"store"},
	)

	StatusFlagUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meridian_status_flag_updates_total",
			Help: "Total number of recommendation status flag updates",
		},
		[]string{"flag"},
	)

	// Learning engine metrics
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meridian_analyses_total",
			Help: "Total number of preference analyses by result",
		},
		[]string{"item_type", "result"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meridian_analysis_duration_seconds",
			Help:    "Duration of preference analyses in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"item_type"},
	)

	RerankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meridian_rerank_duration_seconds",
			Help:    "Duration of recommendation re-ranks in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RerankSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meridian_rerank_size",
			Help:    "Number of recommendations rewritten per re-rank",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	RetrainRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meridian_retrain_requests_total",
			Help: "Total number of model retrain requests",
		},
	)

	// Analysis task queue metrics
	AnalysisTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meridian_analysis_tasks_total",
			Help: "Total number of background analysis tasks by outcome",
		},
		[]string{"outcome"},
	)

	AnalysisTasksInflight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "meridian_analysis_tasks_inflight",
			Help: "Number of analysis tasks currently being processed",
		},
	)
)

// Analysis results.
const (
	ResultAnalyzed     = "analyzed"
	ResultInsufficient = "insufficient"
	ResultFailed       = "failed"
)

// Task outcomes.
const (
	TaskScheduled = "scheduled"
	TaskDropped   = "dropped"
	TaskCompleted = "completed"
	TaskFailed    = "failed"
	TaskRetried   = "retried"
	TaskPoisoned  = "poisoned"
)

// RecordDBQuery records a DuckDB query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordStoreOperation records a BadgerDB store operation.
func RecordStoreOperation(store, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(store, operation).Inc()
	}
}

// RecordAnalysis records a preference analysis.
func RecordAnalysis(itemType, result string, duration time.Duration) {
	AnalysesTotal.WithLabelValues(itemType, result).Inc()
	if result == ResultAnalyzed {
		AnalysisDuration.WithLabelValues(itemType).Observe(duration.Seconds())
	}
}

// RecordRerank records a re-rank and its size.
func RecordRerank(size int, duration time.Duration) {
	RerankDuration.Observe(duration.Seconds())
	RerankSize.Observe(float64(size))
}

// RecordTask records a background task outcome.
func RecordTask(outcome string) {
	AnalysisTasks.WithLabelValues(outcome).Inc()
}

// TrackInflightTask adjusts the in-flight task gauge.
func TrackInflightTask(inc bool) {
	if inc {
		AnalysisTasksInflight.Inc()
	} else {
		AnalysisTasksInflight.Dec()
	}
}
