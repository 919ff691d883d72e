// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate checks every section and returns all problems found.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateServer(),
		c.validateLogging(),
		c.validateDatabase(),
		c.validateStore(),
		c.validateQueue(),
		c.validateRecommend(),
		c.validateCleanup(),
	)
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.MetricsRateLimit < 0 {
		return fmt.Errorf("METRICS_RATE_LIMIT must be non-negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY is set")
	}
	if c.Store.BreakerFailures == 0 {
		return fmt.Errorf("STORE_BREAKER_FAILURES must be at least 1")
	}
	if c.Store.BreakerTimeout <= 0 {
		return fmt.Errorf("STORE_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateQueue() error {
	q := c.Queue
	if q.Topic == "" {
		return fmt.Errorf("QUEUE_TOPIC is required")
	}
	if q.PoisonTopic == q.Topic {
		return fmt.Errorf("QUEUE_POISON_TOPIC must differ from QUEUE_TOPIC")
	}
	if q.BufferSize < 0 || q.ErrorBuffer < 0 {
		return fmt.Errorf("queue buffer sizes must be non-negative")
	}
	if q.RatePerSecond < 0 {
		return fmt.Errorf("QUEUE_RATE_PER_SECOND must be non-negative")
	}
	if q.RatePerSecond > 0 && q.Burst < 1 {
		return fmt.Errorf("QUEUE_BURST must be at least 1 when rate limiting")
	}
	if q.TaskTimeout <= 0 {
		return fmt.Errorf("QUEUE_TASK_TIMEOUT must be positive")
	}
	if q.RetryCount < 0 {
		return fmt.Errorf("QUEUE_RETRY_COUNT must be non-negative")
	}
	if q.RetryCount > 0 && q.RetryMultiplier < 1 {
		return fmt.Errorf("queue.retry_multiplier must be at least 1")
	}
	return nil
}

//nolint:gocyclo // validation needs to check many fields
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MinInteractions < 1 {
		return fmt.Errorf("RECOMMEND_MIN_INTERACTIONS must be positive, got %d", r.MinInteractions)
	}
	if r.AnalysisWindow < r.MinInteractions {
		return fmt.Errorf("RECOMMEND_ANALYSIS_WINDOW must be >= RECOMMEND_MIN_INTERACTIONS")
	}
	if r.RerankLimit < 1 {
		return fmt.Errorf("RECOMMEND_RERANK_LIMIT must be positive")
	}
	if r.RecommendationTTL <= 0 {
		return fmt.Errorf("RECOMMEND_TTL must be positive")
	}
	if r.TopSequences < 1 {
		return fmt.Errorf("RECOMMEND_TOP_SEQUENCES must be positive")
	}
	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return fmt.Errorf("RECOMMEND_TIMEZONE %q: %w", r.Timezone, err)
	}
	if r.Weights.Apply < 0 || r.Weights.Like < 0 || r.Weights.Save < 0 || r.Weights.View < 0 {
		return fmt.Errorf("positive action weights must be non-negative")
	}
	if r.Weights.Ignore > 0 {
		return fmt.Errorf("RECOMMEND_WEIGHT_IGNORE must not be positive")
	}
	if r.QueryDefaultLimit < 1 || r.QueryMaxLimit < r.QueryDefaultLimit {
		return fmt.Errorf("recommend query limits must satisfy 1 <= default <= max")
	}
	if r.CleanupMaxDays < 1 {
		return fmt.Errorf("recommend.cleanup_max_days must be positive")
	}
	return nil
}

func (c *Config) validateCleanup() error {
	if !c.Cleanup.Enabled {
		return nil
	}
	if c.Cleanup.Interval <= 0 {
		return fmt.Errorf("CLEANUP_INTERVAL must be positive")
	}
	if c.Cleanup.RetentionDays < 1 || c.Cleanup.RetentionDays > c.Recommend.CleanupMaxDays {
		return fmt.Errorf("CLEANUP_RETENTION_DAYS must be between 1 and %d", c.Recommend.CleanupMaxDays)
	}
	return nil
}
