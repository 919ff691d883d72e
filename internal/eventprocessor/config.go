// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package eventprocessor

import (
	"fmt"
	"time"
)

// Config controls the analysis task queue.
type Config struct {
	// Topic carries AnalysisTask messages.
	Topic string

	// PoisonTopic receives tasks that exhausted their retries.
	// Default: Topic + ".poison"
	PoisonTopic string

	// BufferSize is the per-subscriber output buffer of the pub/sub.
	BufferSize int64

	// RatePerSecond limits analysis starts. Zero means unlimited.
	RatePerSecond float64

	// Burst is the limiter bucket size. Ignored when RatePerSecond is zero.
	Burst int

	// TaskTimeout bounds a single UpdateRecommendations call.
	TaskTimeout time.Duration

	// CloseTimeout is how long Close waits for in-flight tasks.
	CloseTimeout time.Duration

	// Retry configuration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64

	// ErrorBuffer is the capacity of the Errors channel.
	ErrorBuffer int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Topic:                "analysis.tasks",
		PoisonTopic:          "analysis.tasks.poison",
		BufferSize:           256,
		RatePerSecond:        20,
		Burst:                5,
		TaskTimeout:          30 * time.Second,
		CloseTimeout:         30 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 500 * time.Millisecond,
		RetryMaxInterval:     10 * time.Second,
		RetryMultiplier:      2.0,
		ErrorBuffer:          64,
	}
}

// Validate checks the configuration and fills derived defaults.
func (c *Config) Validate() error {
	if c.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	}
	if c.PoisonTopic == "" {
		c.PoisonTopic = c.Topic + ".poison"
	}
	if c.PoisonTopic == c.Topic {
		return fmt.Errorf("%w: poison topic must differ from topic", ErrInvalidConfig)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("%w: buffer size must be non-negative", ErrInvalidConfig)
	}
	if c.RatePerSecond < 0 {
		return fmt.Errorf("%w: rate must be non-negative", ErrInvalidConfig)
	}
	if c.RatePerSecond > 0 && c.Burst < 1 {
		return fmt.Errorf("%w: burst must be at least 1 when rate limiting", ErrInvalidConfig)
	}
	if c.TaskTimeout <= 0 {
		return fmt.Errorf("%w: task timeout must be positive", ErrInvalidConfig)
	}
	if c.RetryMaxRetries < 0 {
		return fmt.Errorf("%w: retry max retries must be non-negative", ErrInvalidConfig)
	}
	if c.RetryMaxRetries > 0 && c.RetryMultiplier < 1 {
		return fmt.Errorf("%w: retry multiplier must be at least 1", ErrInvalidConfig)
	}
	if c.ErrorBuffer < 0 {
		return fmt.Errorf("%w: error buffer must be non-negative", ErrInvalidConfig)
	}
	return nil
}
