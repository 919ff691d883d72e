// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	Store     StoreConfig     `koanf:"store"`
	Queue     QueueConfig     `koanf:"queue"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cleanup   CleanupConfig   `koanf:"cleanup"`
}

// ServerConfig holds the ops HTTP listener settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// ReadHeaderTimeout bounds request header reads.
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`

	// ShutdownTimeout bounds graceful shutdown of every service.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MetricsRateLimit is the allowed ops requests per minute per client IP.
	// Zero disables limiting.
	MetricsRateLimit int `koanf:"metrics_rate_limit"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console. Default: json
	Format string `koanf:"format"`

	// Caller includes file:line in every entry.
	Caller bool `koanf:"caller"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
}

// StoreConfig holds Badger recommendation store settings.
type StoreConfig struct {
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`

	// BreakerFailures is the consecutive failure count that opens the breaker.
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// QueueConfig holds the Watermill analysis queue settings.
type QueueConfig struct {
	Topic       string `koanf:"topic"`
	PoisonTopic string `koanf:"poison_topic"`
	BufferSize  int64  `koanf:"buffer_size"`

	// RatePerSecond limits analysis starts. 0 = unlimited.
	RatePerSecond float64 `koanf:"rate_per_second"`
	Burst         int     `koanf:"burst"`

	TaskTimeout  time.Duration `koanf:"task_timeout"`
	CloseTimeout time.Duration `koanf:"close_timeout"`

	RetryCount           int           `koanf:"retry_count"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	RetryMaxInterval     time.Duration `koanf:"retry_max_interval"`
	RetryMultiplier      float64       `koanf:"retry_multiplier"`

	ErrorBuffer int `koanf:"error_buffer"`
}

// RecommendConfig holds learning engine settings.
type RecommendConfig struct {
	MinInteractions   int           `koanf:"min_interactions"`
	AnalysisWindow    int           `koanf:"analysis_window"`
	RerankLimit       int           `koanf:"rerank_limit"`
	RecommendationTTL time.Duration `koanf:"recommendation_ttl"`
	TopSequences      int           `koanf:"top_sequences"`

	// Timezone is the IANA zone for time-of-day buckets.
	Timezone string `koanf:"timezone"`

	Weights WeightsConfig `koanf:"weights"`
	Adjust  AdjustConfig  `koanf:"adjust"`

	QueryDefaultLimit int `koanf:"query_default_limit"`
	QueryMaxLimit     int `koanf:"query_max_limit"`

	// CleanupMaxDays is the largest accepted retention window.
	CleanupMaxDays int `koanf:"cleanup_max_days"`
}

// WeightsConfig is the signed weight per action.
type WeightsConfig struct {
	Apply  float64 `koanf:"apply"`
	Like   float64 `koanf:"like"`
	Save   float64 `koanf:"save"`
	View   float64 `koanf:"view"`
	Ignore float64 `koanf:"ignore"`
}

// AdjustConfig holds the score adjustment factors and caps.
type AdjustConfig struct {
	WeightFactor       float64 `koanf:"weight_factor"`
	WeightCap          float64 `koanf:"weight_cap"`
	AboveAverageFactor float64 `koanf:"above_average_factor"`
	AboveAverageCap    float64 `koanf:"above_average_cap"`
}

// CleanupConfig holds interaction retention settings.
type CleanupConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Interval      time.Duration `koanf:"interval"`
	RetentionDays int           `koanf:"retention_days"`
}

// Addr returns the ops listener address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
