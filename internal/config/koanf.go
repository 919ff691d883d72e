// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/meridian/config.yaml",
	"/etc/meridian/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              9464,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   30 * time.Second,
			MetricsRateLimit:  120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			Path:      "/data/meridian.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Store: StoreConfig{
			Path:            "/data/recommendations",
			InMemory:        false,
			SyncWrites:      true,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Queue: QueueConfig{
			Topic:                "analysis.tasks",
			PoisonTopic:          "analysis.tasks.poison",
			BufferSize:           256,
			RatePerSecond:        20,
			Burst:                5,
			TaskTimeout:          30 * time.Second,
			CloseTimeout:         30 * time.Second,
			RetryCount:           3,
			RetryInitialInterval: 500 * time.Millisecond,
			RetryMaxInterval:     10 * time.Second,
			RetryMultiplier:      2.0,
			ErrorBuffer:          64,
		},
		Recommend: RecommendConfig{
			MinInteractions:   5,
			AnalysisWindow:    100,
			RerankLimit:       50,
			RecommendationTTL: 7 * 24 * time.Hour,
			TopSequences:      5,
			Timezone:          "UTC",
			Weights: WeightsConfig{
				Apply:  2.0,
				Like:   1.5,
				Save:   1.2,
				View:   0.5,
				Ignore: -1.0,
			},
			Adjust: AdjustConfig{
				WeightFactor:       0.1,
				WeightCap:          20,
				AboveAverageFactor: 0.2,
				AboveAverageCap:    10,
			},
			QueryDefaultLimit: 50,
			QueryMaxLimit:     500,
			CleanupMaxDays:    3650,
		},
		Cleanup: CleanupConfig{
			Enabled:       true,
			Interval:      24 * time.Hour,
			RetentionDays: 365,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing priority, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var envMappings = map[string]string{
	// Server
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_header_timeout": "server.read_header_timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"metrics_rate_limit":  "server.metrics_rate_limit",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Store
	"store_path":             "store.path",
	"store_in_memory":        "store.in_memory",
	"store_sync_writes":      "store.sync_writes",
	"store_breaker_failures": "store.breaker_failures",
	"store_breaker_timeout":  "store.breaker_timeout",

	// Queue
	"queue_topic":           "queue.topic",
	"queue_poison_topic":    "queue.poison_topic",
	"queue_buffer_size":     "queue.buffer_size",
	"queue_rate_per_second": "queue.rate_per_second",
	"queue_burst":           "queue.burst",
	"queue_task_timeout":    "queue.task_timeout",
	"queue_close_timeout":   "queue.close_timeout",
	"queue_retry_count":     "queue.retry_count",
	"queue_retry_interval":  "queue.retry_initial_interval",
	"queue_retry_max":       "queue.retry_max_interval",
	"queue_error_buffer":    "queue.error_buffer",

	// Recommend
	"recommend_min_interactions": "recommend.min_interactions",
	"recommend_analysis_window":  "recommend.analysis_window",
	"recommend_rerank_limit":     "recommend.rerank_limit",
	"recommend_ttl":              "recommend.recommendation_ttl",
	"recommend_top_sequences":    "recommend.top_sequences",
	"recommend_timezone":         "recommend.timezone",
	"recommend_weight_apply":     "recommend.weights.apply",
	"recommend_weight_like":      "recommend.weights.like",
	"recommend_weight_save":      "recommend.weights.save",
	"recommend_weight_view":      "recommend.weights.view",
	"recommend_weight_ignore":    "recommend.weights.ignore",
	"recommend_query_limit":      "recommend.query_default_limit",
	"recommend_query_max_limit":  "recommend.query_max_limit",

	// Cleanup
	"cleanup_enabled":        "cleanup.enabled",
	"cleanup_interval":       "cleanup.interval",
	"cleanup_retention_days": "cleanup.retention_days",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped.
//
// Examples:
//   - LOG_LEVEL -> logging.level
//   - DUCKDB_PATH -> database.path
//   - RECOMMEND_MIN_INTERACTIONS -> recommend.min_interactions
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
