// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package config

import "testing"

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"no database path", func(c *Config) { c.Database.Path = "" }, true},
		{"no store path", func(c *Config) { c.Store.Path = "" }, true},
		{"in-memory store without path", func(c *Config) { c.Store.Path = ""; c.Store.InMemory = true }, false},
		{"zero breaker failures", func(c *Config) { c.Store.BreakerFailures = 0 }, true},
		{"poison equals topic", func(c *Config) { c.Queue.PoisonTopic = c.Queue.Topic }, true},
		{"rate without burst", func(c *Config) { c.Queue.Burst = 0 }, true},
		{"window below minimum", func(c *Config) { c.Recommend.AnalysisWindow = 3 }, true},
		{"unknown timezone", func(c *Config) { c.Recommend.Timezone = "Mars/Olympus" }, true},
		{"negative apply weight", func(c *Config) { c.Recommend.Weights.Apply = -1 }, true},
		{"positive ignore weight", func(c *Config) { c.Recommend.Weights.Ignore = 1 }, true},
		{"max below default limit", func(c *Config) { c.Recommend.QueryMaxLimit = 10 }, true},
		{"retention beyond max", func(c *Config) { c.Cleanup.RetentionDays = 5000 }, true},
		{"disabled cleanup skips checks", func(c *Config) { c.Cleanup.Enabled = false; c.Cleanup.RetentionDays = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
