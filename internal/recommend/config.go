// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/meridian/internal/recommend/patterns"
	"github.com/tomtom215/meridian/internal/recommend/reranking"
)

// Config contains all configuration for the learning engine.
type Config struct {
	// MinInteractionCount is the number of interactions of one item type a
	// user needs before preferences are analyzed. Default: 5.
	MinInteractionCount int `json:"min_interaction_count"`

	// AnalysisWindow is how many of the most recent interactions are analyzed.
	// Default: 100.
	AnalysisWindow int `json:"analysis_window"`

	// RerankLimit is how many stored recommendations a re-rank reads and
	// rewrites. Default: 50.
	RerankLimit int `json:"rerank_limit"`

	// RecommendationTTL is applied to stored recommendations without an
	// expiry. Default: 7 days.
	RecommendationTTL time.Duration `json:"recommendation_ttl"`

	// Weights is the signed weight per action.
	Weights patterns.ActionWeights `json:"weights"`

	// TopSequences is how many action transitions a snapshot keeps. Default: 5.
	TopSequences int `json:"top_sequences"`

	// Timezone is the IANA zone used for time-of-day buckets. Default: UTC.
	Timezone string `json:"timezone"`

	// Adjust holds the score adjustment factors and caps.
	Adjust reranking.AdjustConfig `json:"adjust"`

	// Query bounds interaction listing.
	Query QueryConfig `json:"query"`

	// CleanupMaxDays is the largest retention window CleanupOldInteractions accepts.
	// Default: 3650.
	CleanupMaxDays int `json:"cleanup_max_days"`
}

// QueryConfig bounds interaction queries.
type QueryConfig struct {
	// DefaultLimit applies when a filter has no limit. Default: 50.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit is the largest accepted limit. Default: 500.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns a configuration with production defaults.
func DefaultConfig() *Config {
	return &Config{
		MinInteractionCount: 5,
		AnalysisWindow:      100,
		RerankLimit:         50,
		RecommendationTTL:   7 * 24 * time.Hour,
		Weights:             patterns.DefaultActionWeights(),
		TopSequences:        5,
		Timezone:            "UTC",
		Adjust:              reranking.DefaultAdjustConfig(),
		Query: QueryConfig{
			DefaultLimit: 50,
			MaxLimit:     500,
		},
		CleanupMaxDays: 3650,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.MinInteractionCount < 1 {
		return fmt.Errorf("min_interaction_count must be positive, got %d", c.MinInteractionCount)
	}
	if c.AnalysisWindow < c.MinInteractionCount {
		return fmt.Errorf("analysis_window must be >= min_interaction_count, got %d < %d", c.AnalysisWindow, c.MinInteractionCount)
	}
	if c.RerankLimit < 1 {
		return fmt.Errorf("rerank_limit must be positive, got %d", c.RerankLimit)
	}
	if c.RecommendationTTL <= 0 {
		return fmt.Errorf("recommendation_ttl must be positive, got %v", c.RecommendationTTL)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if c.TopSequences < 1 {
		return fmt.Errorf("top_sequences must be positive, got %d", c.TopSequences)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if c.Adjust.WeightFactor < 0 || c.Adjust.AboveAverageFactor < 0 {
		return fmt.Errorf("adjust factors must be non-negative, got %v and %v", c.Adjust.WeightFactor, c.Adjust.AboveAverageFactor)
	}
	if c.Adjust.WeightCap < 0 || c.Adjust.AboveAverageCap < 0 {
		return fmt.Errorf("adjust caps must be non-negative, got %v and %v", c.Adjust.WeightCap, c.Adjust.AboveAverageCap)
	}
	if c.Query.DefaultLimit < 1 {
		return fmt.Errorf("query.default_limit must be positive, got %d", c.Query.DefaultLimit)
	}
	if c.Query.MaxLimit < c.Query.DefaultLimit {
		return fmt.Errorf("query.max_limit must be >= query.default_limit, got %d < %d", c.Query.MaxLimit, c.Query.DefaultLimit)
	}
	if c.CleanupMaxDays < 1 {
		return fmt.Errorf("cleanup_max_days must be positive, got %d", c.CleanupMaxDays)
	}
	return nil
}

// Clone returns a copy of the configuration. All fields are value types.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// location returns the configured time zone, falling back to UTC.
func (c *Config) location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// patternsConfig derives the extractor configuration.
func (c *Config) patternsConfig() patterns.Config {
	return patterns.Config{
		Weights:      c.Weights,
		TopSequences: c.TopSequences,
		Location:     c.location(),
	}
}
