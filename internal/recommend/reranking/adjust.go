// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package reranking

import (
	"math"

	"github.com/tomtom215/meridian/internal/models"
)

// AdjustConfig holds the factors and caps of the score adjustment.
type AdjustConfig struct {
	// WeightFactor scales the snapshot's total interaction weight. Default: 0.1.
	WeightFactor float64 `json:"weight_factor"`

	// WeightCap is the upper bound of the weight term. Default: 20.
	WeightCap float64 `json:"weight_cap"`

	// AboveAverageFactor scales the distance above the user's average score. Default: 0.2.
	AboveAverageFactor float64 `json:"above_average_factor"`

	// AboveAverageCap is the upper bound of the above-average term. Default: 10.
	AboveAverageCap float64 `json:"above_average_cap"`
}

// DefaultAdjustConfig returns the production adjustment settings.
func DefaultAdjustConfig() AdjustConfig {
	return AdjustConfig{
		WeightFactor:       0.1,
		WeightCap:          20,
		AboveAverageFactor: 0.2,
		AboveAverageCap:    10,
	}
}

// Score bounds.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// AdjustScore applies the behavioral adjustment to a base score.
// A nil snapshot leaves the score unchanged apart from clamping.
func AdjustScore(base float64, snap *models.PreferenceSnapshot, cfg AdjustConfig) float64 {
	if snap == nil {
		return clampScore(base)
	}

	adjusted := base + math.Min(snap.InteractionWeights.TotalWeight*cfg.WeightFactor, cfg.WeightCap)

	if avg, ok := snap.AverageScore(); ok && base > avg {
		adjusted += math.Min((base-avg)*cfg.AboveAverageFactor, cfg.AboveAverageCap)
	}

	return clampScore(adjusted)
}

func clampScore(s float64) float64 {
	return math.Max(MinScore, math.Min(MaxScore, s))
}
