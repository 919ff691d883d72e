// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package reranking

import (
	"sort"

	"github.com/tomtom215/meridian/internal/models"
)

// Behavior re-scores, re-explains and re-orders recommendations from a
// preference snapshot.
type Behavior struct {
	adjust          AdjustConfig
	minInteractions int
}

// NewBehavior creates a behavior reranker. minInteractions is the snapshot
// size required before a behavior reason is attached.
func NewBehavior(adjust AdjustConfig, minInteractions int) *Behavior {
	return &Behavior{adjust: adjust, minInteractions: minInteractions}
}

// Name returns the reranker name.
func (b *Behavior) Name() string {
	return "behavior"
}

// Rerank returns adjusted copies of recs sorted by score descending with
// Metadata.Ranking set to the 1-based position.
func (b *Behavior) Rerank(recs []models.Recommendation, snap *models.PreferenceSnapshot) []models.Recommendation {
	out := make([]models.Recommendation, len(recs))
	for i := range recs {
		r := recs[i].Clone()
		r.Score = AdjustScore(r.Score, snap, b.adjust)
		r.Reasons = UpdateReasons(r.Reasons, snap, b.minInteractions)
		out[i] = r
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	for i := range out {
		out[i].Metadata.Ranking = i + 1
	}
	return out
}
