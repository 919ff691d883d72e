// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package models

import "time"

// TimeBucket is a part of the day.
type TimeBucket string

// Time buckets by hour: morning [6,12), afternoon [12,18), evening [18,24), night [0,6).
const (
	TimeMorning   TimeBucket = "morning"
	TimeAfternoon TimeBucket = "afternoon"
	TimeEvening   TimeBucket = "evening"
	TimeNight     TimeBucket = "night"
)

// TimeBucketForHour maps an hour of day (0-23) to its bucket.
func TimeBucketForHour(hour int) TimeBucket {
	switch {
	case hour >= 6 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 18:
		return TimeAfternoon
	case hour >= 18:
		return TimeEvening
	default:
		return TimeNight
	}
}

// TimePattern is the distribution of interactions over the day.
type TimePattern struct {
	Distribution  map[TimeBucket]int `json:"distribution"`
	PreferredTime TimeBucket         `json:"preferred_time"`
}

// ActionSequence counts one action-to-action transition on the same item.
type ActionSequence struct {
	From  Action `json:"from"`
	To    Action `json:"to"`
	Count int    `json:"count"`
}

// ScoreStats summarizes the original scores of a set of interactions.
type ScoreStats struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Count   int     `json:"count"`
}

// ScorePattern holds score statistics overall and per action.
type ScorePattern struct {
	Overall  ScoreStats            `json:"overall"`
	ByAction map[Action]ScoreStats `json:"by_action"`
}

// Patterns groups the mined behavioral patterns.
type Patterns struct {
	TimeBased       TimePattern      `json:"time_based"`
	ActionSequences []ActionSequence `json:"action_sequences"`

	// ScorePatterns is nil when no interaction carried a positive original score.
	ScorePatterns *ScorePattern `json:"score_patterns,omitempty"`
}

// InteractionWeights is the signed weight breakdown per action.
type InteractionWeights struct {
	Weights        map[Action]float64 `json:"weights"`
	Percentages    map[Action]float64 `json:"percentages"`
	TotalWeight    float64            `json:"total_weight"`
	DominantAction Action             `json:"dominant_action,omitempty"`
	PositiveCount  int                `json:"positive_count"`
	NegativeCount  int                `json:"negative_count"`
}

// CategoryWeight is the net signed weight accumulated by a category.
type CategoryWeight struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// PreferenceSnapshot is the result of analyzing a user's recent interactions
// with one item type.
type PreferenceSnapshot struct {
	UserID              string             `json:"user_id"`
	ItemType            ItemType           `json:"item_type"`
	InteractionCount    int                `json:"interaction_count"`
	Patterns            Patterns           `json:"patterns"`
	InteractionWeights  InteractionWeights `json:"interaction_weights"`
	PreferredCategories []CategoryWeight   `json:"preferred_categories"`
	DislikedCategories  []CategoryWeight   `json:"disliked_categories"`
	LastAnalyzed        time.Time          `json:"last_analyzed"`
}

// AverageScore returns the overall average original score, if any.
func (p *PreferenceSnapshot) AverageScore() (float64, bool) {
	if p == nil || p.Patterns.ScorePatterns == nil || p.Patterns.ScorePatterns.Overall.Count == 0 {
		return 0, false
	}
	return p.Patterns.ScorePatterns.Overall.Average, true
}
