// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package models

// ActionCount is the per-action aggregate of a user's interactions.
type ActionCount struct {
	Count       int     `json:"count"`
	AvgDuration float64 `json:"avg_duration"`
}

// EngagementLevel classifies a user by interaction volume.
type EngagementLevel string

// Engagement levels.
const (
	EngagementBeginner     EngagementLevel = "beginner"
	EngagementIntermediate EngagementLevel = "intermediate"
	EngagementExpert       EngagementLevel = "expert"
)

// ConversionRates are percentages between funnel steps.
type ConversionRates struct {
	ViewToLike  float64 `json:"view_to_like"`
	ViewToApply float64 `json:"view_to_apply"`
	LikeToApply float64 `json:"like_to_apply"`
}

// StatsSummary is the headline of a user's stats.
type StatsSummary struct {
	TotalInteractions int             `json:"total_interactions"`
	EngagementScore   float64         `json:"engagement_score"`
	EngagementLevel   EngagementLevel `json:"engagement_level"`
	InsufficientData  bool            `json:"insufficient_data"`
	MostCommonAction  Action          `json:"most_common_action,omitempty"`
	PreferredTime     TimeBucket      `json:"preferred_time,omitempty"`
}

// UserStats aggregates a user's interactions.
type UserStats struct {
	UserID      string                 `json:"user_id"`
	Actions     map[Action]ActionCount `json:"actions"`
	Conversion  ConversionRates        `json:"conversion"`
	Preferences *PreferenceSnapshot    `json:"preferences,omitempty"`
	Summary     StatsSummary           `json:"summary"`
}
