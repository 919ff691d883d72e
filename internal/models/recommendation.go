// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package models

import "time"

// Strength grades how strongly a reason supports a recommendation.
type Strength string

// Reason strengths.
const (
	StrengthHigh   Strength = "high"
	StrengthMedium Strength = "medium"
	StrengthLow    Strength = "low"
)

// ReasonTypeBehavior is the reason type written by behavioral re-ranking.
const ReasonTypeBehavior = "behavior"

// Reason explains one factor behind a recommendation.
type Reason struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Strength Strength       `json:"strength"`
	Details  map[string]any `json:"details,omitempty"`
}

// RecommendationMetadata carries ranking position and the one-way status flags.
type RecommendationMetadata struct {
	// Algorithm names the scorer that produced the recommendation.
	Algorithm string `json:"algorithm,omitempty"`

	// Ranking is the 1-based position assigned by the last re-rank (0 = unranked).
	Ranking int `json:"ranking,omitempty"`

	Seen    bool `json:"seen"`
	Clicked bool `json:"clicked"`
	Applied bool `json:"applied"`
}

// MergeFlags sets every status flag that is set on other. Flags never clear.
func (m *RecommendationMetadata) MergeFlags(other RecommendationMetadata) {
	m.Seen = m.Seen || other.Seen
	m.Clicked = m.Clicked || other.Clicked
	m.Applied = m.Applied || other.Applied
}

// MarkAction sets the flag associated with an action and reports whether
// the action maps to a flag at all.
func (m *RecommendationMetadata) MarkAction(a Action) bool {
	switch a {
	case ActionView:
		m.Seen = true
	case ActionLike:
		m.Clicked = true
	case ActionApply:
		m.Applied = true
	default:
		return false
	}
	return true
}

// Recommendation is a scored, explained item for a user. The key is
// (UserID, Item.ItemType, Item.ItemID).
type Recommendation struct {
	UserID string  `json:"user_id"`
	Item   ItemRef `json:"item"`

	// Score is in [0, 100].
	Score float64 `json:"score"`

	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence"`

	Reasons []Reason `json:"reasons,omitempty"`

	// Features is an opaque bag written by the candidate scorers.
	Features map[string]any `json:"features,omitempty"`

	Metadata RecommendationMetadata `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Clone returns a copy whose reason slice can be replaced without touching r.
func (r *Recommendation) Clone() Recommendation {
	c := *r
	if r.Reasons != nil {
		c.Reasons = make([]Reason, len(r.Reasons))
		copy(c.Reasons, r.Reasons)
	}
	return c
}
