// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package patterns mines behavioral patterns from a user's recent interactions.
//
// # Overview
//
// The Extractor turns a recency-ordered interaction list (newest first) into a
// models.PreferenceSnapshot. It is a pure function of its inputs: the analysis
// time is passed in, and every map is populated and every ranking is broken in
// a fixed order, so identical input yields an identical snapshot.
//
// # Patterns
//
// Time-based:
//   - Hours are bucketed into morning [6,12), afternoon [12,18),
//     evening [18,24) and night [0,6) in the configured location
//   - The preferred bucket is the most frequent one; ties go to evening,
//     then morning, afternoon, night
//
// Action sequences:
//   - Adjacent interactions on the same item produce a transition from the
//     newer action to the older one, following the list order
//   - The most frequent transitions are kept; equal counts keep first-seen order
//
// Score patterns:
//   - Average, min and max of the original recommendation score, overall and
//     per action, over interactions whose score is positive
//
// Interaction weights:
//   - Each action contributes its signed weight from ActionWeights
//   - Percentages are shares of the signed total, the dominant action has
//     the largest share
//
// Categories:
//   - The "category" metadata key accumulates signed weight; positive net
//     weight marks a preferred category, negative a disliked one
//
// # Usage
//
//	ex := patterns.NewExtractor(patterns.DefaultConfig())
//	snap := ex.Extract(userID, models.ItemTypeJob, recent, time.Now())
package patterns
