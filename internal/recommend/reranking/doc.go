// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package reranking re-scores and re-explains stored recommendations from a
// user's preference snapshot.
//
// Reranking runs after candidate generation, on recommendations that are
// already persisted:
//
//	Scorers -> Stored recommendations -> Behavior reranker -> Ranked, explained set
//	(external)                           (this package)
//
// # Score Adjustment
//
// AdjustScore adds two terms to the stored score and clamps to [0, 100]:
//
//	adjusted = base + min(totalWeight * WeightFactor, WeightCap)
//	              + min((base - avgScore) * AboveAverageFactor, AboveAverageCap)   if base > avgScore
//
// The first term follows the sign of the user's total interaction weight. The
// second only ever boosts: recommendations scored above what the user usually
// engages with move up, the rest are not penalized.
//
// # Explanations
//
// UpdateReasons keeps exactly one reason of type "behavior" once the snapshot
// is backed by enough interactions. Applying it repeatedly with the same
// snapshot produces the same reason list.
//
// # Behavior Reranker
//
// Behavior combines both steps, sorts by adjusted score (stable, so equal
// scores keep their previous order) and assigns 1-based rankings. It returns
// new values; the input slice is not modified.
//
//	b := reranking.NewBehavior(reranking.DefaultAdjustConfig(), 5)
//	ranked := b.Rerank(recs, snapshot)
package reranking
