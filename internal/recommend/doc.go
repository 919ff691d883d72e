// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package recommend implements the interaction-driven learning engine.
//
// # Architecture
//
// The engine sits between an append-only interaction log and a keyed
// recommendation store written by external candidate scorers:
//
//	LogInteraction -> InteractionStore (DuckDB)
//	               -> RecommendationStore.MarkInteraction (status flags)
//	               -> AnalysisScheduler (background, Watermill)
//
//	UpdateRecommendations -> AnalyzeUserPreferences (patterns.Extractor)
//	                      -> PreferenceStore.SavePreferences
//	                      -> Rerank (reranking.Behavior) -> UpsertRecommendations
//
// The engine depends on interfaces only. The database, storage and
// eventprocessor packages provide the production implementations and are
// wired in cmd/server.
//
// # Background Analysis
//
// Logging an interaction never waits for analysis. The engine hands an
// AnalysisTask to its scheduler and returns; a worker later calls
// UpdateRecommendations. Scheduling failures and status flag failures are
// logged and counted but never fail the interaction write.
//
// # Re-ranking
//
// Rerank reads up to RerankLimit recommendations (seen ones included),
// adjusts scores and explanations, and writes them back with a 1-based
// Metadata.Ranking in a single atomic upsert. Readers never observe a
// partially replaced set, and status flags set concurrently are preserved by
// the store.
//
// # Errors
//
//   - ErrValidation: rejected input
//   - ErrNotFound: missing recommendation, item or profile
//   - ErrStoreUnavailable: transient store failure
//
// Too little history is not an error: AnalyzeUserPreferences returns a nil
// snapshot and UpdateRecommendations reports Updated=false.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, recommend.Dependencies{
//	    Interactions:    db,
//	    Recommendations: recStore,
//	    Preferences:     recStore,
//	    Scheduler:       queue,
//	    Items:           directory,
//	}, logger)
//
//	inter, err := engine.LogInteraction(ctx, recommend.LogRequest{
//	    UserID: "u1", ItemType: "job", ItemID: "j42", Action: "apply",
//	})
package recommend
