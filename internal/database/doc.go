// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package database provides the DuckDB-backed interaction log and item catalog.
//
// # Tables
//
//   - interactions: append-only behavioral events, indexed on
//     (user_id, item_type, created_at). The seq column breaks ties between
//     events with the same timestamp so that "newest first" is stable.
//   - jobs, courses, candidates: item summaries used to enrich interaction
//     listings.
//
// DB implements recommend.InteractionStore. ItemCatalog exposes one lookup
// per item type for recommend.ItemDirectory.
//
// # Observability
//
// Every query is timed and counted through metrics.RecordDBQuery, labeled
// by operation and table.
package database
