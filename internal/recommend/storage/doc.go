// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package storage persists recommendations and preference profiles in BadgerDB.
//
// # Key Layout
//
//	rec:{user}:{item_type}:{item_id}   JSON Recommendation, TTL until ExpiresAt
//	pref:{user}:{item_type}            JSON PreferenceSnapshot
//
// Key segments are query-escaped so that a user id containing ':' cannot
// collide with another user's prefix.
//
// # Status Flags
//
// Seen, Clicked and Applied only move from false to true. Upserts merge the
// flags of the stored copy into the incoming record inside the same
// transaction, so a re-rank never clears a flag set by a concurrent
// interaction.
//
// # Resilience
//
// Every operation runs through a sony/gobreaker circuit breaker. Missing keys
// do not count as failures. While the breaker is open, operations fail fast
// with recommend.ErrStoreUnavailable.
package storage
