// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

/*
Package models defines the data structures shared by the Meridian packages.

The models are plain structs with JSON tags. They carry no behavior beyond
small helpers (parsing, key construction, monotonic flag merging) so that the
storage, pattern mining and re-ranking packages can share them without
importing each other.

Key Components:

  - ItemRef: Tagged reference {ItemType, ItemID} to a job, course or candidate
  - Interaction: Immutable record of one user action on a recommended item
  - Recommendation: Scored, explained item for a user with one-way status flags
  - PreferenceSnapshot: Behavioral patterns mined from recent interactions
  - UserStats: Engagement and conversion aggregates for a user

Actions and Weights:

Every Action has a signed weight supplied by configuration (see
recommend.ActionWeights). Apply, like, save and view are positive signals;
ignore is the only negative one.

Status Flags:

Recommendation status flags only move from false to true:

	fresh -> seen (view) -> clicked (like) -> applied (apply)

Flags are independent of order; an apply on an unseen recommendation sets
Applied without touching Seen. Merging two copies of a recommendation keeps
every flag that is set on either copy.
*/
package models
