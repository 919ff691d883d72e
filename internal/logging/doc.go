// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package logging provides zerolog-based logging for Meridian.
//
// A global logger is configured once from main:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("ops server listening")
//
// Components receive a zerolog.Logger by value and derive a child with a
// component field:
//
//	logger := logging.WithComponent("store")
//
// Correlation ids travel in the context. Background analysis tasks carry the
// id of the interaction that triggered them:
//
//	ctx = logging.ContextWithCorrelationID(ctx, id)
//	logging.Ctx(ctx).Info().Msg("analysis started")
//
// Libraries that expect log/slog (suture supervision, Watermill) get a
// bridge through NewSlogLogger.
//
// Always finish an event with Msg or Send; an unfinished event is dropped.
package logging
