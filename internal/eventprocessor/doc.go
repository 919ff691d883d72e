// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package eventprocessor runs background preference analysis on a Watermill
// router.
//
// Logging an interaction asks for a re-analysis of the user's preferences.
// The engine hands an AnalysisTask to a Scheduler, which publishes it on an
// in-process Go channel pub/sub and returns immediately. A Router consumes the
// topic and calls UpdateRecommendations for each task.
//
//	Engine.LogInteraction
//	      │ ScheduleAnalysis
//	      ▼
//	┌───────────┐  analysis.tasks   ┌──────────────────────────────┐
//	│ Scheduler │ ────────────────▶ │ Router                       │
//	└───────────┘    (gochannel)    │  PoisonQueue → Retry →       │
//	                                │  Recoverer → AnalysisHandler │
//	                                └──────────────┬───────────────┘
//	                                               │ after retries
//	                                               ▼
//	                                      analysis.tasks.poison
//	                                               │
//	                                               ▼
//	                                          Errors() chan
//
// # Failure handling
//
// A task whose payload cannot be decoded, or that the engine rejects with
// recommend.ErrValidation, is acknowledged and reported on Errors() without
// retry. Any other error is retried with exponential backoff. Once retries are
// exhausted the poison queue middleware republishes the task on the poison
// topic, where it is logged, counted and reported on Errors().
//
// Errors() is buffered. When nobody drains it, further errors are dropped
// after being logged, so a slow reader never stalls the worker.
//
// # Delivery
//
// The pub/sub is not persistent. Tasks published while the router is stopped
// would be lost, so the Scheduler refuses them with ErrNotRunning and the
// engine counts them as dropped. A later interaction schedules a fresh task.
//
// # Rate limiting
//
// Config.RatePerSecond caps how many analyses start per second using
// golang.org/x/time/rate. Zero disables the limit.
package eventprocessor
