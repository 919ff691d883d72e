// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package logging

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// TaskLogger writes the lifecycle of background analysis tasks.
type TaskLogger struct {
	logger zerolog.Logger
}

// NewTaskLogger tags logger with the analysis component.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTaskLogger(logger zerolog.Logger) *TaskLogger {
	return &TaskLogger{logger: logger.With().Str("component", "analysis").Logger()}
}

func (l *TaskLogger) with(ctx context.Context, userID, itemType string) zerolog.Logger {
	lc := l.logger.With().Str("user_id", userID).Str("item_type", itemType)
	if id := CorrelationIDFromContext(ctx); id != "" {
		lc = lc.Str("correlation_id", id)
	}
	return lc.Logger()
}

// Received logs a dequeued task.
func (l *TaskLogger) Received(ctx context.Context, taskID, userID, itemType string) {
	logger := l.with(ctx, userID, itemType)
	logger.Debug().Str("task_id", taskID).Msg("analysis task received")
}

// Completed logs a finished task.
func (l *TaskLogger) Completed(ctx context.Context, userID, itemType string, updated bool, reranked int, took time.Duration) {
	logger := l.with(ctx, userID, itemType)
	logger.Info().
		Bool("updated", updated).
		Int("reranked", reranked).
		Dur("duration", took).
		Msg("analysis task completed")
}

// Failed logs a task error. Retryable failures log at warn.
func (l *TaskLogger) Failed(ctx context.Context, userID, itemType string, err error, retryable bool) {
	logger := l.with(ctx, userID, itemType)
	event := logger.Error()
	if retryable {
		event = logger.Warn()
	}
	event.Err(err).Bool("retryable", retryable).Msg("analysis task failed")
}

// Poisoned logs a task given up after retries.
func (l *TaskLogger) Poisoned(taskID, reason string) {
	l.logger.Error().Str("task_id", taskID).Str("reason", reason).Msg("analysis task moved to poison queue")
}

// Malformed logs a payload that could not be decoded.
func (l *TaskLogger) Malformed(taskID string, err error) {
	l.logger.Error().Err(err).Str("task_id", taskID).Msg("dropping malformed analysis task")
}

// RouterStarted logs the start of task processing.
func (l *TaskLogger) RouterStarted(topic string) {
	l.logger.Info().Str("topic", topic).Msg("analysis worker started")
}

// RouterStopped logs the end of task processing.
func (l *TaskLogger) RouterStopped(topic string) {
	l.logger.Info().Str("topic", topic).Msg("analysis worker stopped")
}
