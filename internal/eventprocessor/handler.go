// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/meridian/internal/logging"
	"github.com/tomtom215/meridian/internal/metrics"
	"github.com/tomtom215/meridian/internal/models"
	"github.com/tomtom215/meridian/internal/recommend"
)

// Updater runs one analysis. *recommend.Engine implements it.
type Updater interface {
	UpdateRecommendations(ctx context.Context, userID string, itemType models.ItemType) (*recommend.UpdateResult, error)
}

// errorSink forwards task failures without ever blocking the worker.
type errorSink struct {
	ch     chan error
	logger zerolog.Logger
}

func (s *errorSink) report(err error) {
	select {
	case s.ch <- err:
	default:
		s.logger.Warn().Err(err).Msg("error channel full, dropping task error")
	}
}

// AnalysisHandler consumes analysis task messages.
type AnalysisHandler struct {
	updater Updater
	limiter *rate.Limiter
	timeout time.Duration
	log     *logging.TaskLogger
	errs    *errorSink
}

func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Handle runs the analysis for one task. Permanent failures are acknowledged
// and reported. Other failures are returned so the router retries them.
func (h *AnalysisHandler) Handle(msg *message.Message) error {
	task, err := DecodeTask(msg)
	if err != nil {
		h.log.Malformed(msg.UUID, err)
		metrics.RecordTask(metrics.TaskFailed)
		h.errs.report(err)
		return nil
	}

	ctx := logging.ContextWithCorrelationID(msg.Context(), task.CorrelationID)
	userID, itemType := task.UserID, string(task.ItemType)
	h.log.Received(ctx, msg.UUID, userID, itemType)

	if err := h.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for analysis slot: %w", err)
	}

	metrics.TrackInflightTask(true)
	defer metrics.TrackInflightTask(false)

	taskCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	result, err := h.updater.UpdateRecommendations(taskCtx, task.UserID, task.ItemType)
	if err != nil {
		if errors.Is(err, recommend.ErrValidation) {
			h.log.Failed(ctx, userID, itemType, err, false)
			metrics.RecordTask(metrics.TaskFailed)
			h.errs.report(fmt.Errorf("analysis %s/%s: %w", userID, itemType, err))
			return nil
		}
		h.log.Failed(ctx, userID, itemType, err, true)
		return fmt.Errorf("analysis %s/%s: %w", userID, itemType, err)
	}

	var updated bool
	var reranked int
	if result != nil {
		updated, reranked = result.Updated, result.Reranked
	}
	h.log.Completed(ctx, userID, itemType, updated, reranked, time.Since(start))
	metrics.RecordTask(metrics.TaskCompleted)
	return nil
}

// HandlePoisoned reports a task the router gave up on.
func (h *AnalysisHandler) HandlePoisoned(msg *message.Message) error {
	reason := msg.Metadata.Get(middleware.ReasonForPoisonedKey)
	h.log.Poisoned(msg.UUID, reason)
	metrics.RecordTask(metrics.TaskPoisoned)
	h.errs.report(fmt.Errorf("%w: %s/%s: %s",
		ErrTaskPoisoned,
		msg.Metadata.Get(metadataUserID),
		msg.Metadata.Get(metadataItemType),
		reason,
	))
	return nil
}
