// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/meridian/internal/metrics"
)

// CleanupOldInteractions deletes interactions older than days.
func (e *Engine) CleanupOldInteractions(ctx context.Context, days int) (*CleanupResult, error) {
	if days < 1 || days > e.config.CleanupMaxDays {
		return nil, fmt.Errorf("%w: days must be in [1, %d], got %d", ErrValidation, e.config.CleanupMaxDays, days)
	}

	cutoff := e.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	deleted, err := e.interactions.DeleteInteractionsBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("delete interactions: %w", err)
	}
	metrics.InteractionsDeleted.Add(float64(deleted))

	e.logger.Info().
		Int("days", days).
		Time("cutoff", cutoff).
		Int64("deleted", deleted).
		Msg("old interactions cleaned up")

	return &CleanupResult{DeletedCount: deleted, Cutoff: cutoff}, nil
}

// RetrainModels acknowledges a retrain request. Preferences are recomputed
// from the interaction log on every analysis, so there is no model state to
// rebuild.
func (e *Engine) RetrainModels(ctx context.Context, opts RetrainOptions) (*RetrainResult, error) {
	if opts.ItemType != nil && !opts.ItemType.Valid() {
		return nil, fmt.Errorf("%w: unknown item type %q", ErrValidation, *opts.ItemType)
	}

	metrics.RetrainRequests.Inc()

	event := e.logger.Info()
	if opts.ItemType != nil {
		event = event.Str("item_type", string(*opts.ItemType))
	}
	event.Msg("model retrain requested; preferences are computed on demand")

	return &RetrainResult{
		Status:      RetrainStatusSkipped,
		Message:     "no trainable models; preferences are recomputed from recent interactions",
		RequestedAt: e.now().UTC(),
	}, nil
}
