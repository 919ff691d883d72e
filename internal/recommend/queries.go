// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package recommend

import (
	"context"
	"fmt"
	"math"

	"github.com/tomtom215/meridian/internal/models"
)

// GetUserInteractions returns the user's interactions matching the filter,
// newest first, with item references resolved where a lookup is registered.
//
//nolint:gocritic // hugeParam: filter passed by value for simplicity
func (e *Engine) GetUserInteractions(ctx context.Context, filter models.InteractionFilter) ([]models.InteractionView, error) {
	if filter.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if filter.ItemType != nil && !filter.ItemType.Valid() {
		return nil, fmt.Errorf("%w: unknown item type %q", ErrValidation, *filter.ItemType)
	}
	if filter.Action != nil && !filter.Action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, *filter.Action)
	}
	if filter.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be non-negative", ErrValidation)
	}
	if filter.Since != nil && filter.Until != nil && filter.Until.Before(*filter.Since) {
		return nil, fmt.Errorf("%w: until is before since", ErrValidation)
	}

	switch {
	case filter.Limit <= 0:
		filter.Limit = e.config.Query.DefaultLimit
	case filter.Limit > e.config.Query.MaxLimit:
		filter.Limit = e.config.Query.MaxLimit
	}

	interactions, err := e.interactions.QueryInteractions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}

	views := make([]models.InteractionView, len(interactions))
	resolved := make(map[models.ItemRef]*models.ItemSummary)
	for i := range interactions {
		views[i].Interaction = interactions[i]
		views[i].ItemDetails = e.resolveItem(ctx, interactions[i].Item, resolved)
	}
	return views, nil
}

// resolveItem looks an item up once per call, caching results in seen.
func (e *Engine) resolveItem(ctx context.Context, ref models.ItemRef, seen map[models.ItemRef]*models.ItemSummary) *models.ItemSummary {
	if e.items == nil {
		return nil
	}
	if item, ok := seen[ref]; ok {
		return item
	}

	item, err := e.items.Resolve(ctx, ref)
	if err != nil {
		e.logger.Debug().Err(err).Str("item", ref.String()).Msg("item not resolved")
		item = nil
	}
	seen[ref] = item
	return item
}

// StoreRecommendations validates and upserts recommendations produced by an
// external scorer. Missing timestamps are filled and a missing expiry is set
// to now plus RecommendationTTL.
func (e *Engine) StoreRecommendations(ctx context.Context, recs []models.Recommendation) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	now := e.now().UTC()
	batch := make([]models.Recommendation, len(recs))
	for i := range recs {
		r := recs[i].Clone()
		if err := validateRecommendation(&r); err != nil {
			return 0, fmt.Errorf("recommendation %d: %w", i, err)
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		r.UpdatedAt = now
		if r.ExpiresAt.IsZero() {
			r.ExpiresAt = now.Add(e.config.RecommendationTTL)
		}
		batch[i] = r
	}

	if err := e.recommendations.UpsertRecommendations(ctx, batch); err != nil {
		return 0, fmt.Errorf("store recommendations: %w", err)
	}
	return len(batch), nil
}

func validateRecommendation(r *models.Recommendation) error {
	if err := validateUserType(r.UserID, r.Item.ItemType); err != nil {
		return err
	}
	if r.Item.ItemID == "" {
		return fmt.Errorf("%w: item id is required", ErrValidation)
	}
	if math.IsNaN(r.Score) || r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("%w: score must be in [0, 100], got %v", ErrValidation, r.Score)
	}
	if math.IsNaN(r.Confidence) || r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be in [0, 1], got %v", ErrValidation, r.Confidence)
	}
	return nil
}
