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
	"github.com/tomtom215/meridian/internal/models"
)

// AnalyzeUserPreferences mines the user's most recent interactions with an
// item type. It returns nil without error when the user has fewer than
// MinInteractionCount interactions.
func (e *Engine) AnalyzeUserPreferences(ctx context.Context, userID string, itemType models.ItemType) (*models.PreferenceSnapshot, error) {
	if err := validateUserType(userID, itemType); err != nil {
		return nil, err
	}

	start := time.Now()

	count, err := e.interactions.CountInteractions(ctx, userID, itemType)
	if err != nil {
		metrics.RecordAnalysis(string(itemType), metrics.ResultFailed, 0)
		return nil, fmt.Errorf("count interactions: %w", err)
	}
	if count < e.config.MinInteractionCount {
		metrics.RecordAnalysis(string(itemType), metrics.ResultInsufficient, 0)
		e.logger.Debug().
			Str("user_id", userID).
			Str("item_type", string(itemType)).
			Int("interactions", count).
			Msg("insufficient interactions for preference analysis")
		return nil, nil
	}

	recent, err := e.interactions.RecentInteractions(ctx, userID, itemType, e.config.AnalysisWindow)
	if err != nil {
		metrics.RecordAnalysis(string(itemType), metrics.ResultFailed, 0)
		return nil, fmt.Errorf("load recent interactions: %w", err)
	}

	snap := e.extractor.Extract(userID, itemType, recent, e.now().UTC())
	metrics.RecordAnalysis(string(itemType), metrics.ResultAnalyzed, time.Since(start))

	return snap, nil
}

// GetUserPreferences returns a freshly computed snapshot, or nil when the
// user has too few interactions.
func (e *Engine) GetUserPreferences(ctx context.Context, userID string, itemType models.ItemType) (*models.PreferenceSnapshot, error) {
	return e.AnalyzeUserPreferences(ctx, userID, itemType)
}

// StoredPreferences returns the snapshot persisted by the last
// UpdateRecommendations run.
func (e *Engine) StoredPreferences(ctx context.Context, userID string, itemType models.ItemType) (*models.PreferenceSnapshot, error) {
	if err := validateUserType(userID, itemType); err != nil {
		return nil, err
	}
	if e.preferences == nil {
		return nil, fmt.Errorf("preference profile: %w", ErrNotFound)
	}
	return e.preferences.LoadPreferences(ctx, userID, itemType)
}

// UpdateRecommendations analyzes the user's preferences, persists the
// snapshot and re-ranks the stored recommendations.
func (e *Engine) UpdateRecommendations(ctx context.Context, userID string, itemType models.ItemType) (*UpdateResult, error) {
	snap, err := e.AnalyzeUserPreferences(ctx, userID, itemType)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return &UpdateResult{Updated: false}, nil
	}

	if e.preferences != nil {
		if err := e.preferences.SavePreferences(ctx, snap); err != nil {
			return nil, fmt.Errorf("save preferences: %w", err)
		}
	}

	n, err := e.Rerank(ctx, userID, itemType, snap)
	if err != nil {
		return nil, err
	}

	logger := e.requestLogger(ctx, userID)
	logger.Info().
		Str("item_type", string(itemType)).
		Int("interactions", snap.InteractionCount).
		Str("dominant_action", string(snap.InteractionWeights.DominantAction)).
		Int("reranked", n).
		Msg("recommendations updated from preferences")

	return &UpdateResult{Updated: true, Reranked: n, Preferences: snap}, nil
}

// Rerank re-scores, re-explains and re-orders the user's stored
// recommendations of an item type and writes them back in one batch with
// their new ranking. It returns the number of recommendations rewritten.
func (e *Engine) Rerank(ctx context.Context, userID string, itemType models.ItemType, snap *models.PreferenceSnapshot) (int, error) {
	if err := validateUserType(userID, itemType); err != nil {
		return 0, err
	}

	start := time.Now()

	recs, err := e.recommendations.ListRecommendations(ctx, userID, itemType, e.config.RerankLimit)
	if err != nil {
		return 0, fmt.Errorf("list recommendations: %w", err)
	}
	if len(recs) == 0 {
		metrics.RecordRerank(0, time.Since(start))
		return 0, nil
	}

	ranked := e.reranker.Rerank(recs, snap)
	now := e.now().UTC()
	for i := range ranked {
		ranked[i].UpdatedAt = now
	}

	if err := e.recommendations.UpsertRecommendations(ctx, ranked); err != nil {
		return 0, fmt.Errorf("write reranked recommendations: %w", err)
	}

	metrics.RecordRerank(len(ranked), time.Since(start))
	return len(ranked), nil
}
