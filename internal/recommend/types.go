// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/meridian/internal/models"
)

// InteractionStore persists the append-only interaction log.
// Implemented by the database package.
type InteractionStore interface {
	// InsertInteraction appends an interaction.
	InsertInteraction(ctx context.Context, inter *models.Interaction) error

	// CountInteractions returns how many interactions a user has with an item type.
	CountInteractions(ctx context.Context, userID string, itemType models.ItemType) (int, error)

	// RecentInteractions returns up to limit interactions, newest first.
	RecentInteractions(ctx context.Context, userID string, itemType models.ItemType, limit int) ([]models.Interaction, error)

	// QueryInteractions returns interactions matching the filter, newest first.
	QueryInteractions(ctx context.Context, filter models.InteractionFilter) ([]models.Interaction, error)

	// ActionSummary returns counts and average view duration per action.
	ActionSummary(ctx context.Context, userID string, itemType *models.ItemType, since *time.Time) (map[models.Action]models.ActionCount, error)

	// DeleteInteractionsBefore removes interactions older than cutoff.
	DeleteInteractionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RecommendationStore persists recommendations keyed by (user, item type, item id).
// Implemented by the storage package.
type RecommendationStore interface {
	// UpsertRecommendations writes all recommendations atomically. Status
	// flags already set on a stored copy are kept.
	UpsertRecommendations(ctx context.Context, recs []models.Recommendation) error

	// ListRecommendations returns up to limit unexpired recommendations,
	// seen ones included, ordered by ranking then score.
	ListRecommendations(ctx context.Context, userID string, itemType models.ItemType, limit int) ([]models.Recommendation, error)

	// MarkInteraction sets the status flag mapped to action. It returns
	// ErrNotFound when no recommendation exists for the key.
	MarkInteraction(ctx context.Context, userID string, ref models.ItemRef, action models.Action) error
}

// PreferenceStore persists the latest snapshot per user and item type.
type PreferenceStore interface {
	SavePreferences(ctx context.Context, snap *models.PreferenceSnapshot) error
	LoadPreferences(ctx context.Context, userID string, itemType models.ItemType) (*models.PreferenceSnapshot, error)
}

// AnalysisTask asks for a background preference analysis and re-rank.
type AnalysisTask struct {
	UserID        string          `json:"user_id"`
	ItemType      models.ItemType `json:"item_type"`
	RequestedAt   time.Time       `json:"requested_at"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}

// AnalysisScheduler queues background analysis tasks. Scheduling must not
// block on the analysis itself.
type AnalysisScheduler interface {
	ScheduleAnalysis(ctx context.Context, task AnalysisTask) error
}

// Reranker re-scores and orders recommendations from a snapshot.
type Reranker interface {
	// Name returns the reranker name for logging.
	Name() string

	// Rerank returns new recommendations with Metadata.Ranking assigned.
	Rerank(recs []models.Recommendation, snap *models.PreferenceSnapshot) []models.Recommendation
}

// LogRequest is the input of LogInteraction.
type LogRequest struct {
	UserID        string            `json:"user_id" validate:"required,max=128"`
	ItemType      string            `json:"item_type" validate:"required,item_type"`
	ItemID        string            `json:"item_id" validate:"required,max=128"`
	Action        string            `json:"action" validate:"required,action"`
	Duration      int               `json:"duration" validate:"gte=0"`
	SourcePage    string            `json:"source_page" validate:"max=128"`
	Position      int               `json:"position" validate:"gte=0"`
	OriginalScore float64           `json:"original_score" validate:"gte=0,lte=100"`
	Metadata      map[string]string `json:"metadata" validate:"max=32"`

	// Timestamp defaults to the engine clock when zero.
	Timestamp time.Time `json:"timestamp"`
}

// UpdateResult is the outcome of UpdateRecommendations.
type UpdateResult struct {
	// Updated is false when the user has too few interactions.
	Updated bool `json:"updated"`

	// Reranked is the number of recommendations rewritten.
	Reranked int `json:"reranked"`

	Preferences *models.PreferenceSnapshot `json:"preferences,omitempty"`
}

// StatsOptions narrows GetUserStats.
type StatsOptions struct {
	// ItemType restricts the counts and selects the snapshot type (default job).
	ItemType *models.ItemType

	// Since restricts the counts to recent interactions.
	Since *time.Time
}

// CleanupResult is the outcome of CleanupOldInteractions.
type CleanupResult struct {
	DeletedCount int64     `json:"deleted_count"`
	Cutoff       time.Time `json:"cutoff"`
}

// RetrainOptions selects what RetrainModels would retrain.
type RetrainOptions struct {
	ItemType *models.ItemType `json:"item_type,omitempty"`
}

// Retrain statuses.
const (
	RetrainStatusSkipped = "skipped"
)

// RetrainResult is the outcome of RetrainModels.
type RetrainResult struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	RequestedAt time.Time `json:"requested_at"`
}
