// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/meridian/internal/logging"
	"github.com/tomtom215/meridian/internal/metrics"
	"github.com/tomtom215/meridian/internal/models"
	"github.com/tomtom215/meridian/internal/recommend/patterns"
	"github.com/tomtom215/meridian/internal/recommend/reranking"
	"github.com/tomtom215/meridian/internal/validation"
)

// Dependencies are the collaborators of the engine.
type Dependencies struct {
	// Interactions is the interaction log. Required.
	Interactions InteractionStore

	// Recommendations is the recommendation store. Required.
	Recommendations RecommendationStore

	// Preferences persists snapshots. Optional.
	Preferences PreferenceStore

	// Scheduler queues background analyses. Optional; without it
	// LogInteraction does not trigger re-analysis.
	Scheduler AnalysisScheduler

	// Items resolves item references. Optional.
	Items *ItemDirectory

	// Reranker defaults to the behavior reranker built from the config.
	Reranker Reranker

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Engine learns from user interactions and re-ranks stored recommendations.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	interactions    InteractionStore
	recommendations RecommendationStore
	preferences     PreferenceStore
	scheduler       AnalysisScheduler
	items           *ItemDirectory

	extractor *patterns.Extractor
	reranker  Reranker
	now       func() time.Time
}

// NewEngine creates a learning engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, deps Dependencies, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Interactions == nil {
		return nil, errors.New("interaction store is required")
	}
	if deps.Recommendations == nil {
		return nil, errors.New("recommendation store is required")
	}

	e := &Engine{
		config:          cfg.Clone(),
		logger:          logger.With().Str("component", "recommend").Logger(),
		interactions:    deps.Interactions,
		recommendations: deps.Recommendations,
		preferences:     deps.Preferences,
		scheduler:       deps.Scheduler,
		items:           deps.Items,
		extractor:       patterns.NewExtractor(cfg.patternsConfig()),
		reranker:        deps.Reranker,
		now:             deps.Clock,
	}
	if e.reranker == nil {
		e.reranker = reranking.NewBehavior(cfg.Adjust, cfg.MinInteractionCount)
	}
	if e.now == nil {
		e.now = time.Now
	}

	e.logger.Info().
		Str("reranker", e.reranker.Name()).
		Int("min_interactions", cfg.MinInteractionCount).
		Int("analysis_window", cfg.AnalysisWindow).
		Bool("background_analysis", e.scheduler != nil).
		Msg("recommendation engine initialized")

	return e, nil
}

// GetConfig returns a copy of the configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// LogInteraction persists an interaction, updates the matching
// recommendation's status flag and schedules a background re-analysis.
// Once the interaction is persisted it is returned; failures of the two
// follow-up steps are logged and do not fail the call.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func (e *Engine) LogInteraction(ctx context.Context, req LogRequest) (*models.Interaction, error) {
	if verr := validation.ValidateStruct(&req); verr != nil {
		rejected := e.requestLogger(ctx, req.UserID)
		rejected.Debug().Strs("fields", verr.Fields()).Msg("interaction rejected")
		return nil, fmt.Errorf("%w: %s", ErrValidation, verr.Error())
	}

	if logging.CorrelationIDFromContext(ctx) == "" {
		ctx = logging.ContextWithCorrelationID(ctx, logging.GenerateCorrelationID())
	}

	inter := e.newInteraction(&req)
	logger := e.requestLogger(ctx, inter.UserID).With().
		Str("item", inter.Item.String()).
		Str("action", string(inter.Action)).
		Logger()

	if err := e.interactions.InsertInteraction(ctx, inter); err != nil {
		return nil, fmt.Errorf("insert interaction: %w", err)
	}
	metrics.InteractionsLogged.WithLabelValues(string(inter.Item.ItemType), string(inter.Action)).Inc()

	e.markRecommendation(ctx, inter, logger)
	e.scheduleAnalysis(ctx, inter, logger)

	logger.Debug().Str("interaction_id", inter.ID).Msg("interaction logged")
	return inter, nil
}

// newInteraction builds the immutable interaction record for a validated request.
func (e *Engine) newInteraction(req *LogRequest) *models.Interaction {
	action := models.Action(req.Action)

	duration := req.Duration
	if action != models.ActionView {
		duration = 0
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = e.now()
	}

	var metadata map[string]string
	if len(req.Metadata) > 0 {
		metadata = make(map[string]string, len(req.Metadata))
		for k, v := range req.Metadata {
			metadata[k] = v
		}
	}

	return &models.Interaction{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Item:      models.ItemRef{ItemType: models.ItemType(req.ItemType), ItemID: req.ItemID},
		Action:    action,
		Duration:  duration,
		Timestamp: ts.UTC(),
		Context: models.InteractionContext{
			SourcePage:    req.SourcePage,
			Position:      req.Position,
			OriginalScore: req.OriginalScore,
			Metadata:      metadata,
		},
	}
}

// markRecommendation sets the status flag for actions that map to one.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) markRecommendation(ctx context.Context, inter *models.Interaction, logger zerolog.Logger) {
	var flags models.RecommendationMetadata
	if !flags.MarkAction(inter.Action) {
		return
	}

	err := e.recommendations.MarkInteraction(ctx, inter.UserID, inter.Item, inter.Action)
	switch {
	case err == nil:
		metrics.StatusFlagUpdates.WithLabelValues(string(inter.Action)).Inc()
	case errors.Is(err, ErrNotFound):
		logger.Debug().Msg("no recommendation to mark for interaction")
	default:
		logger.Warn().Err(err).Msg("failed to update recommendation status")
	}
}

// scheduleAnalysis queues a background re-analysis for the user and item type.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) scheduleAnalysis(ctx context.Context, inter *models.Interaction, logger zerolog.Logger) {
	if e.scheduler == nil {
		return
	}

	task := AnalysisTask{
		UserID:        inter.UserID,
		ItemType:      inter.Item.ItemType,
		RequestedAt:   e.now(),
		CorrelationID: logging.CorrelationIDFromContext(ctx),
	}
	if err := e.scheduler.ScheduleAnalysis(ctx, task); err != nil {
		metrics.RecordTask(metrics.TaskDropped)
		logger.Warn().Err(err).Msg("failed to schedule preference analysis")
		return
	}
	metrics.RecordTask(metrics.TaskScheduled)
}

// requestLogger returns the engine logger with user and correlation fields.
func (e *Engine) requestLogger(ctx context.Context, userID string) zerolog.Logger {
	lc := e.logger.With().Str("user_id", userID)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		lc = lc.Str("correlation_id", id)
	}
	return lc.Logger()
}

// validateUserType checks the common user and item type arguments.
func validateUserType(userID string, itemType models.ItemType) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if !itemType.Valid() {
		return fmt.Errorf("%w: unknown item type %q", ErrValidation, itemType)
	}
	return nil
}
