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

// Engagement level thresholds by total interactions.
const (
	beginnerThreshold     = 5
	intermediateThreshold = 20
	expertThreshold       = 50
)

// GetUserStats aggregates the user's interactions into counts, conversion
// rates and an engagement score, and attaches the current snapshot.
//
//nolint:gocritic // hugeParam: opts passed by value for simplicity
func (e *Engine) GetUserStats(ctx context.Context, userID string, opts StatsOptions) (*models.UserStats, error) {
	itemType := models.ItemTypeJob
	if opts.ItemType != nil {
		itemType = *opts.ItemType
	}
	if err := validateUserType(userID, itemType); err != nil {
		return nil, err
	}

	counts, err := e.interactions.ActionSummary(ctx, userID, opts.ItemType, opts.Since)
	if err != nil {
		return nil, fmt.Errorf("summarize interactions: %w", err)
	}

	prefs, err := e.AnalyzeUserPreferences(ctx, userID, itemType)
	if err != nil {
		return nil, err
	}

	return BuildUserStats(userID, counts, prefs), nil
}

// BuildUserStats derives stats from per-action counts.
func BuildUserStats(userID string, counts map[models.Action]models.ActionCount, prefs *models.PreferenceSnapshot) *models.UserStats {
	actions := make(map[models.Action]models.ActionCount, len(models.Actions))
	total := 0
	for _, a := range models.Actions {
		actions[a] = counts[a]
		total += counts[a].Count
	}

	conversion := ConversionRates(actions)
	level, insufficient := EngagementLevelFor(total)

	summary := models.StatsSummary{
		TotalInteractions: total,
		EngagementScore:   EngagementScore(total, conversion.ViewToApply),
		EngagementLevel:   level,
		InsufficientData:  insufficient,
		MostCommonAction:  mostCommonAction(actions),
	}
	if prefs != nil {
		summary.PreferredTime = prefs.Patterns.TimeBased.PreferredTime
	}

	return &models.UserStats{
		UserID:      userID,
		Actions:     actions,
		Conversion:  conversion,
		Preferences: prefs,
		Summary:     summary,
	}
}

// ConversionRates computes funnel percentages. A rate is 0 when its
// denominator is 0.
func ConversionRates(counts map[models.Action]models.ActionCount) models.ConversionRates {
	views := counts[models.ActionView].Count
	likes := counts[models.ActionLike].Count
	applies := counts[models.ActionApply].Count

	return models.ConversionRates{
		ViewToLike:  percentage(likes, views),
		ViewToApply: percentage(applies, views),
		LikeToApply: percentage(applies, likes),
	}
}

func percentage(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}

// EngagementScore combines volume and view-to-apply conversion into a
// 0-10 score rounded to one decimal. It is 0 without interactions.
func EngagementScore(total int, viewToApply float64) float64 {
	if total == 0 {
		return 0
	}
	volume := math.Min(float64(total)/10, 10)
	conversion := math.Min(viewToApply/5, 10)
	return math.Round(((volume+conversion)/2)*10) / 10
}

// EngagementLevelFor classifies a user by total interactions. The second
// result reports that the total is below the analysis threshold.
func EngagementLevelFor(total int) (models.EngagementLevel, bool) {
	switch {
	case total < beginnerThreshold:
		return models.EngagementBeginner, true
	case total < intermediateThreshold:
		return models.EngagementBeginner, false
	case total < expertThreshold:
		return models.EngagementIntermediate, false
	default:
		return models.EngagementExpert, false
	}
}

// mostCommonAction returns the most frequent action, ties in action order.
func mostCommonAction(counts map[models.Action]models.ActionCount) models.Action {
	var best models.Action
	bestCount := 0
	for _, a := range models.Actions {
		if counts[a].Count > bestCount {
			best, bestCount = a, counts[a].Count
		}
	}
	return best
}
