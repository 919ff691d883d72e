// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package reranking

import (
	"fmt"
	"time"

	"github.com/tomtom215/meridian/internal/models"
)

// highStrengthInteractions is the interaction count at which a behavior
// reason is reported with high strength.
const highStrengthInteractions = 20

// UpdateReasons returns reasons with exactly one behavior reason derived from
// snap, replacing any existing one in place. When snap is nil or backed by
// fewer than minInteractions interactions, a copy of reasons is returned.
func UpdateReasons(reasons []models.Reason, snap *models.PreferenceSnapshot, minInteractions int) []models.Reason {
	out := make([]models.Reason, 0, len(reasons)+1)
	if snap == nil || snap.InteractionCount < minInteractions {
		return append(out, reasons...)
	}

	behavior := BehaviorReason(snap)
	replaced := false
	for i := range reasons {
		if reasons[i].Type != models.ReasonTypeBehavior {
			out = append(out, reasons[i])
			continue
		}
		if !replaced {
			out = append(out, behavior)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, behavior)
	}
	return out
}

// BehaviorReason builds the behavior reason for a snapshot.
func BehaviorReason(snap *models.PreferenceSnapshot) models.Reason {
	strength := models.StrengthMedium
	if snap.InteractionCount >= highStrengthInteractions {
		strength = models.StrengthHigh
	}

	return models.Reason{
		Type:     models.ReasonTypeBehavior,
		Message:  behaviorMessage(snap),
		Strength: strength,
		Details: map[string]any{
			"interactionCount": snap.InteractionCount,
			"dominantAction":   string(snap.InteractionWeights.DominantAction),
			"lastAnalyzed":     snap.LastAnalyzed.UTC().Format(time.RFC3339),
		},
	}
}

var actionPhrases = map[models.Action]string{
	models.ActionApply: "apply to",
	models.ActionLike:  "like",
	models.ActionSave:  "save",
	models.ActionView:  "browse",
}

func behaviorMessage(snap *models.PreferenceSnapshot) string {
	noun := string(snap.ItemType) + "s"
	prefix := fmt.Sprintf("Ranked from your last %d interactions", snap.InteractionCount)

	dominant := snap.InteractionWeights.DominantAction
	if dominant == models.ActionIgnore {
		return fmt.Sprintf("%s: you have skipped most %s lately, so closer matches come first", prefix, noun)
	}

	phrase, ok := actionPhrases[dominant]
	if !ok {
		return prefix
	}
	return fmt.Sprintf("%s: you mostly %s %s in the %s", prefix, phrase, noun, snap.Patterns.TimeBased.PreferredTime)
}
