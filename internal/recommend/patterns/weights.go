// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package patterns

import (
	"fmt"

	"github.com/tomtom215/meridian/internal/models"
)

// ActionWeights assigns a signed weight to every action.
// Ignore is the only action allowed to carry a negative weight.
type ActionWeights struct {
	Apply  float64 `json:"apply"`
	Like   float64 `json:"like"`
	Save   float64 `json:"save"`
	View   float64 `json:"view"`
	Ignore float64 `json:"ignore"`
}

// DefaultActionWeights returns the production weight table.
func DefaultActionWeights() ActionWeights {
	return ActionWeights{
		Apply:  2.0,
		Like:   1.5,
		Save:   1.2,
		View:   0.5,
		Ignore: -1.0,
	}
}

// Weight returns the weight of an action. Unknown actions weigh 0.
func (w ActionWeights) Weight(a models.Action) float64 {
	switch a {
	case models.ActionApply:
		return w.Apply
	case models.ActionLike:
		return w.Like
	case models.ActionSave:
		return w.Save
	case models.ActionView:
		return w.View
	case models.ActionIgnore:
		return w.Ignore
	}
	return 0
}

// Validate checks that positive signals are non-negative and ignore is not positive.
func (w ActionWeights) Validate() error {
	for _, a := range []models.Action{models.ActionApply, models.ActionLike, models.ActionSave, models.ActionView} {
		if w.Weight(a) < 0 {
			return fmt.Errorf("weight for %s must be non-negative, got %v", a, w.Weight(a))
		}
	}
	if w.Ignore > 0 {
		return fmt.Errorf("weight for ignore must not be positive, got %v", w.Ignore)
	}
	return nil
}
