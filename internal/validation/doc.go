// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package validation validates request structs with go-playground/validator v10.
//
// A single validator instance is shared by the process. It registers the
// domain validators used by the recommendation engine:
//
//   - item_type: value is a supported models.ItemType (job, course, candidate)
//   - action: value is a supported models.Action (view, like, apply, ignore, save)
//
// Example:
//
//	type LogRequest struct {
//	    UserID   string `validate:"required,max=128"`
//	    ItemType string `validate:"required,item_type"`
//	    Action   string `validate:"required,action"`
//	    Duration int    `validate:"gte=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    return fmt.Errorf("%w: %s", recommend.ErrValidation, verr.Error())
//	}
package validation
