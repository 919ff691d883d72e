// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package recommend

import (
	"errors"

	"github.com/tomtom215/meridian/internal/models"
)

// Error taxonomy of the engine. Callers match with errors.Is.
var (
	// ErrValidation wraps rejected input. The message carries field details.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means a keyed record does not exist. Stores return it for
	// missing recommendations, items and preference profiles.
	ErrNotFound = models.ErrNotFound

	// ErrStoreUnavailable marks a transient store failure, such as an open
	// circuit breaker. Retrying later may succeed.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNoLookup means no item lookup is registered for an item type.
	ErrNoLookup = errors.New("no item lookup registered")
)
