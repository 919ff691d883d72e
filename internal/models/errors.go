// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package models

import "errors"

// ErrNotFound is returned by stores and lookups when a keyed record does not exist.
var ErrNotFound = errors.New("not found")
