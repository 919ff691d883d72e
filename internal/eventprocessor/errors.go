// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package eventprocessor

import "errors"

var (
	// ErrNotRunning is returned when a task is scheduled while the router is stopped.
	ErrNotRunning = errors.New("analysis router not running")

	// ErrInvalidConfig is returned when configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMalformedTask marks a payload that cannot be decoded into a task.
	ErrMalformedTask = errors.New("malformed analysis task")

	// ErrTaskPoisoned wraps a task that exhausted its retries.
	ErrTaskPoisoned = errors.New("analysis task poisoned")
)
