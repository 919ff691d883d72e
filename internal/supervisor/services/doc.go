// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package services adapts Meridian components to suture.Service.
//
// Each service blocks in Serve until its context is cancelled and returns an
// error on unexpected termination so the supervisor restarts it.
package services
