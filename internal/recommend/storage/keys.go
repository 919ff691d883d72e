// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package storage

import (
	"net/url"

	"github.com/tomtom215/meridian/internal/models"
)

const (
	recKeyPrefix  = "rec:"
	prefKeyPrefix = "pref:"
)

func segment(s string) string {
	return url.QueryEscape(s)
}

// recPrefix covers every recommendation of one user and item type.
func recPrefix(userID string, itemType models.ItemType) []byte {
	return []byte(recKeyPrefix + segment(userID) + ":" + segment(string(itemType)) + ":")
}

func recKey(userID string, ref models.ItemRef) []byte {
	return append(recPrefix(userID, ref.ItemType), segment(ref.ItemID)...)
}

func prefKey(userID string, itemType models.ItemType) []byte {
	return []byte(prefKeyPrefix + segment(userID) + ":" + segment(string(itemType)))
}
