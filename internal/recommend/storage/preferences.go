// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/meridian/internal/models"
	"github.com/tomtom215/meridian/internal/recommend"
)

// SavePreferences stores the latest snapshot for its user and item type.
func (s *Store) SavePreferences(ctx context.Context, snap *models.PreferenceSnapshot) error {
	if snap == nil {
		return errors.New("nil preference snapshot")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	return s.update(ctx, "save_preferences", func(txn *badger.Txn) error {
		return txn.Set(prefKey(snap.UserID, snap.ItemType), data)
	})
}

// LoadPreferences returns the stored snapshot or recommend.ErrNotFound.
func (s *Store) LoadPreferences(ctx context.Context, userID string, itemType models.ItemType) (*models.PreferenceSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap models.PreferenceSnapshot
	err := s.execute("load_preferences", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get(prefKey(userID, itemType))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("preferences for %s/%s: %w", userID, itemType, recommend.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("get preferences: %w", err)
			}
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, &snap)
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
