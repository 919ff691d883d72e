// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/meridian/internal/models"
	"github.com/tomtom215/meridian/internal/recommend"
)

// UpsertRecommendations writes recs in one transaction. Flags already set on
// a stored copy are kept, as are its CreatedAt and, when the incoming record
// is unranked, its ranking. A record whose expiry has passed is deleted
// instead of written.
func (s *Store) UpsertRecommendations(ctx context.Context, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	now := s.now()
	return s.update(ctx, "upsert_recommendations", func(txn *badger.Txn) error {
		for i := range recs {
			rec := recs[i].Clone()
			key := recKey(rec.UserID, rec.Item)

			stored, err := readRecommendation(txn, key)
			switch {
			case err == nil:
				mergeStored(&rec, stored)
			case !errors.Is(err, recommend.ErrNotFound):
				return err
			}

			if err := writeRecommendation(txn, key, &rec, now); err != nil {
				return fmt.Errorf("write %s: %w", rec.Item, err)
			}
		}
		return nil
	})
}

// mergeStored carries the set flags, CreatedAt and the ranking of a stored
// copy into rec. A ranking on rec wins over the stored one.
func mergeStored(rec, stored *models.Recommendation) {
	rec.Metadata.MergeFlags(stored.Metadata)
	if !stored.CreatedAt.IsZero() {
		rec.CreatedAt = stored.CreatedAt
	}
	if rec.Metadata.Ranking == 0 {
		rec.Metadata.Ranking = stored.Metadata.Ranking
	}
}

// GetRecommendation returns one unexpired recommendation.
func (s *Store) GetRecommendation(ctx context.Context, userID string, ref models.ItemRef) (*models.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec *models.Recommendation
	err := s.execute("get_recommendation", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			r, err := readRecommendation(txn, recKey(userID, ref))
			if err != nil {
				return err
			}
			if expired(r, s.now()) {
				return fmt.Errorf("recommendation %s: %w", ref, recommend.ErrNotFound)
			}
			rec = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRecommendations returns up to limit unexpired recommendations ordered
// by ranking (unranked last), then score descending, then item id. A limit
// of zero or less returns all of them.
func (s *Store) ListRecommendations(ctx context.Context, userID string, itemType models.ItemType, limit int) ([]models.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	var recs []models.Recommendation
	err := s.execute("list_recommendations", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()

			prefix := recPrefix(userID, itemType)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				var rec models.Recommendation
				if err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &rec)
				}); err != nil {
					return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
				}
				if !expired(&rec, now) {
					recs = append(recs, rec)
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	SortRecommendations(recs)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// SortRecommendations orders recs by ranking with unranked entries last,
// then by score descending, then by item id.
func SortRecommendations(recs []models.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := recs[i].Metadata.Ranking, recs[j].Metadata.Ranking
		if ri != rj {
			if ri == 0 {
				return false
			}
			if rj == 0 {
				return true
			}
			return ri < rj
		}
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Item.ItemID < recs[j].Item.ItemID
	})
}

// MarkInteraction sets the status flag mapped to action. Actions without a
// flag are ignored.
func (s *Store) MarkInteraction(ctx context.Context, userID string, ref models.ItemRef, action models.Action) error {
	var flags models.RecommendationMetadata
	if !flags.MarkAction(action) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	now := s.now()
	return s.update(ctx, "mark_interaction", func(txn *badger.Txn) error {
		key := recKey(userID, ref)
		rec, err := readRecommendation(txn, key)
		if err != nil {
			return err
		}
		if expired(rec, now) {
			return fmt.Errorf("recommendation %s: %w", ref, recommend.ErrNotFound)
		}

		before := rec.Metadata
		rec.Metadata.MarkAction(action)
		if rec.Metadata == before {
			return nil
		}
		return writeRecommendation(txn, key, rec, now)
	})
}

// DeleteRecommendation removes a recommendation. Deleting a missing key is
// not an error.
func (s *Store) DeleteRecommendation(ctx context.Context, userID string, ref models.ItemRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.update(ctx, "delete_recommendation", func(txn *badger.Txn) error {
		return txn.Delete(recKey(userID, ref))
	})
}

func readRecommendation(txn *badger.Txn, key []byte) (*models.Recommendation, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("recommendation %s: %w", key, recommend.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get recommendation: %w", err)
	}

	var rec models.Recommendation
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("decode recommendation: %w", err)
	}
	return &rec, nil
}

func writeRecommendation(txn *badger.Txn, key []byte, rec *models.Recommendation, now time.Time) error {
	if expired(rec, now) {
		return txn.Delete(key)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	entry := badger.NewEntry(key, data)
	if !rec.ExpiresAt.IsZero() {
		entry = entry.WithTTL(rec.ExpiresAt.Sub(now))
	}
	return txn.SetEntry(entry)
}

func expired(rec *models.Recommendation, now time.Time) bool {
	return !rec.ExpiresAt.IsZero() && !rec.ExpiresAt.After(now)
}
