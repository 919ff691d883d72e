// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/meridian/internal/models"
)

// ItemLookup resolves item ids of one item type.
type ItemLookup interface {
	LookupItem(ctx context.Context, itemID string) (*models.ItemSummary, error)
}

// ItemLookupFunc adapts a function to ItemLookup.
type ItemLookupFunc func(ctx context.Context, itemID string) (*models.ItemSummary, error)

// LookupItem calls f.
func (f ItemLookupFunc) LookupItem(ctx context.Context, itemID string) (*models.ItemSummary, error) {
	return f(ctx, itemID)
}

// ItemDirectory resolves item references through a per-type lookup table.
// It is safe for concurrent use.
type ItemDirectory struct {
	mu      sync.RWMutex
	lookups map[models.ItemType]ItemLookup
}

// NewItemDirectory creates an empty directory.
func NewItemDirectory() *ItemDirectory {
	return &ItemDirectory{lookups: make(map[models.ItemType]ItemLookup)}
}

// Register sets the lookup for an item type, replacing any previous one.
func (d *ItemDirectory) Register(itemType models.ItemType, lookup ItemLookup) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups[itemType] = lookup
}

// Types returns the registered item types in canonical order.
func (d *ItemDirectory) Types() []models.ItemType {
	d.mu.RLock()
	defer d.mu.RUnlock()

	types := make([]models.ItemType, 0, len(d.lookups))
	for _, t := range models.ItemTypes {
		if _, ok := d.lookups[t]; ok {
			types = append(types, t)
		}
	}
	return types
}

// Resolve looks up the item a reference points to.
func (d *ItemDirectory) Resolve(ctx context.Context, ref models.ItemRef) (*models.ItemSummary, error) {
	d.mu.RLock()
	lookup, ok := d.lookups[ref.ItemType]
	d.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoLookup, ref.ItemType)
	}

	item, err := lookup.LookupItem(ctx, ref.ItemID)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ref, err)
	}
	return item, nil
}
