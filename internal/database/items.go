// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/meridian/internal/metrics"
	"github.com/tomtom215/meridian/internal/models"
)

// ItemCatalog reads and writes the per-type item tables.
type ItemCatalog struct {
	db *DB
}

// Items returns the catalog backed by db.
func (db *DB) Items() *ItemCatalog {
	return &ItemCatalog{db: db}
}

// UpsertItem inserts or replaces an item summary. A zero UpdatedAt is set to now.
func (c *ItemCatalog) UpsertItem(ctx context.Context, item models.ItemSummary) (err error) {
	table, ok := itemTables[item.Ref.ItemType]
	if !ok {
		return fmt.Errorf("unknown item type %q", item.Ref.ItemType)
	}
	if item.Ref.ItemID == "" {
		return errors.New("item id is required")
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", table, time.Since(start), err) }()

	updated := item.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	_, err = c.db.conn.ExecContext(ctx,
		"INSERT INTO "+table+" (id, title, category, updated_at) VALUES (?, ?, ?, ?) "+
			"ON CONFLICT (id) DO UPDATE SET title = excluded.title, category = excluded.category, updated_at = excluded.updated_at",
		item.Ref.ItemID, item.Title, item.Category, updated.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", item.Ref, err)
	}
	return nil
}

// Get returns one item or models.ErrNotFound.
func (c *ItemCatalog) Get(ctx context.Context, ref models.ItemRef) (item *models.ItemSummary, err error) {
	table, ok := itemTables[ref.ItemType]
	if !ok {
		return nil, fmt.Errorf("unknown item type %q", ref.ItemType)
	}

	start := time.Now()
	defer func() {
		recorded := err
		if errors.Is(err, models.ErrNotFound) {
			recorded = nil
		}
		metrics.RecordDBQuery("get", table, time.Since(start), recorded)
	}()

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var category sql.NullString
	item = &models.ItemSummary{Ref: ref}
	err = c.db.conn.QueryRowContext(ctx,
		"SELECT title, category, updated_at FROM "+table+" WHERE id = ?", ref.ItemID,
	).Scan(&item.Title, &category, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", ref, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", ref, err)
	}

	item.Category = category.String
	item.UpdatedAt = item.UpdatedAt.UTC()
	return item, nil
}

// Lookup returns a lookup bound to one item type, suitable for
// recommend.ItemDirectory.Register.
func (c *ItemCatalog) Lookup(itemType models.ItemType) *TypeLookup {
	return &TypeLookup{catalog: c, itemType: itemType}
}

// TypeLookup resolves item ids of a single type.
type TypeLookup struct {
	catalog  *ItemCatalog
	itemType models.ItemType
}

// LookupItem implements recommend.ItemLookup.
func (l *TypeLookup) LookupItem(ctx context.Context, itemID string) (*models.ItemSummary, error) {
	return l.catalog.Get(ctx, models.ItemRef{ItemType: l.itemType, ItemID: itemID})
}
