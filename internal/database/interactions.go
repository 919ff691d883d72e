// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/meridian/internal/database/query"
	"github.com/tomtom215/meridian/internal/metrics"
	"github.com/tomtom215/meridian/internal/models"
)

const interactionsTable = "interactions"

const interactionColumns = "id, user_id, item_type, item_id, action, duration, source_page, position, original_score, metadata, created_at"

// InsertInteraction appends one interaction.
func (db *DB) InsertInteraction(ctx context.Context, inter *models.Interaction) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", interactionsTable, time.Since(start), err) }()

	metadata, err := encodeMetadata(inter.Context.Metadata)
	if err != nil {
		return err
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	_, err = db.conn.ExecContext(ctx,
		"INSERT INTO interactions ("+interactionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		inter.ID,
		inter.UserID,
		string(inter.Item.ItemType),
		inter.Item.ItemID,
		string(inter.Action),
		inter.Duration,
		inter.Context.SourcePage,
		inter.Context.Position,
		inter.Context.OriginalScore,
		metadata,
		inter.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// CountInteractions counts a user's interactions with one item type.
func (db *DB) CountInteractions(ctx context.Context, userID string, itemType models.ItemType) (count int, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("count", interactionsTable, time.Since(start), err) }()

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM interactions WHERE user_id = ? AND item_type = ?",
		userID, string(itemType),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return count, nil
}

// RecentInteractions returns up to limit interactions, newest first.
func (db *DB) RecentInteractions(ctx context.Context, userID string, itemType models.ItemType, limit int) ([]models.Interaction, error) {
	return db.queryInteractions(ctx, "recent", models.InteractionFilter{
		UserID:   userID,
		ItemType: &itemType,
		Limit:    limit,
	})
}

// QueryInteractions returns interactions matching filter, newest first.
func (db *DB) QueryInteractions(ctx context.Context, filter models.InteractionFilter) ([]models.Interaction, error) {
	return db.queryInteractions(ctx, "query", filter)
}

func (db *DB) queryInteractions(ctx context.Context, operation string, filter models.InteractionFilter) (out []models.Interaction, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery(operation, interactionsTable, time.Since(start), err) }()

	where, args := interactionWhere(filter.UserID, filter.ItemType, filter.Action, filter.Since, filter.Until).BuildWithPrefix()
	sqlStr := "SELECT " + interactionColumns + " FROM interactions " + where + " ORDER BY created_at DESC, seq DESC"
	if filter.Limit > 0 {
		sqlStr += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		sqlStr += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer closeWithLog(rows, db.logger, "rows")

	for rows.Next() {
		inter, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return out, nil
}

// ActionSummary returns the count and average duration per action.
func (db *DB) ActionSummary(ctx context.Context, userID string, itemType *models.ItemType, since *time.Time) (out map[models.Action]models.ActionCount, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("summary", interactionsTable, time.Since(start), err) }()

	where, args := interactionWhere(userID, itemType, nil, since, nil).BuildWithPrefix()

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		"SELECT action, COUNT(*), COALESCE(AVG(duration), 0) FROM interactions "+where+" GROUP BY action",
		args...)
	if err != nil {
		return nil, fmt.Errorf("summarize interactions: %w", err)
	}
	defer closeWithLog(rows, db.logger, "rows")

	out = make(map[models.Action]models.ActionCount)
	for rows.Next() {
		var action string
		var c models.ActionCount
		if err := rows.Scan(&action, &c.Count, &c.AvgDuration); err != nil {
			return nil, fmt.Errorf("scan action summary: %w", err)
		}
		out[models.Action(action)] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate action summary: %w", err)
	}
	return out, nil
}

// DeleteInteractionsBefore deletes interactions created before cutoff.
func (db *DB) DeleteInteractionsBefore(ctx context.Context, cutoff time.Time) (deleted int64, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", interactionsTable, time.Since(start), err) }()

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, "DELETE FROM interactions WHERE created_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete interactions: %w", err)
	}
	deleted, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete interactions: %w", err)
	}
	return deleted, nil
}

func interactionWhere(userID string, itemType *models.ItemType, action *models.Action, since, until *time.Time) *query.WhereBuilder {
	wb := query.NewWhereBuilder().AddEquals("user_id", userID)
	if itemType != nil {
		wb.AddEquals("item_type", string(*itemType))
	}
	if action != nil {
		wb.AddEquals("action", string(*action))
	}
	return wb.AddTimeRange("created_at", since, until)
}

func scanInteraction(rows *sql.Rows) (*models.Interaction, error) {
	var (
		inter                    models.Interaction
		itemType, action         string
		sourcePage, metadataJSON sql.NullString
	)
	err := rows.Scan(
		&inter.ID,
		&inter.UserID,
		&itemType,
		&inter.Item.ItemID,
		&action,
		&inter.Duration,
		&sourcePage,
		&inter.Context.Position,
		&inter.Context.OriginalScore,
		&metadataJSON,
		&inter.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("scan interaction: %w", err)
	}

	inter.Item.ItemType = models.ItemType(itemType)
	inter.Action = models.Action(action)
	inter.Context.SourcePage = sourcePage.String
	inter.Timestamp = inter.Timestamp.UTC()

	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &inter.Context.Metadata); err != nil {
			return nil, fmt.Errorf("decode interaction metadata: %w", err)
		}
	}
	return &inter, nil
}

func encodeMetadata(m map[string]string) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode interaction metadata: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
