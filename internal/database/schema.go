// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/meridian/internal/models"
)

// itemTables maps each item type to its catalog table.
var itemTables = map[models.ItemType]string{
	models.ItemTypeJob:       "jobs",
	models.ItemTypeCourse:    "courses",
	models.ItemTypeCandidate: "candidates",
}

func schemaStatements() []string {
	stmts := []string{
		"CREATE SEQUENCE IF NOT EXISTS interactions_seq START 1",
		`CREATE TABLE IF NOT EXISTS interactions (
			seq BIGINT DEFAULT nextval('interactions_seq'),
			id VARCHAR PRIMARY KEY,
			user_id VARCHAR NOT NULL,
			item_type VARCHAR NOT NULL,
			item_id VARCHAR NOT NULL,
			action VARCHAR NOT NULL,
			duration INTEGER NOT NULL DEFAULT 0,
			source_page VARCHAR,
			position INTEGER NOT NULL DEFAULT 0,
			original_score DOUBLE NOT NULL DEFAULT 0,
			metadata VARCHAR,
			created_at TIMESTAMP NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS idx_interactions_user_type_time ON interactions(user_id, item_type, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_interactions_created_at ON interactions(created_at)",
	}

	for _, t := range models.ItemTypes {
		stmts = append(stmts, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR PRIMARY KEY,
			title VARCHAR NOT NULL,
			category VARCHAR,
			updated_at TIMESTAMP NOT NULL
		)`, itemTables[t]))
	}
	return stmts
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements() {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
