// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package query

import (
	"strings"
	"time"
)

// WhereBuilder accumulates AND-joined conditions and their arguments.
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder returns an empty builder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// AddClause adds a raw condition with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddEquals adds "column = ?" when value is not empty.
func (wb *WhereBuilder) AddEquals(column, value string) *WhereBuilder {
	if value == "" {
		return wb
	}
	return wb.AddClause(column+" = ?", value)
}

// AddTimeRange adds inclusive bounds on column. Nil bounds are skipped.
func (wb *WhereBuilder) AddTimeRange(column string, since, until *time.Time) *WhereBuilder {
	if since != nil {
		wb.AddClause(column+" >= ?", since.UTC())
	}
	if until != nil {
		wb.AddClause(column+" <= ?", until.UTC())
	}
	return wb
}

// Build returns the joined conditions and arguments. An empty builder
// yields "1=1".
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix is Build with a leading "WHERE ".
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	where, args := wb.Build()
	return "WHERE " + where, args
}
