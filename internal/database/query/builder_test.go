// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package query

import (
	"testing"
	"time"
)

func TestWhereBuilder_Empty(t *testing.T) {
	where, args := NewWhereBuilder().Build()
	if where != "1=1" || len(args) != 0 {
		t.Errorf("Build() = %q, %v, want 1=1 and no args", where, args)
	}
}

func TestWhereBuilder(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 2, 1, 0, 0, 0, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		name      string
		build     func(*WhereBuilder)
		wantWhere string
		wantArgs  int
	}{
		{
			name:      "equals skips empty values",
			build:     func(wb *WhereBuilder) { wb.AddEquals("user_id", "u1").AddEquals("action", "") },
			wantWhere: "user_id = ?",
			wantArgs:  1,
		},
		{
			name:      "time range",
			build:     func(wb *WhereBuilder) { wb.AddTimeRange("created_at", &since, &until) },
			wantWhere: "created_at >= ? AND created_at <= ?",
			wantArgs:  2,
		},
		{
			name:      "open ended range",
			build:     func(wb *WhereBuilder) { wb.AddTimeRange("created_at", nil, &until) },
			wantWhere: "created_at <= ?",
			wantArgs:  1,
		},
		{
			name: "combined",
			build: func(wb *WhereBuilder) {
				wb.AddEquals("user_id", "u1").AddClause("duration > ?", 30).AddTimeRange("created_at", &since, nil)
			},
			wantWhere: "user_id = ? AND duration > ? AND created_at >= ?",
			wantArgs:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := NewWhereBuilder()
			tt.build(wb)

			where, args := wb.Build()
			if where != tt.wantWhere {
				t.Errorf("where = %q, want %q", where, tt.wantWhere)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestWhereBuilder_TimeRangeUTC(t *testing.T) {
	local := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("EST", -5*3600))
	_, args := NewWhereBuilder().AddTimeRange("created_at", &local, nil).Build()

	got, ok := args[0].(time.Time)
	if !ok || got.Location() != time.UTC || !got.Equal(local) {
		t.Errorf("arg = %v, want %v in UTC", args[0], local)
	}
}

func TestWhereBuilder_BuildWithPrefix(t *testing.T) {
	where, _ := NewWhereBuilder().AddEquals("item_type", "job").BuildWithPrefix()
	if where != "WHERE item_type = ?" {
		t.Errorf("BuildWithPrefix() = %q", where)
	}
}
