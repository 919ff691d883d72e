// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

// Package query builds parameterized SQL WHERE clauses for the database package.
//
//	wb := query.NewWhereBuilder()
//	wb.AddEquals("user_id", filter.UserID)
//	wb.AddTimeRange("created_at", filter.Since, filter.Until)
//	where, args := wb.Build()
//	// where: "user_id = ? AND created_at >= ? AND created_at <= ?"
//
// Column names are written by the caller and never taken from input; every
// value is bound through a ? placeholder.
package query
