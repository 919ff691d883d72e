// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package validation

import (
	"strings"
	"testing"
)

type logRequest struct {
	UserID   string `validate:"required,max=16"`
	ItemType string `validate:"required,item_type"`
	Action   string `validate:"required,action"`
	Duration int    `validate:"gte=0"`
	Position int    `validate:"min=0"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	valid := logRequest{UserID: "u1", ItemType: "job", Action: "apply"}

	tests := []struct {
		name       string
		modify     func(*logRequest)
		wantFields []string
		wantMsg    string
	}{
		{
			name:   "valid",
			modify: func(r *logRequest) {},
		},
		{
			name:       "missing user",
			modify:     func(r *logRequest) { r.UserID = "" },
			wantFields: []string{"UserID"},
			wantMsg:    "UserID is required",
		},
		{
			name:       "unknown item type",
			modify:     func(r *logRequest) { r.ItemType = "movie" },
			wantFields: []string{"ItemType"},
			wantMsg:    "ItemType must be one of: job, course, candidate",
		},
		{
			name:       "unknown action",
			modify:     func(r *logRequest) { r.Action = "share" },
			wantFields: []string{"Action"},
			wantMsg:    "Action must be one of",
		},
		{
			name:       "negative duration",
			modify:     func(r *logRequest) { r.Duration = -1 },
			wantFields: []string{"Duration"},
			wantMsg:    "Duration must be greater than or equal to 0",
		},
		{
			name:       "long user id",
			modify:     func(r *logRequest) { r.UserID = strings.Repeat("x", 17) },
			wantFields: []string{"UserID"},
			wantMsg:    "UserID must be at most 16 characters",
		},
		{
			name: "multiple failures",
			modify: func(r *logRequest) {
				r.ItemType = ""
				r.Position = -2
			},
			wantFields: []string{"ItemType", "Position"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.modify(&req)

			verr := ValidateStruct(&req)
			if len(tt.wantFields) == 0 {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			fields := verr.Fields()
			if len(fields) != len(tt.wantFields) {
				t.Fatalf("Fields() = %v, want %v", fields, tt.wantFields)
			}
			for i := range fields {
				if fields[i] != tt.wantFields[i] {
					t.Errorf("Fields()[%d] = %s, want %s", i, fields[i], tt.wantFields[i])
				}
			}
			if tt.wantMsg != "" && !strings.Contains(verr.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want to contain %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRequestValidationError_EmptyMessage(t *testing.T) {
	verr := &RequestValidationError{}
	if verr.Error() != "validation failed" {
		t.Errorf("Error() = %q", verr.Error())
	}
}
