// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package reranking

import (
	"testing"

	"github.com/tomtom215/meridian/internal/models"
)

func rec(item string, score float64) models.Recommendation {
	return models.Recommendation{
		UserID: "u1",
		Item:   models.ItemRef{ItemType: models.ItemTypeJob, ItemID: item},
		Score:  score,
	}
}

func TestBehavior_Name(t *testing.T) {
	if got := NewBehavior(DefaultAdjustConfig(), 5).Name(); got != "behavior" {
		t.Errorf("Name() = %q, want behavior", got)
	}
}

func TestBehavior_Rerank(t *testing.T) {
	b := NewBehavior(DefaultAdjustConfig(), 5)
	// avg 60: above-average items gain up to 10 extra, weight term adds 1
	snap := snapshot(10, 10, 60)

	in := []models.Recommendation{
		rec("a", 55),
		rec("b", 90),
		rec("c", 70),
		rec("d", 70),
	}
	in[0].Metadata.Seen = true

	out := b.Rerank(in, snap)

	wantOrder := []string{"b", "c", "d", "a"}
	wantScores := []float64{97, 73, 73, 56}
	for i, id := range wantOrder {
		if out[i].Item.ItemID != id {
			t.Errorf("out[%d] = %s, want %s", i, out[i].Item.ItemID, id)
		}
		if diff := out[i].Score - wantScores[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("out[%d].Score = %v, want %v", i, out[i].Score, wantScores[i])
		}
		if out[i].Metadata.Ranking != i+1 {
			t.Errorf("out[%d].Ranking = %d, want %d", i, out[i].Metadata.Ranking, i+1)
		}
		if len(out[i].Reasons) != 1 || out[i].Reasons[0].Type != models.ReasonTypeBehavior {
			t.Errorf("out[%d].Reasons = %+v", i, out[i].Reasons)
		}
	}

	if !out[3].Metadata.Seen {
		t.Error("Seen flag lost during rerank")
	}
	if in[1].Score != 90 || in[1].Metadata.Ranking != 0 || len(in[1].Reasons) != 0 {
		t.Error("input recommendations were modified")
	}
}

func TestBehavior_RerankEmpty(t *testing.T) {
	out := NewBehavior(DefaultAdjustConfig(), 5).Rerank(nil, snapshot(10, 10, 60))
	if len(out) != 0 {
		t.Errorf("Rerank(nil) = %+v, want empty", out)
	}
}
