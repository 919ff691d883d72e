// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/meridian/internal/metrics"
	"github.com/tomtom215/meridian/internal/models"
	"github.com/tomtom215/meridian/internal/recommend"
)

var testNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestStore(t *testing.T) (*Store, *testClock) {
	t.Helper()

	clock := &testClock{now: testNow}
	s, err := Open(Config{InMemory: true, BreakerFailures: 2, BreakerTimeout: time.Minute, Clock: clock.Now}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, clock
}

func job(id string) models.ItemRef {
	return models.ItemRef{ItemType: models.ItemTypeJob, ItemID: id}
}

func rec(user, id string, score float64, ranking int) models.Recommendation {
	return models.Recommendation{
		UserID:     user,
		Item:       job(id),
		Score:      score,
		Confidence: 0.5,
		Reasons:    []models.Reason{{Type: "skill_match", Message: "Go", Strength: models.StrengthHigh}},
		Metadata:   models.RecommendationMetadata{Algorithm: "hybrid", Ranking: ranking},
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
		ExpiresAt:  testNow.Add(7 * 24 * time.Hour),
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(Config{}, zerolog.Nop()); err == nil {
		t.Error("Open() without path or in-memory should fail")
	}
}

func TestUpsertAndGet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertRecommendations(ctx, []models.Recommendation{rec("u1", "j1", 80, 0)}); err != nil {
		t.Fatalf("UpsertRecommendations() error: %v", err)
	}

	got, err := s.GetRecommendation(ctx, "u1", job("j1"))
	if err != nil {
		t.Fatalf("GetRecommendation() error: %v", err)
	}
	if got.Score != 80 || got.Metadata.Algorithm != "hybrid" || len(got.Reasons) != 1 {
		t.Errorf("GetRecommendation() = %+v", got)
	}

	_, err = s.GetRecommendation(ctx, "u1", job("missing"))
	if !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("missing error = %v, want ErrNotFound", err)
	}
}

func TestUpsert_PreservesFlagsAndCreatedAt(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	original := rec("u1", "j1", 60, 0)
	if err := s.UpsertRecommendations(ctx, []models.Recommendation{original}); err != nil {
		t.Fatalf("UpsertRecommendations() error: %v", err)
	}
	if err := s.MarkInteraction(ctx, "u1", job("j1"), models.ActionView); err != nil {
		t.Fatalf("MarkInteraction() error: %v", err)
	}

	updated := rec("u1", "j1", 75, 1)
	updated.CreatedAt = testNow.Add(time.Hour)
	if err := s.UpsertRecommendations(ctx, []models.Recommendation{updated}); err != nil {
		t.Fatalf("UpsertRecommendations() error: %v", err)
	}

	got, err := s.GetRecommendation(ctx, "u1", job("j1"))
	if err != nil {
		t.Fatalf("GetRecommendation() error: %v", err)
	}
	if !got.Metadata.Seen {
		t.Error("upsert cleared the seen flag")
	}
	if got.Score != 75 || got.Metadata.Ranking != 1 {
		t.Errorf("last writer did not win: %+v", got)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want original %v", got.CreatedAt, testNow)
	}
}

func TestListRecommendations_Order(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	batch := []models.Recommendation{
		rec("u1", "unranked-b", 50, 0),
		rec("u1", "second", 40, 2),
		rec("u1", "unranked-high", 90, 0),
		rec("u1", "first", 30, 1),
		rec("u1", "unranked-a", 50, 0),
		rec("u2", "other-user", 99, 1),
	}
	course := rec("u1", "c1", 99, 1)
	course.Item = models.ItemRef{ItemType: models.ItemTypeCourse, ItemID: "c1"}
	batch = append(batch, course)

	if err := s.UpsertRecommendations(ctx, batch); err != nil {
		t.Fatalf("UpsertRecommendations() error: %v", err)
	}

	got, err := s.ListRecommendations(ctx, "u1", models.ItemTypeJob, 0)
	if err != nil {
		t.Fatalf("ListRecommendations() error: %v", err)
	}

	want := []string{"first", "second", "unranked-high", "unranked-a", "unranked-b"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].Item.ItemID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].Item.ItemID, id)
		}
	}

	limited, err := s.ListRecommendations(ctx, "u1", models.ItemTypeJob, 2)
	if err != nil || len(limited) != 2 {
		t.Errorf("limited list = %d, %v, want 2", len(limited), err)
	}
}

func TestListRecommendations_SeparatorInUserID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tricky := rec("u1:job", "j1", 50, 0)
	if err := s.UpsertRecommendations(ctx, []models.Recommendation{tricky}); err != nil {
		t.Fatalf("UpsertRecommendations() error: %v", err)
	}

	got, err := s.ListRecommendations(ctx, "u1", models.ItemTypeJob, 0)
	if err != nil {
		t.Fatalf("ListRecommendations() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("user u1 sees %d recommendations of user u1:job", len(got))
	}
}

func TestExpiredRecommendationsInvisible(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()

	short := rec("u1", "short", 70, 0)
	short.ExpiresAt = testNow.Add(time.Hour)
	stale := rec("u1", "stale", 70, 0)
	stale.ExpiresAt = testNow.Add(-time.Minute)

	if err := s.UpsertRecommendations(ctx, []models.Recommendation{short, stale, rec("u1", "long", 60, 0)}); err != nil {
		t.Fatalf("UpsertRecommendations() error: %v", err)
	}

	got, _ := s.ListRecommendations(ctx, "u1", models.ItemTypeJob, 0)
	if len(got) != 2 {
		t.Errorf("visible = %d, want 2 (stale record written already expired)", len(got))
	}

	clock.now = testNow.Add(2 * time.Hour)
	got, _ = s.ListRecommendations(ctx, "u1", models.ItemTypeJob, 0)
	if len(got) != 1 || got[0].Item.ItemID != "long" {
		t.Errorf("visible after expiry = %+v, want only long", got)
	}

	if _, err := s.GetRecommendation(ctx, "u1", job("short")); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("expired get error = %v, want ErrNotFound", err)
	}
	if err := s.MarkInteraction(ctx, "u1", job("short"), models.ActionView); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("expired mark error = %v, want ErrNotFound", err)
	}
}

func TestMarkInteraction(t *testing.T) {
	tests := []struct {
		action models.Action
		want   models.RecommendationMetadata
	}{
		{models.ActionView, models.RecommendationMetadata{Algorithm: "hybrid", Seen: true}},
		{models.ActionLike, models.RecommendationMetadata{Algorithm: "hybrid", Clicked: true}},
		{models.ActionApply, models.RecommendationMetadata{Algorithm: "hybrid", Applied: true}},
		{models.ActionSave, models.RecommendationMetadata{Algorithm: "hybrid"}},
		{models.ActionIgnore, models.RecommendationMetadata{Algorithm: "hybrid"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			s, _ := newTestStore(t)
			ctx := context.Background()

			if err := s.UpsertRecommendations(ctx, []models.Recommendation{rec("u1", "j1", 50, 0)}); err != nil {
				t.Fatalf("UpsertRecommendations() error: %v", err)
			}
			if err := s.MarkInteraction(ctx, "u1", job("j1"), tt.action); err != nil {
				t.Fatalf("MarkInteraction() error: %v", err)
			}

			got, _ := s.GetRecommendation(ctx, "u1", job("j1"))
			if got.Metadata != tt.want {
				t.Errorf("Metadata = %+v, want %+v", got.Metadata, tt.want)
			}
		})
	}
}

func TestMarkInteraction_Missing(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.MarkInteraction(ctx, "u1", job("nope"), models.ActionApply); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if err := s.MarkInteraction(ctx, "u1", job("nope"), models.ActionSave); err != nil {
		t.Errorf("unmapped action error = %v, want nil", err)
	}
}

func TestDeleteRecommendation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertRecommendations(ctx, []models.Recommendation{rec("u1", "j1", 50, 0)}); err != nil {
		t.Fatalf("UpsertRecommendations() error: %v", err)
	}
	if err := s.DeleteRecommendation(ctx, "u1", job("j1")); err != nil {
		t.Fatalf("DeleteRecommendation() error: %v", err)
	}
	if _, err := s.GetRecommendation(ctx, "u1", job("j1")); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("after delete error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteRecommendation(ctx, "u1", job("j1")); err != nil {
		t.Errorf("second delete error = %v, want nil", err)
	}
}

func TestPreferences(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.LoadPreferences(ctx, "u1", models.ItemTypeJob); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("missing error = %v, want ErrNotFound", err)
	}

	snap := &models.PreferenceSnapshot{
		UserID:           "u1",
		ItemType:         models.ItemTypeJob,
		InteractionCount: 7,
		InteractionWeights: models.InteractionWeights{
			Weights:        map[models.Action]float64{models.ActionApply: 4},
			TotalWeight:    4,
			DominantAction: models.ActionApply,
		},
		LastAnalyzed: testNow,
	}
	if err := s.SavePreferences(ctx, snap); err != nil {
		t.Fatalf("SavePreferences() error: %v", err)
	}

	got, err := s.LoadPreferences(ctx, "u1", models.ItemTypeJob)
	if err != nil {
		t.Fatalf("LoadPreferences() error: %v", err)
	}
	if got.InteractionCount != 7 || got.InteractionWeights.DominantAction != models.ActionApply || !got.LastAnalyzed.Equal(testNow) {
		t.Errorf("LoadPreferences() = %+v", got)
	}
	if got.InteractionWeights.Weights[models.ActionApply] != 4 {
		t.Errorf("Weights = %v", got.InteractionWeights.Weights)
	}

	if err := s.SavePreferences(ctx, nil); err == nil {
		t.Error("SavePreferences(nil) should fail")
	}
}

func TestUpsert_KeepsRankingWhenUnranked(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertRecommendations(ctx, []models.Recommendation{rec("u1", "j1", 60, 3)}); err != nil {
		t.Fatalf("UpsertRecommendations() error: %v", err)
	}
	if err := s.UpsertRecommendations(ctx, []models.Recommendation{rec("u1", "j1", 90, 0)}); err != nil {
		t.Fatalf("UpsertRecommendations() error: %v", err)
	}

	got, err := s.GetRecommendation(ctx, "u1", job("j1"))
	if err != nil {
		t.Fatalf("GetRecommendation() error: %v", err)
	}
	if got.Score != 90 {
		t.Errorf("Score = %v, want 90", got.Score)
	}
	if got.Metadata.Ranking != 3 {
		t.Errorf("Ranking = %d, want stored ranking 3", got.Metadata.Ranking)
	}
}

func TestConcurrentMarkAndRerank_KeepsFlags(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const n = 40
	recs := make([]models.Recommendation, n)
	for i := range recs {
		recs[i] = rec("u1", fmt.Sprintf("j%02d", i), float64(i), 0)
	}
	if err := s.UpsertRecommendations(ctx, recs); err != nil {
		t.Fatalf("UpsertRecommendations() error: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2*n)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for round := 0; round < 20; round++ {
			listed, err := s.ListRecommendations(ctx, "u1", models.ItemTypeJob, n)
			if err != nil {
				errs <- fmt.Errorf("list: %w", err)
				return
			}
			for i := range listed {
				listed[i].Score = float64((i + round) % 100)
				listed[i].Metadata.Ranking = i + 1
			}
			if err := s.UpsertRecommendations(ctx, listed); err != nil {
				errs <- fmt.Errorf("upsert round %d: %w", round, err)
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if err := s.MarkInteraction(ctx, "u1", job(fmt.Sprintf("j%02d", i)), models.ActionApply); err != nil {
				errs <- fmt.Errorf("mark j%02d: %w", i, err)
			}
		}
	}()

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	listed, err := s.ListRecommendations(ctx, "u1", models.ItemTypeJob, 0)
	if err != nil {
		t.Fatalf("ListRecommendations() error: %v", err)
	}
	if len(listed) != n {
		t.Fatalf("len = %d, want %d", len(listed), n)
	}
	for _, r := range listed {
		if !r.Metadata.Applied {
			t.Errorf("%s lost its applied flag", r.Item)
		}
	}
	if err := s.Ping(); err != nil {
		t.Errorf("Ping() after concurrent writes error = %v", err)
	}
}

func TestConflictsDoNotTripBreaker(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < 5; i++ {
		err := s.execute("conflict", func() error { return badger.ErrConflict })
		if !errors.Is(err, badger.ErrConflict) {
			t.Fatalf("execute() #%d error = %v, want ErrConflict", i, err)
		}
	}
	if err := s.Ping(); err != nil {
		t.Errorf("Ping() after conflicts error = %v", err)
	}
}

func TestConflictBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Millisecond},
		{5, 5 * time.Millisecond},
		{50, 20 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := conflictBackoff(tt.attempt); got != tt.want {
			t.Errorf("conflictBackoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestBreakerOpensOnFailures(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Ping(); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}

	// closed database fails every operation
	if err := s.db.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	for i := 0; i < 2; i++ {
		err := s.Ping()
		if err == nil || errors.Is(err, recommend.ErrStoreUnavailable) {
			t.Fatalf("Ping() #%d error = %v, want driver error", i, err)
		}
	}

	_, err := s.ListRecommendations(context.Background(), "u1", models.ItemTypeJob, 10)
	if !errors.Is(err, recommend.ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
	if got := testutil.ToFloat64(metrics.StoreBreakerState.WithLabelValues(storeName)); got != 2 {
		t.Errorf("breaker state gauge = %v, want 2 (open)", got)
	}
}

func TestNotFoundDoesNotTripBreaker(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.GetRecommendation(ctx, "u1", job("missing")); !errors.Is(err, recommend.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	}
	if err := s.Ping(); err != nil {
		t.Errorf("Ping() after misses error = %v", err)
	}
}

func TestSortRecommendations(t *testing.T) {
	recs := []models.Recommendation{
		rec("u", "b", 10, 0),
		rec("u", "a", 10, 0),
		rec("u", "r3", 5, 3),
	}
	SortRecommendations(recs)
	if recs[0].Item.ItemID != "r3" || recs[1].Item.ItemID != "a" || recs[2].Item.ItemID != "b" {
		t.Errorf("order = %s %s %s", recs[0].Item.ItemID, recs[1].Item.ItemID, recs[2].Item.ItemID)
	}
}
