// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package recommend

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/meridian/internal/models"
)

// memInteractions is an in-memory InteractionStore.
type memInteractions struct {
	mu        sync.Mutex
	items     []models.Interaction
	insertErr error
	countErr  error
	queries   []models.InteractionFilter
}

func (m *memInteractions) InsertInteraction(_ context.Context, inter *models.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.items = append(m.items, *inter)
	return nil
}

func (m *memInteractions) matching(userID string, itemType *models.ItemType) []models.Interaction {
	var out []models.Interaction
	for i := len(m.items) - 1; i >= 0; i-- {
		it := m.items[i]
		if it.UserID != userID {
			continue
		}
		if itemType != nil && it.Item.ItemType != *itemType {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (m *memInteractions) CountInteractions(_ context.Context, userID string, itemType models.ItemType) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.matching(userID, &itemType)), nil
}

func (m *memInteractions) RecentInteractions(_ context.Context, userID string, itemType models.ItemType, limit int) ([]models.Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.matching(userID, &itemType)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memInteractions) QueryInteractions(_ context.Context, f models.InteractionFilter) ([]models.Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, f)

	var out []models.Interaction
	for _, it := range m.matching(f.UserID, f.ItemType) {
		if f.Action != nil && it.Action != *f.Action {
			continue
		}
		out = append(out, it)
	}
	if f.Offset < len(out) {
		out = out[f.Offset:]
	} else {
		out = nil
	}
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memInteractions) ActionSummary(_ context.Context, userID string, itemType *models.ItemType, since *time.Time) (map[models.Action]models.ActionCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sums := make(map[models.Action]int)
	out := make(map[models.Action]models.ActionCount)
	for _, it := range m.matching(userID, itemType) {
		if since != nil && it.Timestamp.Before(*since) {
			continue
		}
		c := out[it.Action]
		c.Count++
		out[it.Action] = c
		sums[it.Action] += it.Duration
	}
	for a, c := range out {
		c.AvgDuration = float64(sums[a]) / float64(c.Count)
		out[a] = c
	}
	return out, nil
}

func (m *memInteractions) DeleteInteractionsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	var deleted int64
	for _, it := range m.items {
		if it.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, it)
	}
	m.items = kept
	return deleted, nil
}

type recKey struct {
	user string
	ref  models.ItemRef
}

// memRecommendations is an in-memory RecommendationStore and PreferenceStore.
type memRecommendations struct {
	mu       sync.Mutex
	recs     map[recKey]models.Recommendation
	prefs    map[string]*models.PreferenceSnapshot
	markErr  error
	upserts  int
	listSeen []int
}

func newMemRecommendations() *memRecommendations {
	return &memRecommendations{
		recs:  make(map[recKey]models.Recommendation),
		prefs: make(map[string]*models.PreferenceSnapshot),
	}
}

func (m *memRecommendations) UpsertRecommendations(_ context.Context, recs []models.Recommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	for i := range recs {
		r := recs[i]
		k := recKey{r.UserID, r.Item}
		if old, ok := m.recs[k]; ok {
			r.Metadata.MergeFlags(old.Metadata)
		}
		m.recs[k] = r
	}
	return nil
}

func (m *memRecommendations) ListRecommendations(_ context.Context, userID string, itemType models.ItemType, limit int) ([]models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Recommendation
	for k, r := range m.recs {
		if k.user == userID && k.ref.ItemType == itemType {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Item.ItemID < out[j].Item.ItemID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	m.listSeen = append(m.listSeen, limit)
	return out, nil
}

func (m *memRecommendations) MarkInteraction(_ context.Context, userID string, ref models.ItemRef, action models.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return m.markErr
	}
	k := recKey{userID, ref}
	r, ok := m.recs[k]
	if !ok {
		return ErrNotFound
	}
	r.Metadata.MarkAction(action)
	m.recs[k] = r
	return nil
}

func (m *memRecommendations) get(userID string, ref models.ItemRef) (models.Recommendation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[recKey{userID, ref}]
	return r, ok
}

func (m *memRecommendations) SavePreferences(_ context.Context, snap *models.PreferenceSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[snap.UserID+"/"+string(snap.ItemType)] = snap
	return nil
}

func (m *memRecommendations) LoadPreferences(_ context.Context, userID string, itemType models.ItemType) (*models.PreferenceSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.prefs[userID+"/"+string(itemType)]
	if !ok {
		return nil, ErrNotFound
	}
	return snap, nil
}

// recordingScheduler records scheduled tasks.
type recordingScheduler struct {
	mu    sync.Mutex
	tasks []AnalysisTask
	err   error
}

func (s *recordingScheduler) ScheduleAnalysis(_ context.Context, task AnalysisTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

func (s *recordingScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

var errStoreDown = errors.New("store down")
