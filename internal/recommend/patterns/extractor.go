// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package patterns

import (
	"math"
	"sort"
	"time"

	"github.com/tomtom215/meridian/internal/models"
)

// Config configures the Extractor.
type Config struct {
	// Weights is the signed weight per action.
	Weights ActionWeights

	// TopSequences is how many action transitions to keep. Default: 5.
	TopSequences int

	// Location is used to bucket interaction hours. Default: UTC.
	Location *time.Location
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() Config {
	return Config{
		Weights:      DefaultActionWeights(),
		TopSequences: 5,
		Location:     time.UTC,
	}
}

// Extractor builds preference snapshots from interaction histories.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an extractor, filling zero-valued settings with defaults.
func NewExtractor(cfg Config) *Extractor {
	if cfg.TopSequences <= 0 {
		cfg.TopSequences = 5
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Extractor{cfg: cfg}
}

// Extract analyzes interactions (newest first) and returns the snapshot.
func (e *Extractor) Extract(userID string, itemType models.ItemType, interactions []models.Interaction, analyzedAt time.Time) *models.PreferenceSnapshot {
	preferred, disliked := Categories(interactions, e.cfg.Weights)

	return &models.PreferenceSnapshot{
		UserID:           userID,
		ItemType:         itemType,
		InteractionCount: len(interactions),
		Patterns: models.Patterns{
			TimeBased:       TimeDistribution(interactions, e.cfg.Location),
			ActionSequences: ActionSequences(interactions, e.cfg.TopSequences),
			ScorePatterns:   ScorePatterns(interactions),
		},
		InteractionWeights:  Weigh(interactions, e.cfg.Weights),
		PreferredCategories: preferred,
		DislikedCategories:  disliked,
		LastAnalyzed:        analyzedAt,
	}
}

// bucketPriority is the tie-break order for the preferred time bucket.
var bucketPriority = []models.TimeBucket{
	models.TimeEvening,
	models.TimeMorning,
	models.TimeAfternoon,
	models.TimeNight,
}

// TimeDistribution counts interactions per time bucket and picks the preferred one.
//
//nolint:gocritic // rangeValCopy: interactions are small value types
func TimeDistribution(interactions []models.Interaction, loc *time.Location) models.TimePattern {
	if loc == nil {
		loc = time.UTC
	}

	dist := make(map[models.TimeBucket]int, len(bucketPriority))
	for _, b := range bucketPriority {
		dist[b] = 0
	}
	for _, inter := range interactions {
		dist[models.TimeBucketForHour(inter.Timestamp.In(loc).Hour())]++
	}

	preferred := bucketPriority[0]
	for _, b := range bucketPriority[1:] {
		if dist[b] > dist[preferred] {
			preferred = b
		}
	}

	return models.TimePattern{Distribution: dist, PreferredTime: preferred}
}

type transitionKey struct {
	from models.Action
	to   models.Action
}

// ActionSequences counts action transitions between adjacent interactions on
// the same item and returns the top most frequent ones.
func ActionSequences(interactions []models.Interaction, top int) []models.ActionSequence {
	counts := make(map[transitionKey]int)
	var order []transitionKey

	for i := 0; i+1 < len(interactions); i++ {
		cur, next := &interactions[i], &interactions[i+1]
		if cur.Item != next.Item {
			continue
		}
		k := transitionKey{from: cur.Action, to: next.Action}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	seqs := make([]models.ActionSequence, len(order))
	for i, k := range order {
		seqs[i] = models.ActionSequence{From: k.from, To: k.to, Count: counts[k]}
	}

	// Stable sort keeps first-seen order among equal counts
	sort.SliceStable(seqs, func(i, j int) bool {
		return seqs[i].Count > seqs[j].Count
	})

	if top > 0 && len(seqs) > top {
		seqs = seqs[:top]
	}
	return seqs
}

type scoreAccumulator struct {
	sum   float64
	min   float64
	max   float64
	count int
}

func (s *scoreAccumulator) add(v float64) {
	if s.count == 0 || v < s.min {
		s.min = v
	}
	if s.count == 0 || v > s.max {
		s.max = v
	}
	s.sum += v
	s.count++
}

func (s *scoreAccumulator) stats() models.ScoreStats {
	if s.count == 0 {
		return models.ScoreStats{}
	}
	return models.ScoreStats{
		Average: s.sum / float64(s.count),
		Min:     s.min,
		Max:     s.max,
		Count:   s.count,
	}
}

// ScorePatterns summarizes positive original scores overall and per action.
// It returns nil when no interaction carries a positive score.
//
//nolint:gocritic // rangeValCopy: interactions are small value types
func ScorePatterns(interactions []models.Interaction) *models.ScorePattern {
	var overall scoreAccumulator
	byAction := make(map[models.Action]*scoreAccumulator)

	for _, inter := range interactions {
		score := inter.Context.OriginalScore
		if score <= 0 {
			continue
		}
		overall.add(score)
		acc, ok := byAction[inter.Action]
		if !ok {
			acc = &scoreAccumulator{}
			byAction[inter.Action] = acc
		}
		acc.add(score)
	}

	if overall.count == 0 {
		return nil
	}

	pattern := &models.ScorePattern{
		Overall:  overall.stats(),
		ByAction: make(map[models.Action]models.ScoreStats, len(byAction)),
	}
	for a, acc := range byAction {
		pattern.ByAction[a] = acc.stats()
	}
	return pattern
}

// Weigh sums the signed weight per action and derives percentages and the
// dominant action. Only actions that occur appear in the maps.
//
//nolint:gocritic // rangeValCopy: interactions are small value types
func Weigh(interactions []models.Interaction, weights ActionWeights) models.InteractionWeights {
	result := models.InteractionWeights{
		Weights:     make(map[models.Action]float64),
		Percentages: make(map[models.Action]float64),
	}

	for _, inter := range interactions {
		w := weights.Weight(inter.Action)
		result.Weights[inter.Action] += w
		switch {
		case w > 0:
			result.PositiveCount++
		case w < 0:
			result.NegativeCount++
		}
	}

	// Summing in fixed action order keeps the float total reproducible
	for _, a := range models.Actions {
		result.TotalWeight += result.Weights[a]
	}

	present := make([]models.Action, 0, len(result.Weights))
	for _, a := range models.Actions {
		if _, ok := result.Weights[a]; ok {
			present = append(present, a)
		}
	}

	if result.TotalWeight != 0 {
		for _, a := range present {
			result.Percentages[a] = result.Weights[a] / result.TotalWeight * 100
		}
		result.DominantAction = argmax(present, result.Percentages)
	} else {
		for _, a := range present {
			result.Percentages[a] = 0
		}
		result.DominantAction = argmax(present, result.Weights)
	}

	return result
}

// argmax returns the first action in order with the largest value.
func argmax(order []models.Action, values map[models.Action]float64) models.Action {
	var best models.Action
	bestVal := math.Inf(-1)
	for _, a := range order {
		if values[a] > bestVal {
			best, bestVal = a, values[a]
		}
	}
	return best
}

// Categories accumulates signed weight per "category" metadata value and
// splits the result into preferred (positive) and disliked (negative)
// categories, each sorted by magnitude then name.
//
//nolint:gocritic // rangeValCopy: interactions are small value types
func Categories(interactions []models.Interaction, weights ActionWeights) (preferred, disliked []models.CategoryWeight) {
	net := make(map[string]float64)
	for _, inter := range interactions {
		if c := inter.Category(); c != "" {
			net[c] += weights.Weight(inter.Action)
		}
	}

	preferred = []models.CategoryWeight{}
	disliked = []models.CategoryWeight{}
	for c, w := range net {
		switch {
		case w > 0:
			preferred = append(preferred, models.CategoryWeight{Category: c, Weight: w})
		case w < 0:
			disliked = append(disliked, models.CategoryWeight{Category: c, Weight: w})
		}
	}

	sortCategories(preferred)
	sortCategories(disliked)
	return preferred, disliked
}

func sortCategories(cs []models.CategoryWeight) {
	sort.Slice(cs, func(i, j int) bool {
		wi, wj := math.Abs(cs[i].Weight), math.Abs(cs[j].Weight)
		if wi != wj {
			return wi > wj
		}
		return cs[i].Category < cs[j].Category
	})
}
