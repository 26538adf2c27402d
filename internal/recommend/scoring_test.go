// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package recommend

import (
	"math"
	"testing"

	"github.com/Roosevelttt/tebaklagu/internal/models"
)

func candidate(title, artist string, sim float64, playcount int64, tags ...string) models.EnrichedCandidate {
	return models.EnrichedCandidate{
		Candidate: models.Candidate{
			Title:         title,
			Artist:        artist,
			RawSimilarity: sim,
		},
		Playcount: playcount,
		Tags:      tags,
	}
}

func TestNormalizeSimilarity(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{0.8, 80},   // fractional scales by 100
		{80, 80},    // percentage passes through
		{1, 100},    // inclusive upper bound of the fractional range
		{0, 0},
		{-5, 0},     // clamped
		{150, 100},  // clamped
		{0.005, 0.5},
	}
	for _, tt := range tests {
		if got := normalizeSimilarity(tt.raw); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeSimilarity(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestScoreRangeAndOrdering(t *testing.T) {
	enriched := []models.EnrichedCandidate{
		candidate("A", "X", 0.3, 100, "pop"),
		candidate("B", "Y", 0.9, 50000, "pop", "rock"),
		candidate("C", "Z", 0.1, 10),
	}

	scored := score([]string{"pop", "rock"}, enriched)

	for _, s := range scored {
		if s.VibeScore < 0 || s.VibeScore > 100 {
			t.Errorf("vibe score %v out of [0,100] for %s", s.VibeScore, s.Title)
		}
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].VibeScore > scored[i-1].VibeScore {
			t.Errorf("list not sorted descending at index %d", i)
		}
	}
	if scored[0].Title != "B" {
		t.Errorf("expected B first, got %s", scored[0].Title)
	}
}

func TestScoreAllZeroPlaycounts(t *testing.T) {
	enriched := []models.EnrichedCandidate{
		candidate("A", "X", 0.5, 0),
		candidate("B", "Y", 0.7, 0),
	}

	scored := score(nil, enriched)

	for _, s := range scored {
		if s.PopularityPct != 0 {
			t.Errorf("expected zero popularity for %s, got %v", s.Title, s.PopularityPct)
		}
	}
}

func TestScoreTagOverlapNormalization(t *testing.T) {
	enriched := []models.EnrichedCandidate{
		candidate("A", "X", 0.5, 10, "pop", "rock", "jazz"),
		candidate("B", "Y", 0.5, 10, "metal"),
		candidate("C", "Z", 0.5, 10, "pop", "metal"),
	}

	scored := score([]string{"pop", "rock"}, enriched)

	// Overlaps are [2, 0, 1] against the base set; normalized against
	// the cohort max of 2 that is [100, 0, 50].
	got := map[string]float64{}
	for _, s := range scored {
		got[s.Title] = s.TagOverlapPct
	}
	if got["A"] != 100 || got["B"] != 0 || got["C"] != 50 {
		t.Errorf("unexpected tag overlap percentages: %v", got)
	}
}

func TestScoreTagOverlapIsCaseInsensitive(t *testing.T) {
	enriched := []models.EnrichedCandidate{
		candidate("A", "X", 0.5, 10, "Pop", "ROCK"),
	}

	scored := score([]string{"pop", "rock"}, enriched)

	if scored[0].TagOverlapCount != 2 {
		t.Errorf("expected overlap 2, got %d", scored[0].TagOverlapCount)
	}
}

func TestScoreTagOverlapCountsRepeats(t *testing.T) {
	// Repeated tags in a candidate payload are scored as sent, one count
	// per occurrence.
	enriched := []models.EnrichedCandidate{
		candidate("A", "X", 0.5, 10, "pop", "Pop"),
	}

	scored := score([]string{"pop"}, enriched)

	if scored[0].TagOverlapCount != 2 {
		t.Errorf("expected repeated tag counted twice, got %d", scored[0].TagOverlapCount)
	}
}

func TestScoreStableTies(t *testing.T) {
	// Identical inputs produce identical scores; stable sort keeps the
	// similarity-provider order.
	enriched := []models.EnrichedCandidate{
		candidate("First", "X", 0.5, 10),
		candidate("Second", "Y", 0.5, 10),
		candidate("Third", "Z", 0.5, 10),
	}

	scored := score(nil, enriched)

	if scored[0].Title != "First" || scored[1].Title != "Second" || scored[2].Title != "Third" {
		t.Errorf("tie order not preserved: %s, %s, %s", scored[0].Title, scored[1].Title, scored[2].Title)
	}
}

func TestScoreEmptyCohort(t *testing.T) {
	scored := score([]string{"pop"}, nil)
	if len(scored) != 0 {
		t.Errorf("expected empty result, got %d entries", len(scored))
	}
}
