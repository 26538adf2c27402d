// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/Roosevelttt/tebaklagu/internal/models"
)

// Vibe score component weights. Must sum to 1 so the composite stays in
// [0,100].
const (
	weightSimilarity = 0.55
	weightPopularity = 0.30
	weightTags       = 0.15
)

// epsilon guards the popularity divisor when every candidate has a zero
// playcount.
const epsilon = 0.0001

// score computes per-candidate normalized components and the composite
// vibe score, then sorts descending. Ties keep their pre-sort order so
// equal-scoring candidates stay in similarity-provider order.
func score(baseTags []string, enriched []models.EnrichedCandidate) []models.ScoredRecommendation {
	// Popularity normalizes against the cohort's log-scaled maximum, so
	// both passes over the candidates are needed.
	maxLogPlaycount := 0.0
	for _, c := range enriched {
		if lp := math.Log10(float64(c.Playcount) + 1); lp > maxLogPlaycount {
			maxLogPlaycount = lp
		}
	}

	baseTagSet := tagSet(baseTags)

	overlaps := make([]int, len(enriched))
	maxOverlap := 0
	for i, c := range enriched {
		overlaps[i] = tagOverlap(baseTagSet, c.Tags)
		if overlaps[i] > maxOverlap {
			maxOverlap = overlaps[i]
		}
	}
	if maxOverlap < 1 {
		maxOverlap = 1
	}

	scored := make([]models.ScoredRecommendation, 0, len(enriched))
	for i, c := range enriched {
		simPct := normalizeSimilarity(c.RawSimilarity)
		popPct := math.Log10(float64(c.Playcount)+1) / math.Max(maxLogPlaycount, epsilon) * 100
		tagPct := float64(overlaps[i]) / float64(maxOverlap) * 100

		scored = append(scored, models.ScoredRecommendation{
			EnrichedCandidate: c,
			SimilarityPct:     simPct,
			PopularityPct:     popPct,
			TagOverlapCount:   overlaps[i],
			TagOverlapPct:     tagPct,
			VibeScore:         weightSimilarity*simPct + weightPopularity*popPct + weightTags*tagPct,
		})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].VibeScore > scored[b].VibeScore
	})

	return scored
}

// normalizeSimilarity maps a provider score to a percentage. Scores in
// (0,1] are fractional and scale by 100; anything else is already a
// percentage and passes through, clamped to [0,100].
func normalizeSimilarity(raw float64) float64 {
	if raw > 0 && raw <= 1 {
		raw *= 100
	}
	return math.Min(100, math.Max(0, raw))
}

// tagSet lowercases tag names for case-insensitive overlap counting.
func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}

// tagOverlap counts candidate tags present in the base set. Every
// occurrence counts; Last.fm top tags are unique per track, so repeats
// only arise from malformed payloads and are scored as sent.
func tagOverlap(base map[string]struct{}, tags []string) int {
	overlap := 0
	for _, t := range tags {
		if _, ok := base[strings.ToLower(t)]; ok {
			overlap++
		}
	}
	return overlap
}
