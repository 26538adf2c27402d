// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package recommend

import (
	"fmt"
	"hash/fnv"
	"math"
	"net/url"

	"github.com/Roosevelttt/tebaklagu/internal/models"
)

// albumFallback is shown when no album title could be resolved for a
// candidate.
const albumFallback = "Single/Unknown"

// assemble converts the sorted scored list into the response payload.
func assemble(track models.TrackInfo, scored []models.ScoredRecommendation) *models.RecommendationsResponse {
	recs := make([]models.Recommendation, 0, len(scored))
	for i, s := range scored {
		album := albumFallback
		if s.AlbumName != nil && *s.AlbumName != "" {
			album = *s.AlbumName
		}

		tags := s.Tags
		if tags == nil {
			tags = []string{}
		}

		recs = append(recs, models.Recommendation{
			Title:      s.Title,
			Artists:    []models.Artist{{Name: s.Artist}},
			Album:      models.Album{Name: album},
			SpotifyID:  displayID(s.Artist, s.Title, i),
			PreviewURL: s.PreviewURL,
			SpotifyURL: searchDeeplink(s.Artist, s.Title),
			VibeScore:  round1(s.VibeScore),
			Similarity: round1(s.SimilarityPct),
			Playcount:  s.Playcount,
			Tags:       tags,
			TagOverlap: s.TagOverlapCount,
		})
	}

	return &models.RecommendationsResponse{
		Track:           track,
		Recommendations: recs,
	}
}

// displayID derives a stable display identifier from the candidate's
// identity and list position. Same inputs always yield the same id, so
// clients can key UI state across refreshes.
func displayID(artist, title string, position int) string {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s|%s|%d", artist, title, position)
	return fmt.Sprintf("rec-%08x", h.Sum32())
}

// searchDeeplink builds an open.spotify.com search link. Text-matched
// candidates carry no real catalog id, so search is the best deeplink
// available.
func searchDeeplink(artist, title string) string {
	return "https://open.spotify.com/search/" + url.PathEscape(artist+" "+title)
}

// round1 trims scores to one decimal for the response payload. The
// full-precision values only feed the sort, which runs before assembly.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
