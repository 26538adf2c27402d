// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

/*
Package recommend turns one seed track into a ranked list of similar
songs. The pipeline is: fetch the seed's tags, fetch similar tracks,
keep the strongest candidates, enrich each candidate concurrently
(playcount and tags from Last.fm, preview clip from Deezer), score, and
assemble the response.

Every provider call in the pipeline degrades on failure: a lost
similar-tracks fetch yields an empty recommendation list, and each
enrichment sub-call falls back to neutral defaults. A flaky upstream
thins the result instead of killing the request.
*/
package recommend

import (
	"context"
	"sync"

	"github.com/Roosevelttt/tebaklagu/internal/deezer"
	"github.com/Roosevelttt/tebaklagu/internal/lastfm"
	"github.com/Roosevelttt/tebaklagu/internal/logging"
	"github.com/Roosevelttt/tebaklagu/internal/metrics"
	"github.com/Roosevelttt/tebaklagu/internal/models"
)

const (
	// similarFetchLimit is how many similar tracks to request; the list
	// is then cut down to maxCandidates before enrichment.
	similarFetchLimit = 30
	maxCandidates     = 8
)

// PreviewSearcher is the preview-lookup surface the engine needs from
// the Deezer client.
type PreviewSearcher interface {
	Search(ctx context.Context, artist, title string) (*deezer.Preview, error)
}

var _ PreviewSearcher = (*deezer.Client)(nil)

// Engine orchestrates the recommendation pipeline.
type Engine struct {
	lastfm lastfm.ClientInterface
	deezer PreviewSearcher
}

// NewEngine creates a recommendation engine over the given providers.
func NewEngine(lfm lastfm.ClientInterface, dz PreviewSearcher) *Engine {
	return &Engine{
		lastfm: lfm,
		deezer: dz,
	}
}

// Recommend produces the ranked recommendation list for a seed track.
// A failed similar-tracks fetch degrades to an empty candidate set, so
// the response always carries the seed track even when Last.fm is down.
func (e *Engine) Recommend(ctx context.Context, track models.TrackInfo) (*models.RecommendationsResponse, error) {
	artist := track.PrimaryArtist()
	title := track.Name

	baseTags := e.fetchBaseTags(ctx, artist, title)

	candidates, err := e.lastfm.TrackGetSimilar(ctx, artist, title, similarFetchLimit)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("artist", artist).Str("title", title).Msg("Similar tracks unavailable, returning empty recommendations")
		metrics.RecordEnrichmentDegradation("lastfm_similar")
		candidates = nil
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	metrics.RecommendationCandidates.Observe(float64(len(candidates)))

	enriched := e.enrich(ctx, candidates)
	scored := score(baseTags, enriched)

	return assemble(track, scored), nil
}

// fetchBaseTags loads the seed track's tags for overlap scoring. A
// failure here degrades to an empty tag set; every candidate then
// scores zero overlap against it.
func (e *Engine) fetchBaseTags(ctx context.Context, artist, title string) []string {
	detail, err := e.lastfm.TrackGetInfo(ctx, artist, title)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("artist", artist).Str("title", title).Msg("Seed track info unavailable, scoring without base tags")
		metrics.RecordEnrichmentDegradation("lastfm_info")
		return nil
	}
	return detail.Tags
}

// enrich runs the per-candidate fan-out. One goroutine per candidate
// (at most maxCandidates), each making its two sub-calls sequentially.
// Results land in index-assigned slots so no locking is needed and the
// similarity-provider order is preserved for stable tie-breaks.
func (e *Engine) enrich(ctx context.Context, candidates []models.Candidate) []models.EnrichedCandidate {
	enriched := make([]models.EnrichedCandidate, len(candidates))

	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(idx int, c models.Candidate) {
			defer wg.Done()
			enriched[idx] = e.enrichOne(ctx, c)
		}(i, candidate)
	}
	wg.Wait()

	return enriched
}

// enrichOne gathers playcount, tags, and preview for one candidate.
// Each sub-call failure leaves its neutral default and is counted as a
// degradation.
func (e *Engine) enrichOne(ctx context.Context, c models.Candidate) models.EnrichedCandidate {
	result := models.EnrichedCandidate{Candidate: c}

	detail, err := e.lastfm.TrackGetInfo(ctx, c.Artist, c.Title)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("artist", c.Artist).Str("title", c.Title).Msg("Candidate info unavailable")
		metrics.RecordEnrichmentDegradation("lastfm_info")
	} else {
		result.Playcount = detail.Playcount
		result.Tags = detail.Tags
	}

	preview, err := e.deezer.Search(ctx, c.Artist, c.Title)
	if err != nil || preview == nil {
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).Str("artist", c.Artist).Str("title", c.Title).Msg("Candidate preview unavailable")
		}
		metrics.RecordEnrichmentDegradation("deezer_preview")
		return result
	}

	if preview.PreviewURL != "" {
		result.PreviewURL = &preview.PreviewURL
	}
	if preview.AlbumTitle != "" {
		result.AlbumName = &preview.AlbumTitle
	}
	return result
}
