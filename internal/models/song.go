// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

// Package models contains the request-scoped domain types that flow
// between the provider clients, the recommendation engine, and the HTTP
// handlers. Nothing in this package is persisted; every value lives for
// the duration of one request.
package models

// Artist is a display-level artist reference.
type Artist struct {
	Name string `json:"name"`
}

// Album is a display-level album reference.
type Album struct {
	Name string `json:"name"`
}

// Recognition sources. A "music" classification is always preferred over
// "humming" when the fingerprint service returns both.
const (
	SourceMusic   = "music"
	SourceHumming = "humming"
)

// RecognitionMatch is the single match produced by the fingerprint
// service for an audio sample. ISRC is empty when the service did not
// report an external id.
type RecognitionMatch struct {
	Title   string
	Artists []Artist
	Album   Album
	Source  string
	ISRC    string
}

// PrimaryArtist returns the first artist name, or empty if none listed.
func (m *RecognitionMatch) PrimaryArtist() string {
	if len(m.Artists) == 0 {
		return ""
	}
	return m.Artists[0].Name
}

// ResolvedTrack is the canonical catalog identity derived for a
// recognition match. A nil SpotifyID is a valid terminal outcome (no
// catalog match found), not an error.
type ResolvedTrack struct {
	SpotifyID *string
	ArtistID  *string
}

// TrackInfo is the canonical track projection returned by the
// recommendation endpoint.
type TrackInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	SpotifyURL string   `json:"spotifyUrl"`
}

// PrimaryArtist returns the first artist name, or empty if none listed.
func (t *TrackInfo) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0].Name
}

// Candidate is a raw similar-track record from the similarity provider,
// before enrichment.
type Candidate struct {
	Title string
	// Artist is normalized to a plain name; the provider sometimes
	// reports a structured object instead of a string.
	Artist        string
	RawSimilarity float64
}

// EnrichedCandidate is a Candidate plus the per-candidate data gathered
// during the enrichment fan-out. Failed sub-fetches leave the neutral
// defaults in place (zero playcount, no tags, nil preview/album).
type EnrichedCandidate struct {
	Candidate
	Tags       []string
	Playcount  int64
	PreviewURL *string
	AlbumName  *string
}

// ScoredRecommendation is an EnrichedCandidate with all normalized score
// components. Percentage fields are in [0,100].
type ScoredRecommendation struct {
	EnrichedCandidate
	SimilarityPct   float64
	PopularityPct   float64
	TagOverlapCount int
	TagOverlapPct   float64
	VibeScore       float64
}
