// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package models

// SongResult is the recognition endpoint's success payload.
//
// SpotifyID is null when the recognized song could not be matched to the
// primary catalog; that is a valid outcome, not an error.
//
// Example:
//
//	{
//	  "title": "Bohemian Rhapsody",
//	  "artists": [{"name": "Queen"}],
//	  "album": {"name": "A Night at the Opera"},
//	  "source": "music",
//	  "spotifyId": "7tFiyTwD0nx5a1eklYtX2J"
//	}
type SongResult struct {
	Title     string   `json:"title"`
	Artists   []Artist `json:"artists"`
	Album     Album    `json:"album"`
	Source    string   `json:"source"`
	SpotifyID *string  `json:"spotifyId"`
}

// Recommendation is one entry of the recommendation endpoint's ranked
// list. SpotifyID here is a display-safe identifier derived
// deterministically from artist, title, and list position; it has no
// relationship to a real catalog id. SpotifyURL is a search deeplink
// since no true catalog id is known for text-matched recommendations.
type Recommendation struct {
	Title      string   `json:"title"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	SpotifyID  string   `json:"spotifyId"`
	PreviewURL *string  `json:"preview_url"`
	SpotifyURL string   `json:"spotifyUrl"`
	VibeScore  float64  `json:"vibeScore"`
	Similarity float64  `json:"similarity"`
	Playcount  int64    `json:"playcount"`
	Tags       []string `json:"tags"`
	TagOverlap int      `json:"tagOverlap"`
}

// RecommendationsResponse is the recommendation endpoint's payload.
type RecommendationsResponse struct {
	Track           TrackInfo        `json:"track"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ErrorResponse is the error payload shape shared by both endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
