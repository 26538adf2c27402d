// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package spotify

import "github.com/Roosevelttt/tebaklagu/internal/models"

// tokenResponse is the client-credentials grant payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// searchResponse is the subset of the search payload the resolver needs.
type searchResponse struct {
	Tracks struct {
		Items []searchItem `json:"items"`
	} `json:"tracks"`
}

type searchItem struct {
	ID      string         `json:"id"`
	Artists []artistObject `json:"artists"`
}

type artistObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// trackResponse is the single-track lookup payload.
type trackResponse struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Artists []artistObject `json:"artists"`
	Album   struct {
		Name string `json:"name"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

func (t *trackResponse) toTrackInfo() *models.TrackInfo {
	info := &models.TrackInfo{
		ID:         t.ID,
		Name:       t.Name,
		Album:      models.Album{Name: t.Album.Name},
		SpotifyURL: t.ExternalURLs.Spotify,
	}
	for _, a := range t.Artists {
		info.Artists = append(info.Artists, models.Artist{Name: a.Name})
	}
	return info
}
