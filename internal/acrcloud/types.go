// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package acrcloud

import "github.com/Roosevelttt/tebaklagu/internal/models"

// statusOK is the ACRCloud status code for a successful classification.
// Any other code (1001 "no result", 2004 "unable to fingerprint", ...)
// means the sample produced no match.
const statusOK = 0

// identifyResponse is the wire shape of an identification result. Fields
// are parsed defensively; the metadata block and both track arrays may be
// absent.
type identifyResponse struct {
	Status struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	} `json:"status"`
	Metadata struct {
		Music   []trackMetadata `json:"music"`
		Humming []trackMetadata `json:"humming"`
	} `json:"metadata"`
}

// trackMetadata is one recognized track from either classification branch.
type trackMetadata struct {
	Title   string `json:"title"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
	ExternalIDs struct {
		ISRC string `json:"isrc"`
	} `json:"external_ids"`
}

// match converts the response into a RecognitionMatch, or nil when the
// service found nothing. The music branch is checked first and wins over
// a simultaneously present humming branch.
func (r *identifyResponse) match() *models.RecognitionMatch {
	if r.Status.Code != statusOK {
		return nil
	}

	if len(r.Metadata.Music) > 0 {
		return r.Metadata.Music[0].toMatch(models.SourceMusic)
	}
	if len(r.Metadata.Humming) > 0 {
		return r.Metadata.Humming[0].toMatch(models.SourceHumming)
	}
	return nil
}

func (t *trackMetadata) toMatch(source string) *models.RecognitionMatch {
	artists := make([]models.Artist, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, models.Artist{Name: a.Name})
	}

	return &models.RecognitionMatch{
		Title:   t.Title,
		Artists: artists,
		Album:   models.Album{Name: t.Album.Name},
		Source:  source,
		ISRC:    t.ExternalIDs.ISRC,
	}
}
