// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Roosevelttt/tebaklagu/internal/logging"
	"github.com/Roosevelttt/tebaklagu/internal/spotify"
	"github.com/Roosevelttt/tebaklagu/internal/validation"
)

// songIDRequest validates the spotifyId path parameter. Catalog ids are
// base62, 22 characters.
type songIDRequest struct {
	SpotifyID string `validate:"required,alphanum,min=10,max=40"`
}

// GetSong handles GET /api/v1/song/{spotifyId}.
//
// Fetches the seed track from the primary catalog and produces the
// ranked recommendation list. Only the catalog calls are required; the
// recommendation pipeline degrades internally, so a similarity outage
// yields a 200 with the seed track and zero recommendations.
func (h *Handler) GetSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "spotifyId")

	if verr := validation.ValidateStruct(&songIDRequest{SpotifyID: id}); verr != nil {
		respondError(w, http.StatusBadRequest, msgInvalidSongID, verr)
		return
	}

	ctx := r.Context()

	token, err := h.catalog.Token(ctx)
	if err != nil {
		status := upstreamStatus(err)
		if status == http.StatusInternalServerError {
			respondError(w, status, msgNotConfigured, err)
			return
		}
		respondError(w, status, msgCatalogDown, err)
		return
	}

	track, err := h.catalog.GetTrack(ctx, token, id)
	if err != nil {
		if errors.Is(err, spotify.ErrTrackNotFound) {
			respondError(w, http.StatusNotFound, msgSongNotFound, nil)
			return
		}
		respondError(w, http.StatusBadGateway, msgCatalogDown, err)
		return
	}

	logging.Ctx(ctx).Info().Str("track_id", sanitizeLogValue(id)).Str("track", track.Name).Msg("Building recommendations")

	resp, err := h.recommender.Recommend(ctx, *track)
	if err != nil {
		status := upstreamStatus(err)
		if status == http.StatusInternalServerError {
			respondError(w, status, msgNotConfigured, err)
			return
		}
		respondError(w, status, msgSimilarityDown, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
