// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package api

import (
	"context"
	"io"
	"net/http"

	"github.com/Roosevelttt/tebaklagu/internal/logging"
	"github.com/Roosevelttt/tebaklagu/internal/metrics"
	"github.com/Roosevelttt/tebaklagu/internal/models"
)

// multipartOverheadBytes covers boundary markers and part headers on top
// of the sample payload itself.
const multipartOverheadBytes = 64 << 10

// Recognize handles POST /api/v1/recognize.
//
// Accepts a multipart form with a single "sample" audio file, runs it
// through the fingerprint service, and resolves the match against the
// primary catalog. Responses:
//   - 200 with a SongResult when a song was recognized
//   - 204 when the sample is valid but nothing matched
//   - 400 when the sample is missing or oversized
//   - 500 when the fingerprint service is not configured
//   - 502 when the fingerprint service fails
func (h *Handler) Recognize(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.config.Recognize.MaxSampleBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverheadBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		respondError(w, http.StatusBadRequest, msgSampleTooLarge, err)
		return
	}

	file, header, err := r.FormFile("sample")
	if err != nil {
		respondError(w, http.StatusBadRequest, msgNoSample, err)
		return
	}
	defer func() { _ = file.Close() }()

	sample, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgInternal, err)
		return
	}
	if int64(len(sample)) > maxBytes {
		respondError(w, http.StatusBadRequest, msgSampleTooLarge, nil)
		return
	}

	ctx := r.Context()
	logging.Ctx(ctx).Info().Int("sample_bytes", len(sample)).Str("filename", sanitizeLogValue(header.Filename)).Msg("Recognizing audio sample")

	match, err := h.recognizer.Identify(ctx, sample, header.Filename)
	if err != nil {
		metrics.RecordRecognition("failure")
		status := upstreamStatus(err)
		if status == http.StatusInternalServerError {
			respondError(w, status, msgNotConfigured, err)
			return
		}
		respondError(w, status, msgRecognitionDown, err)
		return
	}

	if match == nil {
		// Valid sample, no recognizable song. Not an error.
		metrics.RecordRecognition("no_match")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	metrics.RecordRecognition(match.Source)

	result := &models.SongResult{
		Title:     match.Title,
		Artists:   match.Artists,
		Album:     match.Album,
		Source:    match.Source,
		SpotifyID: h.resolveCatalogID(ctx, match),
	}

	respondJSON(w, http.StatusOK, result)
}

// resolveCatalogID maps a recognition match to a catalog track id.
// Catalog resolution is enrichment on this path: any failure, including
// missing catalog credentials, degrades to a null id.
func (h *Handler) resolveCatalogID(ctx context.Context, match *models.RecognitionMatch) *string {
	token, err := h.catalog.Token(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Catalog token unavailable, skipping track resolution")
		return nil
	}

	resolved := h.catalog.ResolveTrack(ctx, token, match.Title, match.PrimaryArtist(), match.ISRC)
	return resolved.SpotifyID
}
