// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

// Package api provides HTTP handlers for the Tebaklagu application.
//
// errors.go - Error classification shared by the handlers
//
// Three failure classes matter at the HTTP boundary: missing provider
// credentials (a deployment problem, 500), a failing upstream that the
// request needed (502), and plain bad input (400). Provider packages
// expose sentinel errors for the first class; everything else from a
// provider is the second.
package api

import (
	"errors"
	"net/http"

	"github.com/Roosevelttt/tebaklagu/internal/acrcloud"
	"github.com/Roosevelttt/tebaklagu/internal/lastfm"
	"github.com/Roosevelttt/tebaklagu/internal/spotify"
)

// Shared response messages. Internal error detail never leaks to
// clients; it goes to the log instead.
const (
	msgNoSample         = "no audio sample provided"
	msgSampleTooLarge   = "audio sample exceeds the maximum size"
	msgNotConfigured    = "service is not configured"
	msgRecognitionDown  = "recognition service unavailable"
	msgCatalogDown      = "song catalog unavailable"
	msgSimilarityDown   = "recommendation service unavailable"
	msgSongNotFound     = "song not found"
	msgInvalidSongID    = "invalid song id"
	msgInternal         = "internal server error"
)

// isNotConfigured reports whether err is any provider's missing
// credentials sentinel.
func isNotConfigured(err error) bool {
	return errors.Is(err, acrcloud.ErrNotConfigured) ||
		errors.Is(err, spotify.ErrNotConfigured) ||
		errors.Is(err, lastfm.ErrNotConfigured)
}

// upstreamStatus maps a provider error to its HTTP status.
func upstreamStatus(err error) int {
	if isNotConfigured(err) {
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}
