// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package api

import (
	"context"
	"time"

	"github.com/Roosevelttt/tebaklagu/internal/config"
	"github.com/Roosevelttt/tebaklagu/internal/models"
)

// RecognitionClient identifies songs from raw audio samples.
type RecognitionClient interface {
	Identify(ctx context.Context, sample []byte, filename string) (*models.RecognitionMatch, error)
}

// CatalogClient resolves recognized songs against the primary catalog.
type CatalogClient interface {
	Token(ctx context.Context) (string, error)
	ResolveTrack(ctx context.Context, token, title, artist, isrc string) models.ResolvedTrack
	GetTrack(ctx context.Context, token, id string) (*models.TrackInfo, error)
}

// Recommender produces the ranked recommendation list for a seed track.
type Recommender interface {
	Recommend(ctx context.Context, track models.TrackInfo) (*models.RecommendationsResponse, error)
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: Shared response helpers
//   - handlers_recognize.go: Audio recognition endpoint
//   - handlers_song.go: Song recommendation endpoint
//   - handlers_health.go: Health/monitoring endpoints
type Handler struct {
	recognizer  RecognitionClient
	catalog     CatalogClient
	recommender Recommender
	config      *config.Config
	startTime   time.Time
}

// NewHandler creates a new API handler with all required dependencies.
func NewHandler(recognizer RecognitionClient, catalog CatalogClient, recommender Recommender, cfg *config.Config) *Handler {
	return &Handler{
		recognizer:  recognizer,
		catalog:     catalog,
		recommender: recommender,
		config:      cfg,
		startTime:   time.Now(),
	}
}
