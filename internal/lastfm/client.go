// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

/*
client.go - Last.fm API client

Provides track metadata (playcount, top tags) and similar-track lookups.
All calls go through a shared courtesy rate limiter; Last.fm enforces
roughly 5 req/s per API key and bans keys that exceed it.

API Reference: https://www.last.fm/api
*/

package lastfm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/Roosevelttt/tebaklagu/internal/config"
	"github.com/Roosevelttt/tebaklagu/internal/metrics"
	"github.com/Roosevelttt/tebaklagu/internal/models"
)

const defaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

// ErrNotConfigured indicates the Last.fm API key is missing.
var ErrNotConfigured = errors.New("lastfm api key is not configured")

// ClientInterface is the surface the recommendation engine consumes.
// Satisfied by both Client and CircuitBreakerClient.
type ClientInterface interface {
	TrackGetInfo(ctx context.Context, artist, title string) (*TrackDetail, error)
	TrackGetSimilar(ctx context.Context, artist, title string, limit int) ([]models.Candidate, error)
}

var _ ClientInterface = (*Client)(nil)

// TrackDetail is the enrichment subset of a track.getInfo response.
type TrackDetail struct {
	Playcount int64
	Tags      []string
}

// Client provides access to the Last.fm API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Last.fm API client. A missing API key is
// reported per call via ErrNotConfigured.
func NewClient(cfg *config.LastFMConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// TrackGetInfo fetches playcount and top tags for a track.
func (c *Client) TrackGetInfo(ctx context.Context, artist, title string) (*TrackDetail, error) {
	params := url.Values{}
	params.Set("method", "track.getInfo")
	params.Set("artist", artist)
	params.Set("track", title)
	params.Set("autocorrect", "1")

	var result trackInfoResponse
	if err := c.call(ctx, "track_info", params, &result); err != nil {
		return nil, err
	}

	detail := &TrackDetail{
		Playcount: int64(result.Track.Playcount),
	}
	for _, tag := range result.Track.TopTags.Tags {
		if tag.Name != "" {
			detail.Tags = append(detail.Tags, tag.Name)
		}
	}
	return detail, nil
}

// TrackGetSimilar fetches up to limit similar tracks. Similarity scores
// are passed through raw; normalization is the scoring engine's job.
func (c *Client) TrackGetSimilar(ctx context.Context, artist, title string, limit int) ([]models.Candidate, error) {
	params := url.Values{}
	params.Set("method", "track.getsimilar")
	params.Set("artist", artist)
	params.Set("track", title)
	params.Set("autocorrect", "1")
	params.Set("limit", strconv.Itoa(limit))

	var result similarResponse
	if err := c.call(ctx, "track_similar", params, &result); err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, 0, len(result.SimilarTracks.Tracks))
	for _, track := range result.SimilarTracks.Tracks {
		if track.Name == "" || track.Artist.Name == "" {
			continue
		}
		candidates = append(candidates, models.Candidate{
			Title:         track.Name,
			Artist:        track.Artist.Name,
			RawSimilarity: float64(track.Match),
		})
	}
	return candidates, nil
}

// call performs one rate-limited API request and decodes the payload.
// Last.fm reports application errors in a 200 body, so both the HTTP
// status and the embedded error code are checked.
func (c *Client) call(ctx context.Context, operation string, params url.Values, out interface{}) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("lastfm rate limiter: %w", err)
	}

	params.Set("api_key", c.apiKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create lastfm request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordUpstreamRequest("lastfm", operation, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("lastfm %s request failed: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lastfm %s returned status %d", operation, resp.StatusCode)
	}

	// Decode into a raw envelope first to surface embedded errors.
	var envelope apiError
	body, err := decodeAndCapture(resp, &envelope)
	if err != nil {
		return fmt.Errorf("failed to read lastfm %s response: %w", operation, err)
	}
	if envelope.Code != 0 {
		return fmt.Errorf("lastfm %s error %d: %s", operation, envelope.Code, envelope.Message)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode lastfm %s response: %w", operation, err)
	}
	return nil
}
