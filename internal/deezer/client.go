// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

/*
client.go - Deezer API client

Looks up 30-second preview clips and album titles for recommendation
candidates. Deezer's search endpoint needs no authentication, which is
exactly why it carries preview duty instead of the primary catalog.

API Reference: https://developers.deezer.com/api
*/

package deezer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/Roosevelttt/tebaklagu/internal/config"
	"github.com/Roosevelttt/tebaklagu/internal/metrics"
)

const defaultBaseURL = "https://api.deezer.com"

// Preview is one resolved preview lookup.
type Preview struct {
	PreviewURL string
	AlbumTitle string
}

// Client provides access to the Deezer API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Deezer API client.
func NewClient(cfg *config.DeezerConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search resolves a (artist, title) pair to its best preview match.
// Returns (nil, nil) when nothing matches; callers treat that the same
// as a lookup failure and fall back to a null preview.
func (c *Client) Search(ctx context.Context, artist, title string) (*Preview, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("artist:%q track:%q", artist, title))
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create deezer request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordUpstreamRequest("deezer", "search", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("deezer search failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deezer search returned status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode deezer response: %w", err)
	}

	if len(result.Data) == 0 {
		return nil, nil
	}

	item := result.Data[0]
	return &Preview{
		PreviewURL: item.Preview,
		AlbumTitle: item.Album.Title,
	}, nil
}

type searchResponse struct {
	Data []struct {
		Preview string `json:"preview"`
		Album   struct {
			Title string `json:"title"`
		} `json:"album"`
	} `json:"data"`
}
