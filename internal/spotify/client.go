// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

/*
client.go - Spotify Web API client

Provides the client-credentials token exchange, the track-identity
fallback search chain, and single-track lookup against the primary
catalog.

API Reference: https://developer.spotify.com/documentation/web-api
*/

package spotify

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Roosevelttt/tebaklagu/internal/config"
	"github.com/Roosevelttt/tebaklagu/internal/logging"
	"github.com/Roosevelttt/tebaklagu/internal/metrics"
	"github.com/Roosevelttt/tebaklagu/internal/models"
)

// Default public endpoints; overridable via config for tests.
const (
	defaultAccountsURL = "https://accounts.spotify.com"
	defaultAPIURL      = "https://api.spotify.com"
)

var (
	// ErrNotConfigured indicates the Spotify client credentials are missing.
	ErrNotConfigured = errors.New("spotify credentials are not configured")

	// ErrTrackNotFound indicates a track id lookup returned 404.
	ErrTrackNotFound = errors.New("spotify track not found")
)

// Client provides access to the Spotify Web API.
type Client struct {
	clientID     string
	clientSecret string
	market       string
	accountsURL  string
	apiURL       string
	httpClient   *http.Client
}

// NewClient creates a new Spotify API client. Missing credentials are
// reported per call via ErrNotConfigured, not at construction.
func NewClient(cfg *config.SpotifyConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	accountsURL := strings.TrimSuffix(cfg.AccountsURL, "/")
	if accountsURL == "" {
		accountsURL = defaultAccountsURL
	}
	apiURL := strings.TrimSuffix(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	market := cfg.Market
	if market == "" {
		market = "ID"
	}

	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		market:       market,
		accountsURL:  accountsURL,
		apiURL:       apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Token performs a client-credentials exchange and returns a short-lived
// bearer token. The exchange is stateless; callers fetch a fresh token
// per request and nothing is cached.
func (c *Client) Token(ctx context.Context) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountsURL+"/api/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordUpstreamRequest("spotify", "token", time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("spotify token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return "", fmt.Errorf("spotify token returned status %d (failed to read body)", resp.StatusCode)
		}
		return "", fmt.Errorf("spotify token returned status %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode spotify token: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("spotify token response contained no access_token")
	}

	return token.AccessToken, nil
}

// ResolveTrack maps a (title, artist, optional ISRC) triple to a catalog
// track id and its primary artist id.
//
// Fallback chain, first non-null result wins:
//  1. isrc:<code> when an ISRC is present
//  2. track:"<title>" artist:"<artist>"
//
// A failed search attempt is logged and treated as no match for that
// attempt; the chain then continues or terminates with a nil SpotifyID,
// which is a valid outcome.
func (c *Client) ResolveTrack(ctx context.Context, token, title, artist, isrc string) models.ResolvedTrack {
	if isrc != "" {
		if resolved := c.searchTrack(ctx, token, "isrc:"+isrc); resolved.SpotifyID != nil {
			return resolved
		}
	}

	return c.searchTrack(ctx, token, fmt.Sprintf("track:%q artist:%q", title, artist))
}

// searchTrack performs one limit=1 search attempt. Any failure (transport,
// non-success status, malformed body) degrades to an empty result.
func (c *Client) searchTrack(ctx context.Context, token, query string) models.ResolvedTrack {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", "1")
	params.Set("market", c.market)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiURL+"/v1/search?"+params.Encode(), http.NoBody)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("query", query).Msg("Spotify search request construction failed")
		return models.ResolvedTrack{}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordUpstreamRequest("spotify", "search", time.Since(start), err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("query", query).Msg("Spotify search failed")
		return models.ResolvedTrack{}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		logging.Ctx(ctx).Warn().Int("status", resp.StatusCode).Str("query", query).Msg("Spotify search returned non-success status")
		return models.ResolvedTrack{}
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("query", query).Msg("Failed to decode Spotify search response")
		return models.ResolvedTrack{}
	}

	if len(result.Tracks.Items) == 0 {
		return models.ResolvedTrack{}
	}

	item := result.Tracks.Items[0]
	resolved := models.ResolvedTrack{SpotifyID: &item.ID}
	if len(item.Artists) > 0 {
		resolved.ArtistID = &item.Artists[0].ID
	}
	return resolved
}

// GetTrack fetches a single track by catalog id. Returns ErrTrackNotFound
// for an unknown id; any other non-success status is an error that aborts
// the recommendation pipeline.
func (c *Client) GetTrack(ctx context.Context, token, id string) (*models.TrackInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiURL+"/v1/tracks/"+url.PathEscape(id), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create track request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordUpstreamRequest("spotify", "track", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("spotify track request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrTrackNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("spotify track returned status %d (failed to read body)", resp.StatusCode)
		}
		return nil, fmt.Errorf("spotify track returned status %d: %s", resp.StatusCode, string(body))
	}

	var track trackResponse
	if err := json.NewDecoder(resp.Body).Decode(&track); err != nil {
		return nil, fmt.Errorf("failed to decode spotify track: %w", err)
	}

	return track.toTrackInfo(), nil
}
