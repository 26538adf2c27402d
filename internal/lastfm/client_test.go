// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package lastfm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/Roosevelttt/tebaklagu/internal/config"
)

func newTestConfig(baseURL string) *config.LastFMConfig {
	return &config.LastFMConfig{
		APIKey:            "test-api-key",
		BaseURL:           baseURL,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 100, // keep tests fast
	}
}

func TestNewClientDefaultRateLimit(t *testing.T) {
	// Zero and negative values fall back to the client default of 5 rps.
	client := NewClient(&config.LastFMConfig{APIKey: "k"})
	if client.limiter.Limit() != rate.Limit(5) {
		t.Errorf("expected default limit 5, got %v", client.limiter.Limit())
	}
	if client.limiter.Burst() != 5 {
		t.Errorf("expected default burst 5, got %d", client.limiter.Burst())
	}

	client = NewClient(&config.LastFMConfig{APIKey: "k", RequestsPerSecond: -1})
	if client.limiter.Limit() != rate.Limit(5) {
		t.Errorf("expected negative rps to use default, got %v", client.limiter.Limit())
	}
}

func TestTrackGetInfoParsesStringPlaycount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("method") != "track.getInfo" {
			t.Errorf("expected method track.getInfo, got %s", q.Get("method"))
		}
		if q.Get("api_key") != "test-api-key" {
			t.Errorf("expected api_key on request, got %s", q.Get("api_key"))
		}
		if q.Get("format") != "json" {
			t.Errorf("expected format=json, got %s", q.Get("format"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"track": {
				"name": "Monokrom",
				"playcount": "123456",
				"toptags": {"tag": [{"name": "indonesian"}, {"name": "pop"}, {"name": ""}]}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL))
	detail, err := client.TrackGetInfo(context.Background(), "Tulus", "Monokrom")
	if err != nil {
		t.Fatalf("TrackGetInfo failed: %v", err)
	}
	if detail.Playcount != 123456 {
		t.Errorf("expected playcount 123456, got %d", detail.Playcount)
	}
	// Empty tag names are dropped.
	if len(detail.Tags) != 2 || detail.Tags[0] != "indonesian" || detail.Tags[1] != "pop" {
		t.Errorf("unexpected tags: %v", detail.Tags)
	}
}

func TestTrackGetSimilarNormalizesArtistShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("method") != "track.getsimilar" {
			t.Errorf("expected method track.getsimilar, got %s", q.Get("method"))
		}
		if q.Get("limit") != "30" {
			t.Errorf("expected limit=30, got %s", q.Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		// One object artist with a numeric match, one string artist with
		// a string match, one entry missing its artist entirely.
		_, _ = w.Write([]byte(`{
			"similartracks": {
				"track": [
					{"name": "Dan", "match": 0.82, "artist": {"name": "Sheila On 7"}},
					{"name": "Pelangi", "match": "0.5", "artist": "HIVI!"},
					{"name": "Orphan", "match": 0.4, "artist": {"name": ""}}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL))
	candidates, err := client.TrackGetSimilar(context.Background(), "Tulus", "Monokrom", 30)
	if err != nil {
		t.Fatalf("TrackGetSimilar failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates after dropping nameless artist, got %d", len(candidates))
	}
	if candidates[0].Artist != "Sheila On 7" || candidates[0].RawSimilarity != 0.82 {
		t.Errorf("unexpected first candidate: %+v", candidates[0])
	}
	if candidates[1].Artist != "HIVI!" || candidates[1].RawSimilarity != 0.5 {
		t.Errorf("unexpected second candidate: %+v", candidates[1])
	}
}

func TestCallSurfacesEmbeddedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Last.fm reports application errors with HTTP 200.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": 6, "message": "Track not found"}`))
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL))
	if _, err := client.TrackGetInfo(context.Background(), "Nobody", "Nothing"); err == nil {
		t.Fatal("expected error for embedded error envelope")
	}
}

func TestCallRejectsNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL))
	if _, err := client.TrackGetSimilar(context.Background(), "Tulus", "Monokrom", 30); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestCallNotConfigured(t *testing.T) {
	client := NewClient(&config.LastFMConfig{})
	if _, err := client.TrackGetInfo(context.Background(), "Tulus", "Monokrom"); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestFlexInt64Variants(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{`"42"`, 42},
		{`42`, 42},
		{`""`, 0},
		{`null`, 0},
		{`"3.0"`, 3},
	}
	for _, tt := range tests {
		var f flexInt64
		if err := f.UnmarshalJSON([]byte(tt.input)); err != nil {
			t.Errorf("UnmarshalJSON(%s) failed: %v", tt.input, err)
			continue
		}
		if int64(f) != tt.want {
			t.Errorf("UnmarshalJSON(%s) = %d, want %d", tt.input, int64(f), tt.want)
		}
	}
}
