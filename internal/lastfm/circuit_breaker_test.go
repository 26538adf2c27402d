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

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Roosevelttt/tebaklagu/internal/config"
)

func TestCircuitBreakerPassesThroughSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"track": {"name": "Monokrom", "playcount": "10", "toptags": {"tag": []}}}`))
	}))
	defer server.Close()

	cbc := NewCircuitBreakerClient(newTestConfig(server.URL))
	detail, err := cbc.TrackGetInfo(context.Background(), "Tulus", "Monokrom")
	if err != nil {
		t.Fatalf("TrackGetInfo failed: %v", err)
	}
	if detail.Playcount != 10 {
		t.Errorf("expected playcount 10, got %d", detail.Playcount)
	}
	if cbc.State() != gobreaker.StateClosed {
		t.Errorf("expected closed state after success, got %v", cbc.State())
	}
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := newTestConfig(server.URL)
	cfg.Timeout = time.Second
	cbc := NewCircuitBreakerClient(cfg)

	// ReadyToTrip requires 10 requests at >= 60% failure rate.
	for i := 0; i < 10; i++ {
		_, _ = cbc.TrackGetSimilar(context.Background(), "Tulus", "Monokrom", 30)
	}

	if cbc.State() != gobreaker.StateOpen {
		t.Fatalf("expected open state after repeated failures, got %v", cbc.State())
	}

	// Open circuit rejects without touching the upstream.
	if _, err := cbc.TrackGetSimilar(context.Background(), "Tulus", "Monokrom", 30); err == nil {
		t.Fatal("expected rejection from open circuit")
	}
}

func TestCircuitBreakerSkipsWhenNotConfigured(t *testing.T) {
	cbc := NewCircuitBreakerClient(&config.LastFMConfig{})

	// Configuration gaps must not count against the breaker.
	for i := 0; i < 20; i++ {
		if _, err := cbc.TrackGetInfo(context.Background(), "Tulus", "Monokrom"); err != ErrNotConfigured {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	}
	if cbc.State() != gobreaker.StateClosed {
		t.Errorf("expected closed state, got %v", cbc.State())
	}
}

func TestNewResilientClientHonorsBreakerDisabled(t *testing.T) {
	plain := NewResilientClient(&config.LastFMConfig{BreakerDisabled: true})
	if _, ok := plain.(*Client); !ok {
		t.Errorf("expected plain *Client when breaker disabled, got %T", plain)
	}

	wrapped := NewResilientClient(&config.LastFMConfig{})
	if _, ok := wrapped.(*CircuitBreakerClient); !ok {
		t.Errorf("expected *CircuitBreakerClient by default, got %T", wrapped)
	}
}
