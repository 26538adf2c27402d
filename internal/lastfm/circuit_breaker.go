// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package lastfm

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Roosevelttt/tebaklagu/internal/config"
	"github.com/Roosevelttt/tebaklagu/internal/logging"
	"github.com/Roosevelttt/tebaklagu/internal/metrics"
	"github.com/Roosevelttt/tebaklagu/internal/models"
)

// Ensure CircuitBreakerClient implements ClientInterface
var _ ClientInterface = (*CircuitBreakerClient)(nil)

// CircuitBreakerClient wraps Client with circuit breaker protection.
// Last.fm is the chattiest upstream (up to 17 calls per recommendation
// request), so a degraded Last.fm would otherwise burn the full request
// timeout on every call.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient creates a Last.fm client with circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 30 second timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(cfg *config.LastFMConfig) *CircuitBreakerClient {
	client := NewClient(cfg)
	cbName := "lastfm-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening Last.fm circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] Last.fm state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// NewResilientClient returns the breaker-wrapped client unless the
// breaker is disabled in config.
func NewResilientClient(cfg *config.LastFMConfig) ClientInterface {
	if cfg.BreakerDisabled {
		return NewClient(cfg)
	}
	return NewCircuitBreakerClient(cfg)
}

// execute wraps a Last.fm API call with circuit breaker protection.
// A missing API key bypasses the breaker; configuration gaps are not
// upstream failures and must not trip the circuit.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Last.fm request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	return result, nil
}

// TrackGetInfo fetches track detail with circuit breaker protection.
func (cbc *CircuitBreakerClient) TrackGetInfo(ctx context.Context, artist, title string) (*TrackDetail, error) {
	if cbc.client.apiKey == "" {
		return nil, ErrNotConfigured
	}
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.TrackGetInfo(ctx, artist, title)
	})
	if err != nil {
		return nil, err
	}
	detail, ok := result.(*TrackDetail)
	if !ok {
		return nil, errors.New("circuit breaker: unexpected result type for TrackGetInfo")
	}
	return detail, nil
}

// TrackGetSimilar fetches similar tracks with circuit breaker protection.
func (cbc *CircuitBreakerClient) TrackGetSimilar(ctx context.Context, artist, title string, limit int) ([]models.Candidate, error) {
	if cbc.client.apiKey == "" {
		return nil, ErrNotConfigured
	}
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.TrackGetSimilar(ctx, artist, title, limit)
	})
	if err != nil {
		return nil, err
	}
	candidates, ok := result.([]models.Candidate)
	if !ok {
		return nil, errors.New("circuit breaker: unexpected result type for TrackGetSimilar")
	}
	return candidates, nil
}

// State returns the current circuit breaker state.
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

// Name returns the circuit breaker name.
func (cbc *CircuitBreakerClient) Name() string {
	return cbc.name
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
