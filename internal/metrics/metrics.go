// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

// Package metrics provides Prometheus instrumentation for Tebaklagu.
//
// Instrumented surfaces:
//   - API endpoint latency and throughput
//   - Upstream provider calls (ACRCloud, Spotify, Last.fm, Deezer)
//   - Recognition outcomes (music / humming / no match / failure)
//   - Recommendation pipeline (candidates, enrichment degradations)
//   - Circuit breaker state
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream Provider Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream provider requests",
		},
		[]string{"provider", "operation", "outcome"}, // outcome: "success", "failure", "degraded"
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)

	// Recognition Metrics
	RecognitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recognitions_total",
			Help: "Total number of recognition attempts by outcome",
		},
		[]string{"outcome"}, // "music", "humming", "no_match", "failure"
	)

	// Recommendation Pipeline Metrics
	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Number of candidates scored per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8},
		},
	)

	EnrichmentDegradations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_degradations_total",
			Help: "Enrichment sub-calls that fell back to neutral defaults",
		},
		[]string{"source"}, // "lastfm_info", "deezer_preview"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Circuit breaker request outcomes",
		},
		[]string{"name", "outcome"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records a completed upstream provider call.
func RecordUpstreamRequest(provider, operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	UpstreamRequestsTotal.WithLabelValues(provider, operation, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// RecordRecognition records the outcome of one recognition attempt.
// Outcome is one of "music", "humming", "no_match", "failure".
func RecordRecognition(outcome string) {
	RecognitionsTotal.WithLabelValues(outcome).Inc()
}

// RecordEnrichmentDegradation records an enrichment sub-call that fell
// back to its neutral default.
func RecordEnrichmentDegradation(source string) {
	EnrichmentDegradations.WithLabelValues(source).Inc()
}
