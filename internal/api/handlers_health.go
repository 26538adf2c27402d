// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package api

import (
	"net/http"
	"time"
)

// healthResponse is the payload for the health endpoints.
type healthResponse struct {
	Status    string            `json:"status"`
	Uptime    string            `json:"uptime"`
	Providers map[string]string `json:"providers,omitempty"`
}

// Health handles GET /api/v1/health.
//
// Aggregate view for humans and dashboards: the provider map from the
// readiness probe, but always 200 so a degraded configuration still
// shows its detail instead of an opaque 503.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	status, providers := h.providerHealth()
	respondJSON(w, http.StatusOK, &healthResponse{
		Status:    status,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Providers: providers,
	})
}

// HealthLive handles GET /api/v1/health/live.
// Always returns 200 while the process can serve requests.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &healthResponse{
		Status: "ok",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HealthReady handles GET /api/v1/health/ready.
//
// Reports per-provider credential status. The service starts without
// credentials and fails the affected calls individually, so a
// not-configured provider degrades readiness but never liveness.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	status, providers := h.providerHealth()

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, &healthResponse{
		Status:    status,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Providers: providers,
	})
}

// providerHealth computes the aggregate status and per-provider map
// shared by the health and readiness endpoints.
func (h *Handler) providerHealth() (string, map[string]string) {
	providers := map[string]string{
		"acrcloud": providerStatus(h.config.ACRCloud.Configured()),
		"spotify":  providerStatus(h.config.Spotify.Configured()),
		"lastfm":   providerStatus(h.config.LastFM.Configured()),
		// Deezer needs no credentials.
		"deezer": "configured",
	}

	status := "ok"
	for _, s := range providers {
		if s != "configured" {
			status = "degraded"
			break
		}
	}
	return status, providers
}

func providerStatus(configured bool) string {
	if configured {
		return "configured"
	}
	return "not_configured"
}
