// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

// chi_router.go - HTTP routing using the Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Roosevelttt/tebaklagu/internal/middleware"
)

// Router wires the handler and middleware factories into the Chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given handler and middleware.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
	}
}

// chiMiddlewareAdapter adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler.
func chiMiddlewareAdapter(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chiMiddlewareAdapter(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight works

	// Health endpoints get permissive rate limiting; monitoring probes
	// poll these frequently.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Core API endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddlewareAdapter(middleware.PrometheusMetrics))

		r.Post("/recognize", router.handler.Recognize)
		r.Get("/song/{spotifyId}", router.handler.GetSong)
	})

	// Prometheus metrics endpoint, outside the API rate limit.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
