// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

// Package main is the entry point for the Tebaklagu server application.
//
// Tebaklagu recognizes songs from short audio samples and recommends
// similar music. An uploaded sample is fingerprinted via ACRCloud,
// resolved against the Spotify catalog, and a recognized track can then
// be expanded into a ranked list of similar songs scored from Last.fm
// similarity, playcount popularity, and tag overlap, with Deezer
// supplying 30-second preview clips.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: Structured zerolog output, level and format from config
//  3. Provider clients: ACRCloud, Spotify, Last.fm (circuit-breaker wrapped), Deezer
//  4. Recommendation engine: similarity scoring over the provider clients
//  5. HTTP Server: Chi router under a suture supervision tree
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults.
//
// Provider credentials are optional at startup. A missing credential
// fails only the calls that need it, so the service can boot in a
// partially configured environment:
//   - ACRCLOUD_HOST, ACRCLOUD_ACCESS_KEY, ACRCLOUD_ACCESS_SECRET
//   - SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET
//   - LASTFM_API_KEY
//
// Deezer requires no credentials.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections and waits for in-flight requests to
// complete (10s timeout).
//
// # Example Usage
//
//	export ACRCLOUD_HOST=identify-ap-southeast-1.acrcloud.com
//	export ACRCLOUD_ACCESS_KEY=your-access-key
//	export ACRCLOUD_ACCESS_SECRET=your-access-secret
//	export SPOTIFY_CLIENT_ID=your-client-id
//	export SPOTIFY_CLIENT_SECRET=your-client-secret
//	export LASTFM_API_KEY=your-api-key
//	./tebaklagu
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Roosevelttt/tebaklagu/internal/acrcloud"
	"github.com/Roosevelttt/tebaklagu/internal/api"
	"github.com/Roosevelttt/tebaklagu/internal/config"
	"github.com/Roosevelttt/tebaklagu/internal/deezer"
	"github.com/Roosevelttt/tebaklagu/internal/lastfm"
	"github.com/Roosevelttt/tebaklagu/internal/logging"
	"github.com/Roosevelttt/tebaklagu/internal/recommend"
	"github.com/Roosevelttt/tebaklagu/internal/spotify"
	"github.com/Roosevelttt/tebaklagu/internal/supervisor"
	"github.com/Roosevelttt/tebaklagu/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Bool("acrcloud_configured", cfg.ACRCloud.Configured()).
		Bool("spotify_configured", cfg.Spotify.Configured()).
		Bool("lastfm_configured", cfg.LastFM.Configured()).
		Msg("Starting Tebaklagu")

	// Provider clients. Missing credentials fail per call, not here.
	recognizer := acrcloud.NewClient(&cfg.ACRCloud)
	catalog := spotify.NewClient(&cfg.Spotify)
	similarity := lastfm.NewResilientClient(&cfg.LastFM)
	previews := deezer.NewClient(&cfg.Deezer)

	engine := recommend.NewEngine(similarity, previews)

	handler := api.NewHandler(recognizer, catalog, engine, cfg)
	chiMw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, chiMw).SetupChi()

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("failed to build supervisor tree: %w", err)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, supervisor.DefaultTreeConfig().ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")

	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("supervisor tree failed: %w", err)
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}
