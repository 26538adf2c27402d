// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Spotify.Market != "ID" {
		t.Errorf("expected default market ID, got %s", cfg.Spotify.Market)
	}
	if cfg.LastFM.BaseURL != "https://ws.audioscrobbler.com/2.0/" {
		t.Errorf("unexpected lastfm base url %s", cfg.LastFM.BaseURL)
	}
	if cfg.Recognize.MaxSampleBytes != 10<<20 {
		t.Errorf("expected 10 MiB sample limit, got %d", cfg.Recognize.MaxSampleBytes)
	}
	if cfg.LastFM.RequestsPerSecond != 5 {
		t.Errorf("expected 5 rps, got %v", cfg.LastFM.RequestsPerSecond)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestConfiguredHelpers(t *testing.T) {
	cfg := defaultConfig()

	// Credentials are absent by default.
	if cfg.ACRCloud.Configured() || cfg.Spotify.Configured() || cfg.LastFM.Configured() {
		t.Error("no provider should be configured by default")
	}

	cfg.ACRCloud.Host = "identify.example.com"
	cfg.ACRCloud.AccessKey = "key"
	if cfg.ACRCloud.Configured() {
		t.Error("acrcloud needs all three credentials")
	}
	cfg.ACRCloud.AccessSecret = "secret"
	if !cfg.ACRCloud.Configured() {
		t.Error("acrcloud should be configured with all credentials")
	}

	cfg.Spotify.ClientID = "id"
	cfg.Spotify.ClientSecret = "secret"
	if !cfg.Spotify.Configured() {
		t.Error("spotify should be configured with both credentials")
	}

	cfg.LastFM.APIKey = "key"
	if !cfg.LastFM.Configured() {
		t.Error("lastfm should be configured with api key")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"zero sample limit", func(c *Config) { c.Recognize.MaxSampleBytes = 0 }},
		{"negative rate limit", func(c *Config) { c.Security.RateLimitReqs = -1 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadWithKoanfEnvOverrides(t *testing.T) {
	t.Setenv("ACRCLOUD_HOST", "identify-ap-southeast-1.acrcloud.com")
	t.Setenv("SPOTIFY_CLIENT_ID", "env-client-id")
	t.Setenv("LASTFM_API_KEY", "env-api-key")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}

	if cfg.ACRCloud.Host != "identify-ap-southeast-1.acrcloud.com" {
		t.Errorf("env override for acrcloud host not applied: %s", cfg.ACRCloud.Host)
	}
	if cfg.Spotify.ClientID != "env-client-id" {
		t.Errorf("env override for spotify client id not applied: %s", cfg.Spotify.ClientID)
	}
	if cfg.LastFM.APIKey != "env-api-key" {
		t.Errorf("env override for lastfm api key not applied: %s", cfg.LastFM.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("env override for port not applied: %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("env override for log level not applied: %s", cfg.Logging.Level)
	}

	// Untouched values keep their defaults.
	if cfg.Spotify.Market != "ID" {
		t.Errorf("default market lost: %s", cfg.Spotify.Market)
	}
}

func TestLoadWithKoanfCORSFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}

	origins := cfg.Security.CORSOrigins
	if len(origins) != 2 || origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Errorf("unexpected cors origins: %v", origins)
	}
}

func TestEnvTransformFuncSkipsUnmapped(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("expected unmapped env var to be skipped, got %q", got)
	}
	if got := envTransformFunc("ACRCLOUD_HOST"); got != "acrcloud.host" {
		t.Errorf("unexpected mapping: %q", got)
	}
	if got := envTransformFunc("RATE_LIMIT_REQUESTS"); got != "security.rate_limit_reqs" {
		t.Errorf("unexpected mapping: %q", got)
	}
}

func TestTimeoutDurationsParse(t *testing.T) {
	t.Setenv("ACRCLOUD_TIMEOUT", "45s")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}
	if cfg.ACRCloud.Timeout != 45*time.Second {
		t.Errorf("expected 45s timeout, got %v", cfg.ACRCloud.Timeout)
	}
}
