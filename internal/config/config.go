// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

// Package config provides layered configuration loading for Tebaklagu.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, optional YAML config file,
// built-in defaults.
//
// Provider credentials (ACRCloud keys, Spotify client secret, Last.fm API
// key) are deliberately NOT validated at startup: a missing credential is
// a per-call configuration error surfaced by the owning client, so the
// server can come up with a partial provider set.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Tebaklagu server.
type Config struct {
	ACRCloud  ACRCloudConfig  `koanf:"acrcloud"`
	Spotify   SpotifyConfig   `koanf:"spotify"`
	LastFM    LastFMConfig    `koanf:"lastfm"`
	Deezer    DeezerConfig    `koanf:"deezer"`
	Recognize RecognizeConfig `koanf:"recognize"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ACRCloudConfig holds credentials for the acoustic fingerprint service.
// The identification protocol signs every request with the access secret,
// so all three fields are required before a recognition call can be made.
type ACRCloudConfig struct {
	// Host is the regional ACRCloud endpoint, e.g. identify-ap-southeast-1.acrcloud.com.
	Host         string        `koanf:"host"`
	AccessKey    string        `koanf:"access_key"`
	AccessSecret string        `koanf:"access_secret"`
	Timeout      time.Duration `koanf:"timeout"`
}

// Configured reports whether all required ACRCloud credentials are set.
func (c *ACRCloudConfig) Configured() bool {
	return c.Host != "" && c.AccessKey != "" && c.AccessSecret != ""
}

// SpotifyConfig holds credentials for the primary catalog service.
type SpotifyConfig struct {
	ClientID     string        `koanf:"client_id"`
	ClientSecret string        `koanf:"client_secret"`
	// Market scopes track searches to a storefront region.
	Market  string        `koanf:"market"`
	Timeout time.Duration `koanf:"timeout"`

	// AccountsURL and APIURL override the upstream endpoints; empty means
	// the public Spotify endpoints. Overridable for tests.
	AccountsURL string `koanf:"accounts_url"`
	APIURL      string `koanf:"api_url"`
}

// Configured reports whether the Spotify client credentials are set.
func (c *SpotifyConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// LastFMConfig holds settings for the secondary catalog (similarity and
// tag source).
type LastFMConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond throttles outbound calls during enrichment
	// fan-out. Values <= 0 fall back to the client default of 5.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// BreakerDisabled turns off the circuit breaker around the client.
	BreakerDisabled bool `koanf:"breaker_disabled"`
}

// Configured reports whether the Last.fm API key is set.
func (c *LastFMConfig) Configured() bool {
	return c.APIKey != ""
}

// DeezerConfig holds settings for the tertiary catalog (preview source).
// Deezer's search endpoint is unauthenticated, so only the base URL and
// timeout are configurable.
type DeezerConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// RecognizeConfig bounds the recognition endpoint's input.
type RecognizeConfig struct {
	// MaxSampleBytes caps the uploaded audio sample size.
	MaxSampleBytes int64 `koanf:"max_sample_bytes"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks structural configuration invariants. Credential
// presence is intentionally not checked here (see package doc).
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Recognize.MaxSampleBytes <= 0 {
		return fmt.Errorf("recognize.max_sample_bytes must be positive, got %d", c.Recognize.MaxSampleBytes)
	}
	if c.LastFM.RequestsPerSecond < 0 {
		return fmt.Errorf("lastfm.requests_per_second must not be negative, got %f", c.LastFM.RequestsPerSecond)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	return nil
}

// Load loads configuration from all sources. It is the single entry point
// used by cmd/server.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
