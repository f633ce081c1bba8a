// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Model     ModelConfig     `koanf:"model"`
	Recommend RecommendConfig `koanf:"recommend"`
	Dialogue  DialogueConfig  `koanf:"dialogue"`
	Session   SessionConfig   `koanf:"session"`
	Security  SecurityConfig  `koanf:"security"`
	Events    EventsConfig    `koanf:"events"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig holds TMDb client settings.
type CatalogConfig struct {
	APIKey       string `koanf:"api_key"`
	BaseURL      string `koanf:"base_url"`
	ImageBaseURL string `koanf:"image_base_url"`
	Language     string `koanf:"language"`

	// RequestTimeout bounds each HTTP call, including the per-item calls
	// issued during fan-out. A timed out item is treated as missing.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// RateLimit is requests per second; RateBurst the token bucket size.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	// MaxRetries applies to HTTP 429 responses only.
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`

	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`

	// MaxConcurrency caps in-flight calls per fan-out batch.
	MaxConcurrency int `koanf:"max_concurrency"`
}

// ModelConfig locates the offline embedding artifacts.
type ModelConfig struct {
	EmbeddingsPath string        `koanf:"embeddings_path"`
	MapsPath       string        `koanf:"maps_path"`
	ReloadInterval time.Duration `koanf:"reload_interval"` // 0 disables change detection
}

// RecommendConfig holds ranking settings.
type RecommendConfig struct {
	TopN           int     `koanf:"top_n"`
	DirectorWeight float64 `koanf:"director_weight"`
	GenreWeight    float64 `koanf:"genre_weight"`
	ActorWeight    float64 `koanf:"actor_weight"`
}

// DialogueConfig holds the conversation thresholds. Cutoffs are on the 0-100
// fuzzy score scale and are inclusive.
type DialogueConfig struct {
	ResetCutoff         float64 `koanf:"reset_cutoff"`
	MatchCutoff         float64 `koanf:"match_cutoff"`
	NoneCutoff          float64 `koanf:"none_cutoff"`
	PersonCutoff        float64 `koanf:"person_cutoff"`
	AutoSelectScore     float64 `koanf:"auto_select_score"`
	MaxLocalCandidates  int     `koanf:"max_local_candidates"`
	RemotePersonLimit   int     `koanf:"remote_person_limit"`
	RecommendationCount int     `koanf:"recommendation_count"`

	// MaxRetries is the number of consecutive unmatched turns in one state
	// before the conversation restarts. 0 means unlimited.
	MaxRetries int `koanf:"max_retries"`
}

// SessionConfig selects the conversation store.
type SessionConfig struct {
	Store      string        `koanf:"store"` // "memory" or "badger"
	Path       string        `koanf:"path"`
	TTL        time.Duration `koanf:"ttl"`
	CookieName string        `koanf:"cookie_name"`
}

// SecurityConfig holds inbound HTTP protection settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// EventsConfig controls the in-process activity event bus.
type EventsConfig struct {
	Enabled bool  `koanf:"enabled"`
	Buffer  int64 `koanf:"buffer"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
