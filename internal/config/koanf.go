// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pelismatch/config.yaml",
	"/etc/pelismatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the process environment before the env layer.
// Variables already set in the environment are not overwritten.
var DotEnvFile = ".env"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Catalog: CatalogConfig{
			APIKey:         "",
			BaseURL:        "https://api.themoviedb.org/3",
			ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
			Language:       "es-ES",
			RequestTimeout: 10 * time.Second,
			RateLimit:      20,
			RateBurst:      40,
			MaxRetries:     3,
			RetryBaseDelay: time.Second,
			CacheSize:      2000,
			CacheTTL:       time.Hour,
			MaxConcurrency: 8,
		},
		Model: ModelConfig{
			EmbeddingsPath: "movie_embeddings.npy",
			MapsPath:       "model_maps.json",
			ReloadInterval: time.Minute,
		},
		Recommend: RecommendConfig{
			TopN:           20,
			DirectorWeight: 3.0,
			GenreWeight:    2.0,
			ActorWeight:    1.5,
		},
		Dialogue: DialogueConfig{
			ResetCutoff:         80,
			MatchCutoff:         70,
			NoneCutoff:          80,
			PersonCutoff:        70,
			AutoSelectScore:     85,
			MaxLocalCandidates:  6,
			RemotePersonLimit:   5,
			RecommendationCount: 3,
			MaxRetries:          0,
		},
		Session: SessionConfig{
			Store:      "memory",
			Path:       "./data/sessions",
			TTL:        30 * time.Minute,
			CookieName: "pelismatch_session",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Events: EventsConfig{
			Enabled: true,
			Buffer:  64,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads path into the environment if it exists.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Catalog (TMDb) mappings
	"tmdb_api_key":          "catalog.api_key",
	"tmdb_base_url":         "catalog.base_url",
	"tmdb_image_base_url":   "catalog.image_base_url",
	"tmdb_language":         "catalog.language",
	"tmdb_request_timeout":  "catalog.request_timeout",
	"tmdb_rate_limit":       "catalog.rate_limit",
	"tmdb_rate_burst":       "catalog.rate_burst",
	"tmdb_max_retries":      "catalog.max_retries",
	"tmdb_retry_base_delay": "catalog.retry_base_delay",
	"tmdb_cache_size":       "catalog.cache_size",
	"tmdb_cache_ttl":        "catalog.cache_ttl",
	"tmdb_max_concurrency":  "catalog.max_concurrency",

	// Model artifact mappings
	"model_embeddings_path": "model.embeddings_path",
	"model_maps_path":       "model.maps_path",
	"model_reload_interval": "model.reload_interval",

	// Recommendation mappings
	"recommend_top_n":           "recommend.top_n",
	"recommend_director_weight": "recommend.director_weight",
	"recommend_genre_weight":    "recommend.genre_weight",
	"recommend_actor_weight":    "recommend.actor_weight",

	// Dialogue mappings
	"dialogue_reset_cutoff":         "dialogue.reset_cutoff",
	"dialogue_match_cutoff":         "dialogue.match_cutoff",
	"dialogue_none_cutoff":          "dialogue.none_cutoff",
	"dialogue_person_cutoff":        "dialogue.person_cutoff",
	"dialogue_auto_select_score":    "dialogue.auto_select_score",
	"dialogue_max_candidates":       "dialogue.max_local_candidates",
	"dialogue_remote_person_limit":  "dialogue.remote_person_limit",
	"dialogue_recommendation_count": "dialogue.recommendation_count",
	"dialogue_max_retries":          "dialogue.max_retries",

	// Session mappings
	"session_store":       "session.store",
	"session_store_path":  "session.path",
	"session_ttl":         "session.ttl",
	"session_cookie_name": "session.cookie_name",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Event bus mappings
	"events_enabled": "events.enabled",
	"events_buffer":  "events.buffer",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return "" and are skipped so unrelated environment variables
// cannot pollute the config.
//
// Examples:
//   - TMDB_API_KEY -> catalog.api_key
//   - HTTP_PORT -> server.port
//   - SESSION_STORE_PATH -> session.path
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
