// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

/*
Package config provides centralized configuration management for PelisMatch.

# Configuration Sources

Configuration is layered, later sources overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/pelismatch/config.yaml)
  - Environment variables, with a .env file in the working directory
    loaded into the process environment first

# Environment Variables

Catalog (TMDb):
  - TMDB_API_KEY: API key (required)
  - TMDB_BASE_URL: API base URL (default: https://api.themoviedb.org/3)
  - TMDB_LANGUAGE: Result language (default: es-ES)
  - TMDB_REQUEST_TIMEOUT: Per-request timeout (default: 10s)

Model artifacts:
  - MODEL_EMBEDDINGS_PATH: .npy embedding matrix (default: movie_embeddings.npy)
  - MODEL_MAPS_PATH: JSON id maps (default: model_maps.json)
  - MODEL_RELOAD_INTERVAL: How often to check artifacts for changes (default: 1m)

Server and security:
  - HTTP_HOST, HTTP_PORT: Bind address (default: 0.0.0.0:8080)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: Per-IP request limit

Dialogue and sessions:
  - DIALOGUE_MAX_RETRIES: Consecutive misses before reset (default: 0, unlimited)
  - SESSION_STORE: memory or badger (default: memory)
  - SESSION_STORE_PATH: Badger directory (default: ./data/sessions)
  - SESSION_TTL: Idle conversation lifetime (default: 30m)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)

# Usage

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
*/
package config
