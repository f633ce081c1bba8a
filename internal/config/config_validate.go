// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validSessionStores = map[string]bool{
	"memory": true,
	"badger": true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateModel(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateDialogue(); err != nil {
		return err
	}

	if err := c.validateSession(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.APIKey) == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if err := validateHTTPURL(c.Catalog.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.Catalog.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if c.Catalog.RequestTimeout <= 0 {
		return fmt.Errorf("TMDB_REQUEST_TIMEOUT must be positive")
	}
	if c.Catalog.RateLimit <= 0 || c.Catalog.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_LIMIT and TMDB_RATE_BURST must be positive")
	}
	if c.Catalog.MaxRetries < 0 {
		return fmt.Errorf("TMDB_MAX_RETRIES must not be negative")
	}
	if c.Catalog.MaxConcurrency < 1 {
		return fmt.Errorf("TMDB_MAX_CONCURRENCY must be at least 1")
	}
	return nil
}

func (c *Config) validateModel() error {
	if c.Model.EmbeddingsPath == "" || c.Model.MapsPath == "" {
		return fmt.Errorf("MODEL_EMBEDDINGS_PATH and MODEL_MAPS_PATH are required")
	}
	if c.Model.ReloadInterval < 0 {
		return fmt.Errorf("MODEL_RELOAD_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.TopN < 1 {
		return fmt.Errorf("RECOMMEND_TOP_N must be at least 1")
	}
	if c.Recommend.DirectorWeight < 0 || c.Recommend.GenreWeight < 0 || c.Recommend.ActorWeight < 0 {
		return fmt.Errorf("similarity weights must not be negative")
	}
	return nil
}

func (c *Config) validateDialogue() error {
	cutoffs := map[string]float64{
		"DIALOGUE_RESET_CUTOFF":      c.Dialogue.ResetCutoff,
		"DIALOGUE_MATCH_CUTOFF":      c.Dialogue.MatchCutoff,
		"DIALOGUE_NONE_CUTOFF":       c.Dialogue.NoneCutoff,
		"DIALOGUE_PERSON_CUTOFF":     c.Dialogue.PersonCutoff,
		"DIALOGUE_AUTO_SELECT_SCORE": c.Dialogue.AutoSelectScore,
	}
	for name, v := range cutoffs {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %v", name, v)
		}
	}
	if c.Dialogue.MaxLocalCandidates < 1 || c.Dialogue.RemotePersonLimit < 1 {
		return fmt.Errorf("dialogue candidate limits must be at least 1")
	}
	if c.Dialogue.RecommendationCount < 1 {
		return fmt.Errorf("DIALOGUE_RECOMMENDATION_COUNT must be at least 1")
	}
	if c.Dialogue.MaxRetries < 0 {
		return fmt.Errorf("DIALOGUE_MAX_RETRIES must not be negative")
	}
	return nil
}

func (c *Config) validateSession() error {
	if !validSessionStores[c.Session.Store] {
		return fmt.Errorf("SESSION_STORE must be one of: memory, badger")
	}
	if c.Session.Store == "badger" && c.Session.Path == "" {
		return fmt.Errorf("SESSION_STORE_PATH is required when SESSION_STORE=badger")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
	}
	return nil
}
