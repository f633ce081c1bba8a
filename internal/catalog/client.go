// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package catalog

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/pelismatch/internal/cache"
	"github.com/tomtom215/pelismatch/internal/config"
	"github.com/tomtom215/pelismatch/internal/models"
)

// Client is a TMDb API client. It is safe for concurrent use.
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	language     string

	httpClient     *http.Client
	limiter        *rate.Limiter
	breaker        *gobreaker.CircuitBreaker[any]
	details        *cache.LRU[int, *models.MovieRecord]
	maxRetries     int
	retryBaseDelay time.Duration

	logger zerolog.Logger
}

// NewClient builds a client from the catalog configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg *config.CatalogConfig, logger zerolog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("catalog config is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("catalog API key is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("catalog base URL is required")
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	logger = logger.With().Str("component", "catalog").Logger()

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: cfg.ImageBaseURL,
		apiKey:       cfg.APIKey,
		language:     cfg.Language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:        rate.NewLimiter(limit, burst),
		breaker:        newCircuitBreaker(logger),
		details:        cache.NewLRU[int, *models.MovieRecord](cfg.CacheSize, cfg.CacheTTL),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		logger:         logger,
	}, nil
}

// PosterURL joins a relative poster path onto the image base URL.
// An empty path yields an empty URL.
func (c *Client) PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + path
}

// CacheStats reports the detail cache counters.
func (c *Client) CacheStats() (hits, misses int64, size int) {
	return c.details.Stats()
}

// PurgeExpired drops expired detail cache entries and returns how many went.
func (c *Client) PurgeExpired() int {
	return c.details.CleanupExpired()
}
