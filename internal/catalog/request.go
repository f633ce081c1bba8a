// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pelismatch/internal/metrics"
	"github.com/tomtom215/pelismatch/internal/models"
)

// maxErrorBody caps how much of a failed response is read into the error.
const maxErrorBody = 64 * 1024

// StatusError is a non-2xx TMDb response.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
}

// Unwrap classifies the status into the error taxonomy.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return models.ErrNotFound
	}
	return models.ErrUpstream
}

// getJSON performs a GET on path with params, decoding the body into target.
// The call goes through the circuit breaker and is recorded under op.
func (c *Client) getJSON(ctx context.Context, op, path string, params url.Values, target interface{}) error {
	start := time.Now()
	err := c.execute(func() error {
		resp, err := c.doRequestWithRateLimit(ctx, c.buildURL(path, params))
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &StatusError{Op: op, StatusCode: resp.StatusCode, Message: readBodyForError(resp.Body)}
		}
		if err := decodeJSONResponse(resp.Body, target); err != nil {
			return fmt.Errorf("%s: %w: %w", op, models.ErrUpstream, err)
		}
		return nil
	})
	metrics.RecordCatalogCall(op, time.Since(start), err)
	return err
}

func (c *Client) buildURL(path string, params url.Values) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	if c.language != "" {
		q.Set("language", c.language)
	}
	return c.baseURL + path + "?" + q.Encode()
}

// doRequestWithRateLimit performs an HTTP GET request with rate limiting and retry logic.
// Implements exponential backoff for HTTP 429 (Too Many Requests) responses.
func (c *Client) doRequestWithRateLimit(ctx context.Context, rawURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.transportError(ctx, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, c.transportError(ctx, err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = &StatusError{Op: "rate limited", StatusCode: resp.StatusCode}
		if attempt == c.maxRetries {
			break
		}

		backoff := c.retryBaseDelay * time.Duration(1<<attempt)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if d, parseErr := time.ParseDuration(retryAfter + "s"); parseErr == nil {
				backoff = d
			}
		}

		metrics.CatalogRateLimitRetries.Inc()
		c.logger.Warn().
			Int("attempt", attempt+1).
			Int("max_retries", c.maxRetries).
			Dur("backoff", backoff).
			Msg("rate limited by TMDb (HTTP 429), retrying after backoff")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, c.transportError(ctx, ctx.Err())
		}
	}

	return nil, fmt.Errorf("rate limit exceeded after %d retries: %w", c.maxRetries, lastErr)
}

// transportError keeps caller cancellation distinguishable from an upstream
// failure. Deadlines count as upstream failures.
func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %w", models.ErrUpstream, err)
}

// readBodyForError reads a limited body for error context.
// TMDb error bodies carry a status_message which is preferred when present.
func readBodyForError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var apiErr models.TMDbError
	if json.Unmarshal(data, &apiErr) == nil && apiErr.StatusMessage != "" {
		return apiErr.StatusMessage
	}
	return string(data)
}

// decodeJSONResponse decodes a JSON response body into the target.
func decodeJSONResponse(body io.Reader, target interface{}) error {
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
