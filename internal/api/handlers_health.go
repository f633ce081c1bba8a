// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/pelismatch/internal/middleware"
	"github.com/tomtom215/pelismatch/internal/recommend/storage"
)

// Version is the service version reported by /health. Set at build time with
// -ldflags "-X github.com/tomtom215/pelismatch/internal/api.Version=...".
var Version = "dev"

// HealthStatus is the /health report.
type HealthStatus struct {
	Status       string                 `json:"status"` // "healthy" or "degraded"
	Version      string                 `json:"version"`
	ModelReady   bool                   `json:"model_ready"`
	Model        *storage.ModelMetadata `json:"model,omitempty"`
	SessionStore string                 `json:"session_store,omitempty"`
	Uptime       float64                `json:"uptime_seconds"`
}

// LatencyReport is the /api/v1/stats/latency payload.
type LatencyReport struct {
	Endpoints []middleware.EndpointStats `json:"endpoints"`
	Recent    []middleware.RequestSample `json:"recent,omitempty"`
}

// Health reports model readiness. The service is degraded, not down, while
// no model is loaded: the chatbot and catalog endpoints keep working.
//
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:       "degraded",
		Version:      Version,
		SessionStore: h.sessionStore,
		Uptime:       time.Since(h.startTime).Seconds(),
	}
	if h.model != nil && h.model.Ready() {
		status.Status = "healthy"
		status.ModelReady = true
		if m := h.model.Model(); m != nil {
			meta := m.Metadata()
			status.Model = &meta
		}
	}
	WriteSuccess(w, r, status)
}

// HealthLive always answers 200 while the process serves HTTP.
//
// GET /health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]string{"status": "alive"})
}

// HealthReady answers 503 until the embedding model is loaded.
//
// GET /health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.model == nil || !h.model.Ready() {
		NewResponseWriter(w, r).ServiceUnavailable("recommendation model is not loaded")
		return
	}
	WriteSuccess(w, r, map[string]string{"status": "ready"})
}

// Latency reports per-route latency over the recent request window.
//
// GET /api/v1/stats/latency
func (h *Handler) Latency(w http.ResponseWriter, r *http.Request) {
	if h.perf == nil {
		NewResponseWriter(w, r).ServiceUnavailable("latency monitoring is disabled")
		return
	}
	WriteSuccess(w, r, LatencyReport{
		Endpoints: h.perf.Stats(),
		Recent:    h.perf.Recent(20),
	})
}
