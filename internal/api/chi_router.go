// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/pelismatch/internal/middleware"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses the default middleware config.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)
	if h.perf != nil {
		r.Use(h.perf.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	// ========================
	// Health and Metrics
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Get("/health", h.Health)
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)
		r.Handle("/metrics", promhttp.Handler())
	})

	// ========================
	// API v1
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		// WebSocket upgrades must not pass through compression.
		r.With(router.chiMiddleware.RateLimitCustom(RateLimitWebSocket)).Get("/chat/ws", h.ChatWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Compress(5, "application/json"))

			r.With(router.chiMiddleware.RateLimitCustom(RateLimitChat)).Post("/chat", h.Chat)

			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitCustom(RateLimitFanOut))
				r.Post("/recommendations/favorites", h.RecommendFavorites)
				r.Get("/movies/similar/{title}", h.SimilarMovies)
				r.Post("/search/logic", h.LogicSearch)
			})

			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimit())
				r.Get("/movies/top", h.TopMovies)
				r.Get("/movies/available", h.AvailableMovies)
				r.Get("/genres", h.Genres)
				r.Get("/people", h.People)
				r.Get("/stats/latency", h.Latency)
			})
		})
	})

	return r
}
