// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/pelismatch/internal/config"
	"github.com/tomtom215/pelismatch/internal/dialogue"
	"github.com/tomtom215/pelismatch/internal/discovery"
	"github.com/tomtom215/pelismatch/internal/events"
	"github.com/tomtom215/pelismatch/internal/middleware"
	"github.com/tomtom215/pelismatch/internal/models"
	"github.com/tomtom215/pelismatch/internal/recommend/storage"
)

// Discovery is the movie discovery service.
type Discovery interface {
	SimilarMovies(ctx context.Context, title string) (*discovery.SimilarResult, error)
	LogicSearch(ctx context.Context, q discovery.LogicQuery) []models.MovieSummary
	RecommendFromFavorites(ctx context.Context, req discovery.FavoritesRequest) (*discovery.FavoritesResult, error)
	TopMovies(ctx context.Context) ([]models.RankedMovie, error)
}

// Conversation runs chatbot turns.
type Conversation interface {
	Handle(ctx context.Context, token, message string) (*dialogue.Reply, error)
}

// GenreSource lists catalog genres.
type GenreSource interface {
	Genres(ctx context.Context) ([]models.Genre, error)
}

// ModelStatus reports the embedding model state.
type ModelStatus interface {
	Ready() bool
	Model() *storage.Model
	AvailableIDs() ([]int, error)
}

// Deps are the handler dependencies. Events and Perf may be nil.
type Deps struct {
	Config       *config.Config
	Discovery    Discovery
	Conversation Conversation
	Genres       GenreSource
	Model        ModelStatus
	Events       *events.Publisher
	Perf         *middleware.PerformanceMonitor
	SessionStore string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_chat.go: chatbot endpoints (HTTP and WebSocket)
//   - handlers_recommend.go: favorites recommendations
//   - handlers_movies.go: similar, top, available, logic search, genres, people
//   - handlers_health.go: health and latency reporting
type Handler struct {
	config       *config.Config
	discovery    Discovery
	conversation Conversation
	genres       GenreSource
	model        ModelStatus
	events       *events.Publisher
	perf         *middleware.PerformanceMonitor
	sessionStore string
	startTime    time.Time
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	cfg := d.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Handler{
		config:       cfg,
		discovery:    d.Discovery,
		conversation: d.Conversation,
		genres:       d.Genres,
		model:        d.Model,
		events:       d.Events,
		perf:         d.Perf,
		sessionStore: d.SessionStore,
		startTime:    time.Now(),
	}
}

// requestTimeout bounds handler work that calls the catalog.
func (h *Handler) requestTimeout() time.Duration {
	if h.config.Server.Timeout > 0 {
		return h.config.Server.Timeout
	}
	return 30 * time.Second
}
