// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/pelismatch/internal/dialogue"
	"github.com/tomtom215/pelismatch/internal/discovery"
	"github.com/tomtom215/pelismatch/internal/events"
	"github.com/tomtom215/pelismatch/internal/models"
)

// PeopleResponse is the local people catalog.
type PeopleResponse struct {
	Directors []models.Person `json:"directors"`
	Actors    []models.Person `json:"actors"`
}

func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.requestTimeout())
}

// SimilarMovies finds a movie by title and ranks its catalog neighbors.
//
// GET /api/v1/movies/similar/{title}
func (h *Handler) SimilarMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	title := strings.TrimSpace(chi.URLParam(r, "title"))
	if title == "" || len(title) > maxTitleLength {
		rw.FromError(fmt.Errorf("title must be 1-%d characters: %w", maxTitleLength, models.ErrValidation))
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	res, err := h.discovery.SimilarMovies(ctx, title)
	if err != nil {
		rw.FromError(err)
		return
	}

	h.events.RecommendationServed(r.Context(), events.RecommendationServed{
		Source:   "similar",
		BasedOn:  1,
		Returned: len(res.Similar),
	})
	rw.Success(res)
}

// LogicSearch evaluates an include/exclude query over discover results.
//
// POST /api/v1/search/logic
//
//	{"include": {"directors": [525]}, "exclude": {"genres": [27]}}
func (h *Handler) LogicSearch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var q discovery.LogicQuery
	if err := decodeAndValidate(w, r, &q); err != nil {
		rw.FromError(err)
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	movies := h.discovery.LogicSearch(ctx, q)
	rw.SuccessList(movies, len(movies))
}

// TopMovies returns popular movies ranked by weighted rating.
//
// GET /api/v1/movies/top
func (h *Handler) TopMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	movies, err := h.discovery.TopMovies(ctx)
	if err != nil {
		rw.FromError(err)
		return
	}
	rw.SuccessList(movies, len(movies))
}

// AvailableMovies lists the external ids known to the embedding model.
//
// GET /api/v1/movies/available
func (h *Handler) AvailableMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ids, err := h.model.AvailableIDs()
	if err != nil {
		rw.FromError(err)
		return
	}
	rw.SuccessList(ids, len(ids))
}

// Genres returns the catalog genre list.
//
// GET /api/v1/genres
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	genres, err := h.genres.Genres(ctx)
	if err != nil {
		rw.FromError(err)
		return
	}
	rw.SuccessList(genres, len(genres))
}

// People returns the local director and actor catalog used by the chatbot.
//
// GET /api/v1/people
func (h *Handler) People(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, PeopleResponse{
		Directors: dialogue.Directors(),
		Actors:    dialogue.Actors(),
	})
}
