// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/pelismatch/internal/discovery"
	"github.com/tomtom215/pelismatch/internal/events"
)

// RecommendFavorites ranks the embedding model against favorite movies.
//
// POST /api/v1/recommendations/favorites
//
//	{"favorite_external_ids": [603, 155], "weights": {"603": 2}, "top_n": 10}
//
// 400 when the list is empty or malformed, 503 when no model is loaded and
// 404 when none of the ids are in the model.
func (h *Handler) RecommendFavorites(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req discovery.FavoritesRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		rw.FromError(err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	res, err := h.discovery.RecommendFromFavorites(ctx, req)
	if err != nil {
		rw.FromError(err)
		return
	}

	h.events.RecommendationServed(r.Context(), events.RecommendationServed{
		Source:     "favorites",
		BasedOn:    len(res.BasedOn),
		Unresolved: len(res.Unresolved),
		Returned:   len(res.Recommendations),
	})
	rw.Success(res)
}
