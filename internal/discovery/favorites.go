// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package discovery

import (
	"context"
	"fmt"

	"github.com/tomtom215/pelismatch/internal/batch"
	"github.com/tomtom215/pelismatch/internal/models"
)

// FavoritesRequest asks for recommendations from favorite movies.
type FavoritesRequest struct {
	FavoriteIDs []int           `json:"favorite_external_ids" validate:"required,min=1,dive,gt=0"`
	Weights     map[int]float64 `json:"weights,omitempty"`
	TopN        int             `json:"top_n,omitempty" validate:"omitempty,gte=1,lte=100"`
}

// FavoritesResult lists hydrated recommendations.
type FavoritesResult struct {
	BasedOn         []int                 `json:"based_on"`
	Unresolved      []int                 `json:"unresolved,omitempty"`
	Recommendations []models.MovieSummary `json:"recommendations"`
}

// RecommendFromFavorites ranks the model against the favorites and hydrates
// the ranking with catalog summaries. Summaries that fail are dropped.
//
// Returns models.ErrServiceUnavailable while no model is loaded and
// models.ErrNotFound when no favorite is in the model.
func (s *Service) RecommendFromFavorites(ctx context.Context, req FavoritesRequest) (*FavoritesResult, error) {
	if len(req.FavoriteIDs) == 0 {
		return nil, fmt.Errorf("favorites list is empty: %w", models.ErrValidation)
	}
	topN := req.TopN
	if topN <= 0 {
		topN = s.cfg.TopN
	}

	res, err := s.recommender.Recommend(ctx, req.FavoriteIDs, topN, req.Weights)
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, fmt.Errorf("none of the favorite movies are in the model: %w", models.ErrNotFound)
	}

	results := batch.Map(ctx, res.ExternalIDs, s.batchOptions("favorites"), s.catalog.MovieSummary)
	logFailures(s.logger, "favorites", res.ExternalIDs, results)

	return &FavoritesResult{
		BasedOn:         req.FavoriteIDs,
		Unresolved:      res.Unresolved,
		Recommendations: batch.Values(results),
	}, nil
}
