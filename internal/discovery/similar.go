// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package discovery

import (
	"context"
	"fmt"
	"slices"

	"github.com/tomtom215/pelismatch/internal/batch"
	"github.com/tomtom215/pelismatch/internal/models"
)

// SimilarResult is the searched movie with its scored neighbors.
type SimilarResult struct {
	Movie   models.MovieSummary   `json:"movie"`
	Similar []models.SimilarMovie `json:"similar"`
}

// SimilarMovies finds title, fetches its catalog neighbors and ranks them by
// shared director, genres and lead cast. Neighbors scoring 0 are dropped.
//
// The title search and the neighbor list are required; a neighbor whose
// detail cannot be fetched is skipped.
func (s *Service) SimilarMovies(ctx context.Context, title string) (*SimilarResult, error) {
	primary, err := s.catalog.FindMovieByTitle(ctx, title, s.cfg.TitleCutoff)
	if err != nil {
		return nil, err
	}

	neighborIDs, err := s.catalog.Recommendations(ctx, primary.ID)
	if err != nil {
		return nil, fmt.Errorf("neighbors of %d: %w", primary.ID, err)
	}

	results := batch.Map(ctx, neighborIDs, s.batchOptions("similar"), s.catalog.MovieDetail)
	logFailures(s.logger, "similar", neighborIDs, results)

	similar := make([]models.SimilarMovie, 0, len(results))
	for _, neighbor := range batch.Values(results) {
		score := s.scorer.Score(primary, neighbor)
		if score <= 0 {
			continue
		}
		similar = append(similar, models.SimilarMovie{
			ExternalID: neighbor.ID,
			Title:      neighbor.Title,
			Similarity: score,
			PosterURL:  s.catalog.PosterURL(neighbor.PosterPath),
		})
	}
	slices.SortStableFunc(similar, func(a, b models.SimilarMovie) int {
		switch {
		case a.Similarity > b.Similarity:
			return -1
		case a.Similarity < b.Similarity:
			return 1
		default:
			return 0
		}
	})

	s.logger.Debug().
		Int("movie", primary.ID).
		Int("neighbors", len(neighborIDs)).
		Int("scored", len(similar)).
		Msg("similar movies ranked")

	return &SimilarResult{
		Movie: models.MovieSummary{
			ExternalID: primary.ID,
			Title:      primary.Title,
			PosterURL:  s.catalog.PosterURL(primary.PosterPath),
			Overview:   primary.Overview,
		},
		Similar: similar,
	}, nil
}
