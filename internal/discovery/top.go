// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package discovery

import (
	"context"

	"github.com/tomtom215/pelismatch/internal/models"
)

// TopMovies ranks the catalog's popular list by weighted rating.
func (s *Service) TopMovies(ctx context.Context) ([]models.RankedMovie, error) {
	popular, err := s.catalog.PopularMovies(ctx)
	if err != nil {
		return nil, err
	}
	return s.popularity.Rank(popular), nil
}
