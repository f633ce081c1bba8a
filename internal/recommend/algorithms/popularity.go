// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package algorithms

import (
	"math"
	"slices"

	"github.com/tomtom215/pelismatch/internal/models"
)

// Popularity ranks movies by an IMDb-style weighted rating, which pulls
// movies with few votes toward the global mean:
//
//	W = v/(v+m) * R + m/(v+m) * C
//
// where v is the vote count, R the average vote, m the minimum votes
// required and C the assumed global average.
type Popularity struct {
	minVotes      float64
	globalAverage float64
	limit         int
}

// PopularityConfig contains configuration for the popularity ranking.
type PopularityConfig struct {
	// MinVotes is m in the weighted rating formula.
	MinVotes float64

	// GlobalAverage is C in the weighted rating formula.
	GlobalAverage float64

	// Limit caps the ranking length.
	Limit int
}

// NewPopularity creates a popularity ranking. Zero values use m=1000, C=7.0
// and a limit of 20.
func NewPopularity(cfg PopularityConfig) *Popularity {
	if cfg.MinVotes <= 0 {
		cfg.MinVotes = 1000
	}
	if cfg.GlobalAverage <= 0 {
		cfg.GlobalAverage = 7.0
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 20
	}
	return &Popularity{
		minVotes:      cfg.MinVotes,
		globalAverage: cfg.GlobalAverage,
		limit:         cfg.Limit,
	}
}

// WeightedRating returns W rounded to three decimals.
func (p *Popularity) WeightedRating(votes int, average float64) float64 {
	v := float64(votes)
	if v < 0 {
		v = 0
	}
	denom := v + p.minVotes
	w := (v/denom)*average + (p.minVotes/denom)*p.globalAverage
	return math.Round(w*1000) / 1000
}

// Rank scores each movie and returns up to the configured limit, best first.
// Equal scores keep input order.
func (p *Popularity) Rank(movies []models.RankedMovie) []models.RankedMovie {
	ranked := make([]models.RankedMovie, len(movies))
	copy(ranked, movies)
	for i := range ranked {
		ranked[i].WeightedScore = p.WeightedRating(ranked[i].VoteCount, ranked[i].VoteAverage)
	}

	slices.SortStableFunc(ranked, func(a, b models.RankedMovie) int {
		switch {
		case a.WeightedScore > b.WeightedScore:
			return -1
		case a.WeightedScore < b.WeightedScore:
			return 1
		}
		return 0
	})

	if len(ranked) > p.limit {
		ranked = ranked[:p.limit]
	}
	return ranked
}
