// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package discovery

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pelismatch/internal/batch"
	"github.com/tomtom215/pelismatch/internal/catalog"
	"github.com/tomtom215/pelismatch/internal/models"
	"github.com/tomtom215/pelismatch/internal/recommend"
	"github.com/tomtom215/pelismatch/internal/recommend/algorithms"
)

// Catalog is the subset of the TMDb client discovery needs.
type Catalog interface {
	FindMovieByTitle(ctx context.Context, query string, minScore float64) (*models.MovieRecord, error)
	MovieDetail(ctx context.Context, id int) (*models.MovieRecord, error)
	MovieSummary(ctx context.Context, id int) (models.MovieSummary, error)
	Recommendations(ctx context.Context, id int) ([]int, error)
	Discover(ctx context.Context, filters catalog.DiscoverFilters) ([]models.MovieSummary, error)
	PopularMovies(ctx context.Context) ([]models.RankedMovie, error)
	PosterURL(path string) string
}

// Recommender ranks the model against favorites.
type Recommender interface {
	Recommend(ctx context.Context, favorites []int, topN int, weights map[int]float64) (*recommend.Result, error)
}

// Config bounds discovery fan-out.
type Config struct {
	// CallTimeout bounds each fanned-out catalog call.
	CallTimeout time.Duration

	// MaxConcurrency caps in-flight catalog calls per batch.
	MaxConcurrency int

	// TopN is the favorites ranking size when a request gives none.
	TopN int

	// TitleCutoff is the fuzzy score for picking a searched title.
	TitleCutoff float64
}

// Service implements the discovery features. It is safe for concurrent use.
type Service struct {
	catalog     Catalog
	recommender Recommender
	scorer      *algorithms.SimilarityScorer
	popularity  *algorithms.Popularity
	cfg         Config
	logger      zerolog.Logger
}

// NewService wires a discovery service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cat Catalog, rec Recommender, scorer *algorithms.SimilarityScorer, cfg Config, logger zerolog.Logger) *Service {
	if scorer == nil {
		scorer = algorithms.NewSimilarityScorer(algorithms.DefaultSimilarityWeights())
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = batch.DefaultLimit
	}
	if cfg.TopN <= 0 {
		cfg.TopN = recommend.DefaultTopN
	}
	if cfg.TitleCutoff <= 0 {
		cfg.TitleCutoff = catalog.DefaultTitleCutoff
	}
	return &Service{
		catalog:     cat,
		recommender: rec,
		scorer:      scorer,
		popularity:  algorithms.NewPopularity(algorithms.PopularityConfig{}),
		cfg:         cfg,
		logger:      logger.With().Str("component", "discovery").Logger(),
	}
}

func (s *Service) batchOptions(name string) batch.Options {
	return batch.Options{
		Limit:   s.cfg.MaxConcurrency,
		Timeout: s.cfg.CallTimeout,
		Name:    name,
	}
}

// logFailures logs each failed item of a batch at debug level.
func logFailures[I, T any](logger zerolog.Logger, batchName string, items []I, results []batch.Result[T]) {
	for i, r := range results {
		if r.Err != nil {
			logger.Debug().Err(r.Err).Str("batch", batchName).Interface("item", items[i]).Msg("batch item dropped")
		}
	}
}
