// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package catalog

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/pelismatch/internal/fuzzy"
	"github.com/tomtom215/pelismatch/internal/metrics"
	"github.com/tomtom215/pelismatch/internal/models"
)

// DefaultTitleCutoff is the fuzzy score a search result title must reach to
// be preferred over TMDb's own first result.
const DefaultTitleCutoff = 60

// DiscoverFilters narrows /discover/movie. Zero values are omitted.
type DiscoverFilters struct {
	GenreIDs []int
	PeopleID int

	// CastIDs and CrewIDs are OR-ed within each list.
	CastIDs []int
	CrewIDs []int

	// ReleaseDateGTE and ReleaseDateLTE are YYYY-MM-DD bounds.
	ReleaseDateGTE string
	ReleaseDateLTE string
}

func (f DiscoverFilters) params() url.Values {
	p := url.Values{}
	p.Set("sort_by", "popularity.desc")
	if len(f.GenreIDs) > 0 {
		p.Set("with_genres", joinIDs(f.GenreIDs, "|"))
	}
	if len(f.CastIDs) > 0 {
		p.Set("with_cast", joinIDs(f.CastIDs, "|"))
	}
	if len(f.CrewIDs) > 0 {
		p.Set("with_crew", joinIDs(f.CrewIDs, "|"))
	}
	if f.PeopleID > 0 {
		p.Set("with_people", strconv.Itoa(f.PeopleID))
	}
	if f.ReleaseDateGTE != "" {
		p.Set("release_date.gte", f.ReleaseDateGTE)
	}
	if f.ReleaseDateLTE != "" {
		p.Set("release_date.lte", f.ReleaseDateLTE)
	}
	return p
}

// SearchMovies returns TMDb's title search results in TMDb order.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]models.TMDbMovieResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var list models.TMDbMovieList
	if err := c.getJSON(ctx, "search_movie", "/search/movie", params, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// FindMovieByTitle searches for query and hydrates the best matching title.
// The result title scoring highest at or above minScore wins; with no such
// title TMDb's first result is used. No results at all is ErrNotFound.
func (c *Client) FindMovieByTitle(ctx context.Context, query string, minScore float64) (*models.MovieRecord, error) {
	results, err := c.SearchMovies(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("movie %q: %w", query, models.ErrNotFound)
	}

	titles := make([]string, len(results))
	for i := range results {
		titles[i] = results[i].Title
	}

	chosen := results[0]
	if m, ok := fuzzy.BestMatch(query, titles, minScore); ok {
		chosen = results[m.Index]
		c.logger.Debug().Str("query", query).Str("title", chosen.Title).Float64("score", m.Score).Msg("fuzzy title match")
	} else {
		c.logger.Debug().Str("query", query).Str("title", chosen.Title).Msg("no fuzzy title match, using first result")
	}

	return c.MovieDetail(ctx, chosen.ID)
}

// MovieDetail returns the movie with genres and credits, fetched in a single
// call and cached by id.
func (c *Client) MovieDetail(ctx context.Context, id int) (*models.MovieRecord, error) {
	if rec, ok := c.details.Get(id); ok {
		metrics.CatalogCacheHits.Inc()
		return rec, nil
	}
	metrics.CatalogCacheMisses.Inc()

	params := url.Values{}
	params.Set("append_to_response", "credits")

	var detail models.TMDbMovieDetail
	if err := c.getJSON(ctx, "movie_detail", "/movie/"+strconv.Itoa(id), params, &detail); err != nil {
		return nil, err
	}
	rec := detail.ToRecord()
	c.details.Add(id, rec)
	return rec, nil
}

// MovieSummary returns the client-facing view of a movie. Cached details
// are reused.
func (c *Client) MovieSummary(ctx context.Context, id int) (models.MovieSummary, error) {
	rec, err := c.MovieDetail(ctx, id)
	if err != nil {
		return models.MovieSummary{}, err
	}
	return models.MovieSummary{
		ExternalID: rec.ID,
		Title:      rec.Title,
		PosterURL:  c.PosterURL(rec.PosterPath),
		Overview:   rec.Overview,
	}, nil
}

// Recommendations returns TMDb's recommended movie ids for id, in TMDb order.
func (c *Client) Recommendations(ctx context.Context, id int) ([]int, error) {
	var list models.TMDbMovieList
	if err := c.getJSON(ctx, "recommendations", "/movie/"+strconv.Itoa(id)+"/recommendations", nil, &list); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(list.Results))
	for i := range list.Results {
		ids = append(ids, list.Results[i].ID)
	}
	return ids, nil
}

// Discover returns the first page of /discover/movie by descending popularity.
func (c *Client) Discover(ctx context.Context, filters DiscoverFilters) ([]models.MovieSummary, error) {
	var list models.TMDbMovieList
	if err := c.getJSON(ctx, "discover", "/discover/movie", filters.params(), &list); err != nil {
		return nil, err
	}
	return c.summaries(list.Results), nil
}

// PopularMovies returns the first page of /movie/popular with vote data for
// weighted ranking.
func (c *Client) PopularMovies(ctx context.Context) ([]models.RankedMovie, error) {
	var list models.TMDbMovieList
	if err := c.getJSON(ctx, "popular", "/movie/popular", nil, &list); err != nil {
		return nil, err
	}
	out := make([]models.RankedMovie, 0, len(list.Results))
	for i := range list.Results {
		r := &list.Results[i]
		out = append(out, models.RankedMovie{
			ExternalID:  r.ID,
			Title:       r.Title,
			PosterURL:   c.PosterURL(r.PosterPath),
			Overview:    r.Overview,
			VoteCount:   r.VoteCount,
			VoteAverage: r.VoteAverage,
		})
	}
	return out, nil
}

// Genres returns the movie genre list sorted by id.
func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	var list models.TMDbGenreList
	if err := c.getJSON(ctx, "genres", "/genre/movie/list", nil, &list); err != nil {
		return nil, err
	}
	out := make([]models.Genre, 0, len(list.Genres))
	for _, g := range list.Genres {
		out = append(out, models.Genre{ID: g.ID, Name: g.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *Client) summaries(results []models.TMDbMovieResult) []models.MovieSummary {
	out := make([]models.MovieSummary, 0, len(results))
	for i := range results {
		r := &results[i]
		out = append(out, models.MovieSummary{
			ExternalID: r.ID,
			Title:      r.Title,
			PosterURL:  c.PosterURL(r.PosterPath),
			Overview:   r.Overview,
		})
	}
	return out
}

func joinIDs(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
