// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package discovery

import (
	"context"
	"sort"

	"github.com/tomtom215/pelismatch/internal/batch"
	"github.com/tomtom215/pelismatch/internal/catalog"
	"github.com/tomtom215/pelismatch/internal/models"
)

// Criteria are id lists, each matched by any of its ids.
type Criteria struct {
	Directors []int `json:"directors" validate:"omitempty,dive,gt=0"`
	Actors    []int `json:"actors" validate:"omitempty,dive,gt=0"`
	Genres    []int `json:"genres" validate:"omitempty,dive,gt=0"`
}

// Empty reports whether no ids are set.
func (c Criteria) Empty() bool {
	return len(c.Directors) == 0 && len(c.Actors) == 0 && len(c.Genres) == 0
}

// LogicQuery selects movies matching any include criterion and no exclude
// criterion.
type LogicQuery struct {
	Include Criteria `json:"include"`
	Exclude Criteria `json:"exclude"`
}

type logicCall struct {
	exclude bool
	filters catalog.DiscoverFilters
}

func (c Criteria) calls(exclude bool) []logicCall {
	var out []logicCall
	if len(c.Directors) > 0 {
		out = append(out, logicCall{exclude: exclude, filters: catalog.DiscoverFilters{CrewIDs: c.Directors}})
	}
	if len(c.Actors) > 0 {
		out = append(out, logicCall{exclude: exclude, filters: catalog.DiscoverFilters{CastIDs: c.Actors}})
	}
	if len(c.Genres) > 0 {
		out = append(out, logicCall{exclude: exclude, filters: catalog.DiscoverFilters{GenreIDs: c.Genres}})
	}
	return out
}

// LogicSearch evaluates include AND NOT exclude over discover results.
// Each non-empty id list is one discover call; all calls run concurrently
// and a failed call contributes nothing. Results are sorted by id.
func (s *Service) LogicSearch(ctx context.Context, q LogicQuery) []models.MovieSummary {
	calls := append(q.Include.calls(false), q.Exclude.calls(true)...)
	if len(calls) == 0 {
		return []models.MovieSummary{}
	}

	results := batch.Map(ctx, calls, s.batchOptions("logic_search"), func(ctx context.Context, c logicCall) ([]models.MovieSummary, error) {
		return s.catalog.Discover(ctx, c.filters)
	})
	logFailures(s.logger, "logic_search", calls, results)

	included := make(map[int]models.MovieSummary)
	excluded := make(map[int]struct{})
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		for _, m := range r.Value {
			if calls[i].exclude {
				excluded[m.ExternalID] = struct{}{}
			} else {
				included[m.ExternalID] = m
			}
		}
	}

	out := make([]models.MovieSummary, 0, len(included))
	for id, m := range included {
		if _, drop := excluded[id]; !drop {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out
}
