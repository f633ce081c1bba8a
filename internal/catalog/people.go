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

	"github.com/tomtom215/pelismatch/internal/fuzzy"
	"github.com/tomtom215/pelismatch/internal/models"
)

// DefaultPersonLimit is how many person search results are scored.
const DefaultPersonLimit = 5

// SearchPerson returns TMDb's person search results in TMDb order.
func (c *Client) SearchPerson(ctx context.Context, query string) ([]models.TMDbPersonResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var list models.TMDbPersonList
	if err := c.getJSON(ctx, "search_person", "/search/person", params, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// FindPersonID returns the id of TMDb's first match for name.
func (c *Client) FindPersonID(ctx context.Context, name string) (int, error) {
	results, err := c.SearchPerson(ctx, name)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("person %q: %w", name, models.ErrNotFound)
	}
	return results[0].ID, nil
}

// RemotePersonCandidates scores the first limit person search results
// against query and returns them by descending score. Equal scores keep
// TMDb order.
func (c *Client) RemotePersonCandidates(ctx context.Context, query string, limit int) ([]models.PersonCandidate, error) {
	if limit <= 0 {
		limit = DefaultPersonLimit
	}
	results, err := c.SearchPerson(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}

	out := make([]models.PersonCandidate, 0, len(results))
	for _, p := range results {
		out = append(out, models.PersonCandidate{
			ID:    p.ID,
			Label: p.Name,
			Kind:  models.PersonRemote,
			Score: fuzzy.Score(query, p.Name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}
