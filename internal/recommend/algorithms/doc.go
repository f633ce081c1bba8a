// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

// Package algorithms implements the catalog-side ranking functions that do
// not need the embedding model.
//
//   - SimilarityScorer: weighted director, genre and lead-cast overlap
//     between two hydrated movie records
//   - Popularity: IMDb-style weighted rating over vote counts
//
// # Thread Safety
//
// Both types are immutable after construction and safe for concurrent use.
package algorithms
