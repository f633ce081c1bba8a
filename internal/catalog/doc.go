// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

/*
Package catalog is the client for The Movie Database (TMDb) v3 API, the movie
catalog PelisMatch searches, hydrates and discovers movies from.

# Operations

  - SearchMovies, FindMovieByTitle: title search with fuzzy best-title pick
  - MovieDetail: detail with credits in one call, cached in an LRU
  - MovieSummary: title and poster for a movie id
  - Recommendations: TMDb's neighbor ids for a movie
  - Discover: filtered discovery sorted by popularity
  - SearchPerson, RemotePersonCandidates: person search with fuzzy scores
  - PopularMovies, Genres: lists for the catalog endpoints

Every request carries the api_key and language query parameters.

# Resilience

  - HTTP client with a per-request timeout
  - Token bucket rate limiter shared by all calls
  - Exponential backoff on HTTP 429, honoring Retry-After
  - Circuit breaker: opens at 60% failures over at least 10 requests,
    half-opens after 2 minutes with 3 trial requests

# Errors

Transport, status and decoding failures wrap models.ErrUpstream. HTTP 404 and
empty searches wrap models.ErrNotFound and do not count against the breaker.
*/
package catalog
