// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

// Package recommend ranks the movie catalog against a user's favorites using
// the offline-trained embedding model.
//
// # Algorithm
//
// Given favorite external ids:
//
//  1. Translate each id external -> native -> row, skipping ids that do not resolve
//  2. Scale each resolved (unit-norm) row by its optional weight (default 1.0)
//  3. Average the weighted vectors and renormalize to a taste profile
//  4. Score every row by its dot product with the profile (cosine similarity)
//  5. Walk rows by score descending, row ascending on ties, translating back
//     to external ids and skipping favorites until top N are collected
//
// # Readiness
//
// The Recommender holds the current model behind an atomic pointer. Until a
// model is installed every call returns ErrNotReady; the model loader swaps
// in a rebuilt model without blocking readers.
//
// See the algorithms subpackage for the pairwise similarity scorer and the
// popularity ranking used by the catalog endpoints.
package recommend
