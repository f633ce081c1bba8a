// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

// Package storage loads the offline-trained embedding model consumed at
// serving time.
//
// # Artifact Format
//
// Two files are produced by the training job:
//
//   - movie_embeddings.npy: a 2-D NumPy array (N rows x D columns) of
//     little-endian float32 or float64 in C order. Row i is the latent
//     vector of internal movie i.
//   - model_maps.json: an object with string-keyed integer maps
//     "movie_map" (native id -> row), "movielens_to_tmdb"
//     (native id -> external id) and, optionally, "movie_idx_to_id"
//     (row -> native id).
//
// # ID Spaces
//
// External ids are catalog (TMDb) ids. Native ids are the rating dataset's
// ids that bridge external ids and embedding rows. After load only entries
// whose row lies in [0, N) and whose native id pairs with an external id are
// retained, so every external id in the model translates to exactly one row
// and back.
//
// # Thread Safety
//
// A Model is immutable after construction and safe for concurrent reads.
package storage
