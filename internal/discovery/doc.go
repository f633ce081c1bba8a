// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

// Package discovery composes the catalog, the embedding recommender and the
// similarity scorer into the non-conversational features: similar movies,
// boolean include/exclude search, favorites recommendations and the weighted
// top list.
//
// Fan-out calls go through internal/batch. A failing item is logged and
// dropped; only required single calls surface an error.
package discovery
