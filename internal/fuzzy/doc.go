// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

// Package fuzzy implements the text normalization and token-set fuzzy
// matching used to resolve free-text user input against small vocabularies
// (genres, eras, people, reset words) and catalog search results.
//
// Scores follow the RapidFuzz token_set_ratio definition on top of the
// normalized Indel similarity, so thresholds tuned against that library
// (70 for slots, 80 for commands, 85 for remote auto-selection) carry over.
//
// # Tie-break
//
// When several choices reach the same maximum score, the choice that appears
// first in the input order wins. ExtractMany uses a stable sort, so equal
// scores keep their insertion order.
package fuzzy
