// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

/*
Package models defines the data structures shared across PelisMatch.

Key Components:

  - MovieRecord: a fully hydrated movie (genres plus credits) as used by the
    similarity scorer
  - MovieSummary: the lightweight title/poster view returned to clients
  - Person / PersonCandidate: people resolved during the dialogue
  - TMDb wire models: raw response shapes of the movie catalog API
  - Error taxonomy: sentinel errors shared by every layer

Models hold no behavior beyond small accessors; computation lives in the
recommend, dialogue and catalog packages.
*/
package models
