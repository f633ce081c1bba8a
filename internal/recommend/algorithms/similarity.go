// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package algorithms

import (
	"github.com/tomtom215/pelismatch/internal/metrics"
	"github.com/tomtom215/pelismatch/internal/models"
)

// LeadCastSize is how many billed cast members count toward the actor term.
const LeadCastSize = 3

// SimilarityWeights configures the three terms of the similarity score.
type SimilarityWeights struct {
	Director float64
	Genre    float64
	Actor    float64
}

// DefaultSimilarityWeights returns director 3.0, genre 2.0, actor 1.5.
func DefaultSimilarityWeights() SimilarityWeights {
	return SimilarityWeights{Director: 3.0, Genre: 2.0, Actor: 1.5}
}

// SimilarityScorer scores how related two movies are.
//
// The score is computed as:
//
//	score(a, b) = w_director * [director(a) == director(b)] +
//	              w_genre    * |genres(a) ∩ genres(b)| +
//	              w_actor    * |top3cast(a) ∩ top3cast(b)|
//
// Every term is set-based, so score(a, b) == score(b, a). A missing director
// on either side contributes 0. Zero means no detected relation.
type SimilarityScorer struct {
	weights SimilarityWeights
}

// NewSimilarityScorer creates a scorer. Negative weights are clamped to zero
// so scores stay non-negative.
func NewSimilarityScorer(w SimilarityWeights) *SimilarityScorer {
	w.Director = max(w.Director, 0)
	w.Genre = max(w.Genre, 0)
	w.Actor = max(w.Actor, 0)
	return &SimilarityScorer{weights: w}
}

// Weights returns the configured weights.
func (s *SimilarityScorer) Weights() SimilarityWeights {
	return s.weights
}

// Score returns the weighted similarity between a and b. Nil records score 0.
func (s *SimilarityScorer) Score(a, b *models.MovieRecord) float64 {
	if a == nil || b == nil {
		return 0
	}
	metrics.SimilarityScored.Inc()

	var score float64

	da, okA := a.Director()
	db, okB := b.Director()
	if okA && okB && da != "" && da == db {
		score += s.weights.Director
	}

	score += s.weights.Genre * float64(intersectCount(a.GenreIDs, b.GenreIDs))
	score += s.weights.Actor * float64(intersectCount(a.TopCast(LeadCastSize), b.TopCast(LeadCastSize)))

	return score
}

// intersectCount returns the size of the set intersection of a and b.
func intersectCount[T comparable](a, b []T) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[T]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	n := 0
	for _, v := range b {
		if _, ok := set[v]; ok {
			n++
			delete(set, v)
		}
	}
	return n
}
