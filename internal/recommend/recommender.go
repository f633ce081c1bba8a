// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package recommend

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pelismatch/internal/metrics"
	"github.com/tomtom215/pelismatch/internal/models"
	"github.com/tomtom215/pelismatch/internal/recommend/storage"
)

// DefaultTopN is used when a request does not ask for a size.
const DefaultTopN = 20

// ErrNotReady is returned while no embedding model is loaded.
var ErrNotReady = fmt.Errorf("recommender not ready: %w", models.ErrServiceUnavailable)

// Result is the outcome of one favorites request.
type Result struct {
	// ExternalIDs are the recommendations, best first. Never contains a favorite.
	ExternalIDs []int

	// Resolved are the favorites that translated to an embedding row, in input order.
	Resolved []int

	// Unresolved are the favorites that did not translate.
	Unresolved []int
}

// Empty reports whether none of the favorites resolved.
func (r *Result) Empty() bool {
	return len(r.Resolved) == 0
}

// Recommender is the embedding-based recommender. It is safe for concurrent use.
type Recommender struct {
	model  atomic.Pointer[storage.Model]
	logger zerolog.Logger
}

// NewRecommender creates a recommender with no model installed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommender(logger zerolog.Logger) *Recommender {
	return &Recommender{
		logger: logger.With().Str("component", "recommend").Logger(),
	}
}

// SetModel installs m, replacing any previous model. A nil model makes the
// recommender not ready.
func (r *Recommender) SetModel(m *storage.Model) {
	r.model.Store(m)
	if m == nil {
		metrics.ModelReady.Set(0)
		return
	}
	meta := m.Metadata()
	r.logger.Info().
		Int("rows", meta.Rows).
		Int("dim", meta.Dim).
		Int("retained_ids", meta.RetainedIDs).
		Msg("embedding model installed")
}

// Model returns the installed model, or nil.
func (r *Recommender) Model() *storage.Model {
	return r.model.Load()
}

// Ready reports whether a model is installed.
func (r *Recommender) Ready() bool {
	return r.model.Load() != nil
}

// Recommend ranks the catalog against favorites.
//
// weights optionally scales individual favorites; missing, NaN or infinite
// weights count as 1.0. topN <= 0 uses DefaultTopN. When no favorite
// resolves the result is empty with a nil error.
func (r *Recommender) Recommend(ctx context.Context, favorites []int, topN int, weights map[int]float64) (*Result, error) {
	start := time.Now()
	m := r.model.Load()
	if m == nil {
		metrics.RecordRecommendation("not_ready", 0, 0)
		return nil, ErrNotReady
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	maps := m.Maps()
	res := &Result{}
	profile := make([]float64, m.Dim())
	exclude := make(map[int]struct{}, len(favorites))

	for _, ext := range favorites {
		exclude[ext] = struct{}{}
		row, ok := maps.ExternalToRow(ext)
		if !ok || row < 0 || row >= m.Rows() {
			res.Unresolved = append(res.Unresolved, ext)
			continue
		}
		w := weightFor(weights, ext)
		for i, x := range m.Row(row) {
			profile[i] += x * w
		}
		res.Resolved = append(res.Resolved, ext)
	}

	log := r.logger.With().Str("request", "favorites").Logger()
	if len(res.Unresolved) > 0 {
		log.Debug().Ints("unresolved", res.Unresolved).Msg("favorites not in model")
	}
	if res.Empty() {
		metrics.RecordRecommendation("empty", len(res.Unresolved), time.Since(start))
		return res, nil
	}

	n := float64(len(res.Resolved))
	for i := range profile {
		profile[i] /= n
	}
	storage.NormalizeInPlace(profile)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.ExternalIDs = rank(m, profile, exclude, topN)
	metrics.RecordRecommendation("ok", len(res.Unresolved), time.Since(start))
	log.Debug().
		Int("resolved", len(res.Resolved)).
		Int("returned", len(res.ExternalIDs)).
		Dur("duration", time.Since(start)).
		Msg("ranked catalog")
	return res, nil
}

// rank scores every row against profile and returns up to topN external ids.
func rank(m *storage.Model, profile []float64, exclude map[int]struct{}, topN int) []int {
	type scored struct {
		row   int
		score float64
	}
	scores := make([]scored, m.Rows())
	for row := range scores {
		scores[row] = scored{row: row, score: m.Dot(row, profile)}
	}
	slices.SortFunc(scores, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return a.row - b.row
	})

	maps := m.Maps()
	out := make([]int, 0, topN)
	for _, s := range scores {
		ext, ok := maps.RowToExternal(s.row)
		if !ok {
			continue
		}
		if _, fav := exclude[ext]; fav {
			continue
		}
		out = append(out, ext)
		if len(out) == topN {
			break
		}
	}
	return out
}

func weightFor(weights map[int]float64, ext int) float64 {
	w, ok := weights[ext]
	if !ok || math.IsNaN(w) || math.IsInf(w, 0) {
		return 1.0
	}
	return w
}

// AvailableIDs returns the external ids the model can rank, ascending.
func (r *Recommender) AvailableIDs() ([]int, error) {
	m := r.model.Load()
	if m == nil {
		return nil, ErrNotReady
	}
	return m.Maps().ExternalIDs(), nil
}
