// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package storage

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/tomtom215/pelismatch/internal/models"
)

// Epsilon floors vector norms so zero vectors do not divide by zero.
const Epsilon = 1e-12

// ErrModelNotLoaded is returned when the embedding matrix or map bundle is
// missing or malformed.
var ErrModelNotLoaded = fmt.Errorf("model not loaded: %w", models.ErrServiceUnavailable)

// ModelMetadata describes a loaded model.
type ModelMetadata struct {
	Rows           int       `json:"rows"`
	Dim            int       `json:"dim"`
	RetainedIDs    int       `json:"retained_ids"`
	EmbeddingsPath string    `json:"embeddings_path,omitempty"`
	MapsPath       string    `json:"maps_path,omitempty"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// Model is an L2-normalized embedding matrix with its id maps.
type Model struct {
	rows, dim int
	// vectors is row-major, each row has unit norm (or is zero)
	vectors []float64
	maps    *IDMaps
	meta    ModelMetadata
}

// NewModel builds a Model from a row-major matrix and a map bundle.
// Rows are L2-normalized once here.
func NewModel(data []float64, rows, dim int, bundle *MapBundle) (*Model, error) {
	if rows <= 0 || dim <= 0 {
		return nil, fmt.Errorf("%w: empty embedding matrix (%dx%d)", ErrModelNotLoaded, rows, dim)
	}
	if len(data) != rows*dim {
		return nil, fmt.Errorf("%w: matrix has %d values, want %d", ErrModelNotLoaded, len(data), rows*dim)
	}
	if bundle == nil {
		return nil, fmt.Errorf("%w: missing map bundle", ErrModelNotLoaded)
	}

	maps, err := BuildIDMaps(bundle, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelNotLoaded, err)
	}

	vectors := make([]float64, len(data))
	copy(vectors, data)
	for r := 0; r < rows; r++ {
		NormalizeInPlace(vectors[r*dim : (r+1)*dim])
	}

	return &Model{
		rows:    rows,
		dim:     dim,
		vectors: vectors,
		maps:    maps,
		meta: ModelMetadata{
			Rows:        rows,
			Dim:         dim,
			RetainedIDs: maps.Len(),
			LoadedAt:    time.Now(),
		},
	}, nil
}

// NormalizeInPlace scales v to unit L2 norm, flooring the norm at Epsilon.
func NormalizeInPlace(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	norm := math.Max(math.Sqrt(sum), Epsilon)
	for i := range v {
		v[i] /= norm
	}
}

// LoadModel reads the embedding matrix and map bundle from disk.
func LoadModel(embeddingsPath, mapsPath string) (*Model, error) {
	ef, err := os.Open(embeddingsPath) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelNotLoaded, err)
	}
	defer ef.Close()

	data, rows, dim, err := ReadEmbeddings(ef)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelNotLoaded, embeddingsPath, err)
	}

	mf, err := os.Open(mapsPath) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelNotLoaded, err)
	}
	defer mf.Close()

	bundle, err := DecodeMapBundle(mf)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelNotLoaded, mapsPath, err)
	}

	m, err := NewModel(data, rows, dim, bundle)
	if err != nil {
		return nil, err
	}
	m.meta.EmbeddingsPath = embeddingsPath
	m.meta.MapsPath = mapsPath
	return m, nil
}

// IsNotLoaded reports whether err came from a failed model load.
func IsNotLoaded(err error) bool {
	return errors.Is(err, ErrModelNotLoaded)
}

// Rows returns the number of embedding rows.
func (m *Model) Rows() int { return m.rows }

// Dim returns the embedding dimension.
func (m *Model) Dim() int { return m.dim }

// Maps returns the id maps.
func (m *Model) Maps() *IDMaps { return m.maps }

// Metadata returns load information.
func (m *Model) Metadata() ModelMetadata { return m.meta }

// Row returns the normalized vector of row r. The slice must not be modified.
func (m *Model) Row(r int) []float64 {
	return m.vectors[r*m.dim : (r+1)*m.dim]
}

// Dot returns the dot product of row r with v.
func (m *Model) Dot(r int, v []float64) float64 {
	row := m.Row(r)
	var s float64
	for i, x := range row {
		s += x * v[i]
	}
	return s
}
