// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package storage

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/goccy/go-json"
)

// MapBundle is the raw JSON map file as written by the training job.
// Keys are decimal strings because JSON object keys cannot be integers.
type MapBundle struct {
	// MovieMap maps native id to embedding row.
	MovieMap map[string]int `json:"movie_map"`

	// NativeToExternal maps native id to external catalog id.
	NativeToExternal map[string]int `json:"movielens_to_tmdb"`

	// RowToNative maps embedding row to native id. Optional; when present it
	// is used to drop rows whose two directions disagree.
	RowToNative map[string]int `json:"movie_idx_to_id,omitempty"`
}

// DecodeMapBundle parses a map bundle.
func DecodeMapBundle(r io.Reader) (*MapBundle, error) {
	var b MapBundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode map bundle: %w", err)
	}
	if len(b.MovieMap) == 0 {
		return nil, fmt.Errorf("map bundle has no movie_map entries")
	}
	if len(b.NativeToExternal) == 0 {
		return nil, fmt.Errorf("map bundle has no movielens_to_tmdb entries")
	}
	return &b, nil
}

// IDMaps translates between external ids, native ids and embedding rows.
// All four directions are mutually consistent.
type IDMaps struct {
	externalToNative map[int]int
	nativeToRow      map[int]int
	rowToNative      map[int]int
	nativeToExternal map[int]int
}

// BuildIDMaps constructs pruned maps for a matrix with the given row count.
//
// A native id is retained when it has a row in [0, rows), an external id,
// and (if the bundle carries movie_idx_to_id) that row maps back to it.
// Collisions on a row or an external id keep the lowest native id.
func BuildIDMaps(b *MapBundle, rows int) (*IDMaps, error) {
	nativeToRow, err := intKeys(b.MovieMap, "movie_map")
	if err != nil {
		return nil, err
	}
	nativeToExternal, err := intKeys(b.NativeToExternal, "movielens_to_tmdb")
	if err != nil {
		return nil, err
	}
	var rowToNativeRaw map[int]int
	if len(b.RowToNative) > 0 {
		if rowToNativeRaw, err = intKeys(b.RowToNative, "movie_idx_to_id"); err != nil {
			return nil, err
		}
	}

	natives := make([]int, 0, len(nativeToExternal))
	for n := range nativeToExternal {
		natives = append(natives, n)
	}
	slices.Sort(natives)

	m := &IDMaps{
		externalToNative: make(map[int]int, len(natives)),
		nativeToRow:      make(map[int]int, len(natives)),
		rowToNative:      make(map[int]int, len(natives)),
		nativeToExternal: make(map[int]int, len(natives)),
	}

	for _, n := range natives {
		row, ok := nativeToRow[n]
		if !ok || row < 0 || row >= rows {
			continue
		}
		if rowToNativeRaw != nil {
			if back, ok := rowToNativeRaw[row]; ok && back != n {
				continue
			}
		}
		ext := nativeToExternal[n]
		if _, taken := m.rowToNative[row]; taken {
			continue
		}
		if _, taken := m.externalToNative[ext]; taken {
			continue
		}
		m.externalToNative[ext] = n
		m.nativeToRow[n] = row
		m.rowToNative[row] = n
		m.nativeToExternal[n] = ext
	}

	return m, nil
}

func intKeys(in map[string]int, name string) (map[int]int, error) {
	out := make(map[int]int, len(in))
	for k, v := range in {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%s: non-integer key %q", name, k)
		}
		out[id] = v
	}
	return out, nil
}

// Len returns the number of retained movies.
func (m *IDMaps) Len() int {
	return len(m.externalToNative)
}

// ExternalToNative translates an external id to its native id.
func (m *IDMaps) ExternalToNative(ext int) (int, bool) {
	n, ok := m.externalToNative[ext]
	return n, ok
}

// NativeToRow translates a native id to its embedding row.
func (m *IDMaps) NativeToRow(native int) (int, bool) {
	r, ok := m.nativeToRow[native]
	return r, ok
}

// RowToNative translates an embedding row to its native id.
func (m *IDMaps) RowToNative(row int) (int, bool) {
	n, ok := m.rowToNative[row]
	return n, ok
}

// NativeToExternal translates a native id to its external id.
func (m *IDMaps) NativeToExternal(native int) (int, bool) {
	e, ok := m.nativeToExternal[native]
	return e, ok
}

// ExternalToRow chains external -> native -> row.
func (m *IDMaps) ExternalToRow(ext int) (int, bool) {
	n, ok := m.externalToNative[ext]
	if !ok {
		return 0, false
	}
	return m.NativeToRow(n)
}

// RowToExternal chains row -> native -> external.
func (m *IDMaps) RowToExternal(row int) (int, bool) {
	n, ok := m.rowToNative[row]
	if !ok {
		return 0, false
	}
	return m.NativeToExternal(n)
}

// ExternalIDs returns every retained external id in ascending order.
func (m *IDMaps) ExternalIDs() []int {
	ids := make([]int, 0, len(m.externalToNative))
	for ext := range m.externalToNative {
		ids = append(ids, ext)
	}
	slices.Sort(ids)
	return ids
}
