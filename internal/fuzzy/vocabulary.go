// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package fuzzy

// Entry is one labeled value of a Vocabulary.
type Entry[V any] struct {
	Label string
	Value V
}

// Vocabulary is an ordered set of labels mapped to values. Order matters:
// it is the tie-break order for equal scores.
type Vocabulary[V any] struct {
	entries []Entry[V]
	labels  []string
}

// NewVocabulary builds a vocabulary from entries in the given order.
// Duplicate labels keep the first entry.
func NewVocabulary[V any](entries ...Entry[V]) *Vocabulary[V] {
	v := &Vocabulary[V]{}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Label]; dup {
			continue
		}
		seen[e.Label] = struct{}{}
		v.entries = append(v.entries, e)
		v.labels = append(v.labels, e.Label)
	}
	return v
}

// Labels returns the labels in vocabulary order.
func (v *Vocabulary[V]) Labels() []string {
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	return out
}

// Len returns the number of entries.
func (v *Vocabulary[V]) Len() int {
	return len(v.entries)
}

// Lookup returns the best entry for query scoring >= cutoff.
func (v *Vocabulary[V]) Lookup(query string, cutoff float64) (Entry[V], float64, bool) {
	m, ok := BestMatch(query, v.labels, cutoff)
	if !ok {
		var zero Entry[V]
		return zero, 0, false
	}
	return v.entries[m.Index], m.Score, true
}

// LookupMany returns up to limit entries scoring >= cutoff, best first.
func (v *Vocabulary[V]) LookupMany(query string, cutoff float64, limit int) ([]Entry[V], []float64) {
	matches := ExtractMany(query, v.labels, cutoff, limit)
	entries := make([]Entry[V], 0, len(matches))
	scores := make([]float64, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, v.entries[m.Index])
		scores = append(scores, m.Score)
	}
	return entries, scores
}
