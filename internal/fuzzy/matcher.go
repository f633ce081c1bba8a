// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package fuzzy

import "sort"

// Match is a scored choice. Index is the choice position in the input slice.
type Match struct {
	Choice string  `json:"choice"`
	Index  int     `json:"index"`
	Score  float64 `json:"score"`
}

// Score normalizes both strings and returns their token-set ratio.
func Score(a, b string) float64 {
	return TokenSetRatio(Normalize(a), Normalize(b))
}

// BestMatch returns the highest scoring choice if its score is >= cutoff.
// Ties go to the earliest choice.
func BestMatch(query string, choices []string, cutoff float64) (Match, bool) {
	q := Normalize(query)
	best := Match{Index: -1}
	for i, choice := range choices {
		score := TokenSetRatio(q, Normalize(choice))
		if score < cutoff {
			continue
		}
		if best.Index < 0 || score > best.Score {
			best = Match{Choice: choice, Index: i, Score: score}
		}
	}
	return best, best.Index >= 0
}

// ExtractMany returns up to limit choices scoring >= cutoff, by descending
// score. Equal scores keep input order. limit <= 0 means no limit.
func ExtractMany(query string, choices []string, cutoff float64, limit int) []Match {
	q := Normalize(query)
	matches := make([]Match, 0, len(choices))
	for i, choice := range choices {
		score := TokenSetRatio(q, Normalize(choice))
		if score >= cutoff {
			matches = append(matches, Match{Choice: choice, Index: i, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
