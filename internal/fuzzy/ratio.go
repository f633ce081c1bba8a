// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package fuzzy

import (
	"sort"
	"strings"
)

// Ratio returns the normalized Indel similarity of a and b in [0, 100].
// Indel distance counts insertions and deletions only, so
// Ratio = 100 * (1 - (len(a) + len(b) - 2*LCS) / (len(a) + len(b))).
// Two empty strings are identical (100).
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	return normalizedSimilarity(indelDistance(ra, rb), len(ra)+len(rb))
}

// TokenSetRatio compares the whitespace-separated token sets of a and b,
// ignoring order and repetition. It returns 100 when one token set contains
// the other, 0 when either string has no tokens, and otherwise the best
// Indel similarity among the intersection and the two sorted remainders.
//
// Inputs are compared as given; callers normalize first.
func TokenSetRatio(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var intersect, diffAB, diffBA []string
	for tok := range tokensA {
		if _, ok := tokensB[tok]; ok {
			intersect = append(intersect, tok)
		} else {
			diffAB = append(diffAB, tok)
		}
	}
	for tok := range tokensB {
		if _, ok := tokensA[tok]; !ok {
			diffBA = append(diffBA, tok)
		}
	}

	if len(intersect) > 0 && (len(diffAB) == 0 || len(diffBA) == 0) {
		return 100
	}

	sort.Strings(diffAB)
	sort.Strings(diffBA)
	joinedAB := []rune(strings.Join(diffAB, " "))
	joinedBA := []rune(strings.Join(diffBA, " "))
	abLen := len(joinedAB)
	baLen := len(joinedBA)
	sectLen := runeLen(strings.Join(intersect, " "))

	sep := 0
	if sectLen > 0 {
		sep = 1
	}
	sectABLen := sectLen + sep + abLen
	sectBALen := sectLen + sep + baLen

	// "sect ab" vs "sect ba" differ only in the remainders.
	result := normalizedSimilarity(indelDistance(joinedAB, joinedBA), sectABLen+sectBALen)
	if sectLen == 0 {
		return result
	}

	// "sect" vs "sect ab" differ only by the appended remainder.
	sectAB := normalizedSimilarity(sep+abLen, sectLen+sectABLen)
	sectBA := normalizedSimilarity(sep+baLen, sectLen+sectBALen)
	return max(result, sectAB, sectBA)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func runeLen(s string) int {
	return len([]rune(s))
}

func normalizedSimilarity(dist, lenSum int) float64 {
	if lenSum == 0 {
		return 100
	}
	return 100 * (1 - float64(dist)/float64(lenSum))
}

// indelDistance is len(a)+len(b)-2*LCS(a,b), with a two-row LCS table.
func indelDistance(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return len(a) + len(b)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return len(a) + len(b) - 2*prev[len(b)]
}
