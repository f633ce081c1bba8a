// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package fuzzy

import (
	"strings"
	"unicode"
)

// Normalize lowercases s, drops every rune that is not a letter (accented
// letters included), a digit or an ASCII space, and trims surrounding spaces.
// Tabs and newlines are dropped like punctuation.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	lower := strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), " ")
}
