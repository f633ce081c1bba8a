// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package fuzzy

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"Acción", "acción"},
		{"¡Ciencia Ficción!", "ciencia ficción"},
		{"  Hola,   Mundo  ", "hola   mundo"},
		{"Guillermo del Toro", "guillermo del toro"},
		{"Tom Hanks (1956)", "tom hanks 1956"},
		{"ÑANDÚ", "ñandú"},
		{"?!.,", ""},
		{"drama\tcomedia", "dramacomedia"},
		{"\nterror  ", "terror"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Acción", "  RESET  ", "İstanbul", "l'été", "Zoë Saldaña!!", "\tnadie\n",
		"ＦＵＬＬＷＩＤＴＨ", "ciencia-ficcion", "123 abc", "日本語 テスト", "",
	}
	for _, s := range inputs {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want float64
	}{
		{"abc", "abc", 100},
		{"", "", 100},
		{"abc", "", 0},
		{"abcd", "abce", 75},
		{"acción", "accion", 100 * (1 - 2.0/12.0)},
	}
	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); math.Abs(got-tt.want) > epsilon {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTokenSetRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "tom hanks", "tom hanks", 100},
		{"reordered", "hanks tom", "tom hanks", 100},
		{"subset", "tom", "tom hanks", 100},
		{"repeated tokens", "tom tom", "tom", 100},
		{"empty left", "", "tom", 0},
		{"whitespace only", "   ", "tom", 0},
		{"disjoint single tokens", "abcd", "abce", 75},
		// sect="brad", ab="pitt", ba="cooper": best is sect vs sect+ab = 1 - 5/13
		{"partial overlap", "brad pitt", "brad cooper", 100 * (1 - 5.0/13.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TokenSetRatio(tt.a, tt.b)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("TokenSetRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if rev := TokenSetRatio(tt.b, tt.a); math.Abs(rev-got) > epsilon {
				t.Errorf("TokenSetRatio not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestBestMatchCutoffBoundary(t *testing.T) {
	t.Parallel()

	// "abcd" vs "abce" scores exactly 75.
	if _, ok := BestMatch("abcd", []string{"abce"}, 75); !ok {
		t.Error("score equal to cutoff should be accepted")
	}
	if _, ok := BestMatch("abcd", []string{"abce"}, 76); ok {
		t.Error("score one point below cutoff should be rejected")
	}
}

func TestBestMatchTieBreaksOnInputOrder(t *testing.T) {
	t.Parallel()

	m, ok := BestMatch("Tom", []string{"Tom Hanks", "Tom Cruise"}, 70)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Index != 0 || m.Choice != "Tom Hanks" || m.Score != 100 {
		t.Errorf("BestMatch = %+v, want first choice at 100", m)
	}

	m, _ = BestMatch("Tom", []string{"Tom Cruise", "Tom Hanks"}, 70)
	if m.Choice != "Tom Cruise" {
		t.Errorf("BestMatch on reversed input = %q, want Tom Cruise", m.Choice)
	}
}

func TestBestMatchNoChoices(t *testing.T) {
	t.Parallel()

	if _, ok := BestMatch("drama", nil, 0); ok {
		t.Error("BestMatch over no choices should fail")
	}
}

func TestExtractMany(t *testing.T) {
	t.Parallel()

	choices := []string{"Brad Pitt", "Tom Hanks", "Tom Cruise", "Tomas"}

	got := ExtractMany("tom", choices, 70, 0)
	want := []Match{
		{Choice: "Tom Hanks", Index: 1, Score: 100},
		{Choice: "Tom Cruise", Index: 2, Score: 100},
		{Choice: "Tomas", Index: 3, Score: 75},
	}
	if len(got) != len(want) {
		t.Fatalf("ExtractMany len = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Choice != want[i].Choice || got[i].Index != want[i].Index ||
			math.Abs(got[i].Score-want[i].Score) > epsilon {
			t.Errorf("ExtractMany[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	limited := ExtractMany("tom", choices, 70, 2)
	if len(limited) != 2 || limited[1].Choice != "Tom Cruise" {
		t.Errorf("ExtractMany limit 2 = %+v", limited)
	}
}

func TestVocabulary(t *testing.T) {
	t.Parallel()

	v := NewVocabulary(
		Entry[int]{Label: "accion", Value: 28},
		Entry[int]{Label: "comedia", Value: 35},
		Entry[int]{Label: "accion", Value: 999},
	)
	if v.Len() != 2 {
		t.Fatalf("duplicate label kept: Len = %d", v.Len())
	}

	e, score, ok := v.Lookup("Acción", 70)
	if !ok || e.Value != 28 {
		t.Errorf("Lookup(Acción) = %+v, %v, %v", e, score, ok)
	}
	if _, _, ok := v.Lookup("xyz", 70); ok {
		t.Error("Lookup(xyz) should not match")
	}

	entries, scores := v.LookupMany("comedia", 70, 5)
	if len(entries) != 1 || entries[0].Value != 35 || scores[0] != 100 {
		t.Errorf("LookupMany = %+v %v", entries, scores)
	}
}
