// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package models

import "testing"

func TestMovieRecordDirector(t *testing.T) {
	t.Parallel()

	m := &MovieRecord{Credits: Credits{Crew: []CrewMember{
		{Name: "Hans Zimmer", Job: "Original Music Composer"},
		{Name: "Christopher Nolan", Job: "Director"},
		{Name: "Someone Else", Job: "Director"},
	}}}

	name, ok := m.Director()
	if !ok || name != "Christopher Nolan" {
		t.Errorf("Director() = %q, %v, want first director", name, ok)
	}

	if _, ok := (&MovieRecord{}).Director(); ok {
		t.Error("Director() on empty crew should report false")
	}
}

func TestMovieRecordTopCast(t *testing.T) {
	t.Parallel()

	m := &MovieRecord{Credits: Credits{Cast: []CastMember{
		{Name: "A", Order: 0}, {Name: "B", Order: 1}, {Name: "C", Order: 2}, {Name: "D", Order: 3},
	}}}

	got := m.TopCast(3)
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("TopCast(3) len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TopCast(3)[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := (&MovieRecord{}).TopCast(3); len(got) != 0 {
		t.Errorf("TopCast on empty cast = %v, want empty", got)
	}
}

func TestTMDbMovieDetailToRecord(t *testing.T) {
	t.Parallel()

	d := &TMDbMovieDetail{
		ID:     27205,
		Title:  "Origen",
		Genres: []TMDbGenre{{ID: 28, Name: "Acción"}, {ID: 878, Name: "Ciencia ficción"}},
		Credits: &TMDbCredits{
			Cast: []TMDbCast{{ID: 6193, Name: "Leonardo DiCaprio", Order: 0}},
			Crew: []TMDbCrew{{ID: 525, Name: "Christopher Nolan", Job: "Director"}},
		},
	}

	rec := d.ToRecord()
	if rec.ID != 27205 || rec.Title != "Origen" {
		t.Errorf("ToRecord identity = %d %q", rec.ID, rec.Title)
	}
	if len(rec.GenreIDs) != 2 || rec.GenreIDs[0] != 28 || rec.GenreIDs[1] != 878 {
		t.Errorf("GenreIDs = %v", rec.GenreIDs)
	}
	if name, _ := rec.Director(); name != "Christopher Nolan" {
		t.Errorf("Director = %q", name)
	}
	if cast := rec.TopCast(3); len(cast) != 1 || cast[0] != "Leonardo DiCaprio" {
		t.Errorf("TopCast = %v", cast)
	}

	bare := (&TMDbMovieDetail{ID: 1}).ToRecord()
	if len(bare.Credits.Cast) != 0 || len(bare.Credits.Crew) != 0 {
		t.Error("detail without credits should yield empty credits")
	}
}
