// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package models

// JobDirector is the crew job that identifies a movie's director.
const JobDirector = "Director"

// CrewMember is one entry of a movie's crew credits.
type CrewMember struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

// CastMember is one entry of a movie's cast credits.
// Order is the catalog's billing position; lower is more prominent.
type CastMember struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Credits holds crew and cast in catalog order.
type Credits struct {
	Crew []CrewMember `json:"crew"`
	Cast []CastMember `json:"cast"`
}

// MovieRecord is a movie hydrated with genres and credits.
// Produced by the catalog client; read-only to the rest of the service.
type MovieRecord struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Overview   string  `json:"overview,omitempty"`
	PosterPath string  `json:"poster_path,omitempty"`
	GenreIDs   []int   `json:"genre_ids"`
	Credits    Credits `json:"credits"`
}

// Director returns the name of the first crew member whose job is
// "Director", and false when there is none.
func (m *MovieRecord) Director() (string, bool) {
	for _, c := range m.Credits.Crew {
		if c.Job == JobDirector {
			return c.Name, true
		}
	}
	return "", false
}

// TopCast returns the names of the first n cast entries in catalog order.
func (m *MovieRecord) TopCast(n int) []string {
	if n > len(m.Credits.Cast) {
		n = len(m.Credits.Cast)
	}
	names := make([]string, 0, n)
	for _, c := range m.Credits.Cast[:n] {
		names = append(names, c.Name)
	}
	return names
}

// MovieSummary is the client-facing view of a movie.
type MovieSummary struct {
	ExternalID int    `json:"external_id"`
	Title      string `json:"title"`
	PosterURL  string `json:"poster_url"`
	Overview   string `json:"overview,omitempty"`
}

// SimilarMovie is a neighbor scored against a searched movie.
type SimilarMovie struct {
	ExternalID int     `json:"external_id"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
	PosterURL  string  `json:"poster_url"`
}

// RankedMovie is a popular movie with its weighted rating.
type RankedMovie struct {
	ExternalID    int     `json:"external_id"`
	Title         string  `json:"title"`
	PosterURL     string  `json:"poster_url"`
	Overview      string  `json:"overview,omitempty"`
	VoteCount     int     `json:"vote_count"`
	VoteAverage   float64 `json:"vote_average"`
	WeightedScore float64 `json:"weighted_score"`
}

// Genre is a catalog genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
