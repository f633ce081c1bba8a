// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package models

// TMDb REST API Models
// These structures mirror the subset of The Movie Database v3 API responses
// that PelisMatch consumes. Documentation: https://developer.themoviedb.org/reference

// ============================================================================
// Movie lists - /search/movie, /discover/movie, /movie/popular, /movie/{id}/recommendations
// ============================================================================

// TMDbMovieResult is one entry of a paged movie list.
type TMDbMovieResult struct {
	ID          int     `json:"id"`                     // TMDb movie id
	Title       string  `json:"title"`                  // Localized title
	Overview    string  `json:"overview"`               // Localized synopsis
	PosterPath  string  `json:"poster_path"`            // Relative poster path (e.g. "/abc.jpg")
	GenreIDs    []int   `json:"genre_ids"`              // Genre ids
	ReleaseDate string  `json:"release_date,omitempty"` // YYYY-MM-DD
	VoteAverage float64 `json:"vote_average"`           // Mean rating 0-10
	VoteCount   int     `json:"vote_count"`             // Number of votes
	Popularity  float64 `json:"popularity"`             // TMDb popularity score
}

// TMDbMovieList is a paged movie list response.
type TMDbMovieList struct {
	Page         int               `json:"page"`
	Results      []TMDbMovieResult `json:"results"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
}

// ============================================================================
// Movie detail - /movie/{id}?append_to_response=credits
// ============================================================================

// TMDbGenre is a genre object embedded in details and the genre list.
type TMDbGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TMDbCrew is one crew credit.
type TMDbCrew struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`        // e.g. "Director", "Screenplay"
	Department string `json:"department"` // e.g. "Directing"
}

// TMDbCast is one cast credit.
type TMDbCast struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"` // Billing order, 0 is top billed
}

// TMDbCredits groups cast and crew.
type TMDbCredits struct {
	Cast []TMDbCast `json:"cast"`
	Crew []TMDbCrew `json:"crew"`
}

// TMDbMovieDetail is the detail response, with credits when requested.
type TMDbMovieDetail struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Overview    string       `json:"overview"`
	PosterPath  string       `json:"poster_path"`
	ReleaseDate string       `json:"release_date"`
	Genres      []TMDbGenre  `json:"genres"`
	VoteAverage float64      `json:"vote_average"`
	VoteCount   int          `json:"vote_count"`
	Credits     *TMDbCredits `json:"credits,omitempty"`
}

// ToRecord converts the wire detail into a MovieRecord, preserving credit order.
func (d *TMDbMovieDetail) ToRecord() *MovieRecord {
	rec := &MovieRecord{
		ID:         d.ID,
		Title:      d.Title,
		Overview:   d.Overview,
		PosterPath: d.PosterPath,
		GenreIDs:   make([]int, 0, len(d.Genres)),
	}
	for _, g := range d.Genres {
		rec.GenreIDs = append(rec.GenreIDs, g.ID)
	}
	if d.Credits != nil {
		rec.Credits.Crew = make([]CrewMember, 0, len(d.Credits.Crew))
		for _, c := range d.Credits.Crew {
			rec.Credits.Crew = append(rec.Credits.Crew, CrewMember{ID: c.ID, Name: c.Name, Job: c.Job})
		}
		rec.Credits.Cast = make([]CastMember, 0, len(d.Credits.Cast))
		for _, c := range d.Credits.Cast {
			rec.Credits.Cast = append(rec.Credits.Cast, CastMember{ID: c.ID, Name: c.Name, Order: c.Order})
		}
	}
	return rec
}

// ============================================================================
// People and genres - /search/person, /genre/movie/list
// ============================================================================

// TMDbPersonResult is one entry of a person search.
type TMDbPersonResult struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	KnownForDepartment string  `json:"known_for_department"` // "Acting", "Directing", ...
	Popularity         float64 `json:"popularity"`
}

// TMDbPersonList is the person search response.
type TMDbPersonList struct {
	Page    int                `json:"page"`
	Results []TMDbPersonResult `json:"results"`
}

// TMDbGenreList is the genre list response.
type TMDbGenreList struct {
	Genres []TMDbGenre `json:"genres"`
}

// TMDbError is the error body returned with non-2xx statuses.
type TMDbError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
