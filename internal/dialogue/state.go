// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package dialogue

import (
	"time"

	"github.com/tomtom215/pelismatch/internal/catalog"
	"github.com/tomtom215/pelismatch/internal/models"
)

// State is a conversation state.
type State string

// Conversation states.
const (
	StateStart         State = "S0_START"
	StateGenre         State = "S1_GENRE"
	StateEra           State = "S2_ERA"
	StatePerson        State = "S3_PERSON"
	StateConfirmPerson State = "S3_CONFIRM_PERSON"
)

// Release date filter fields.
const (
	ReleaseDateLTE = "release_date.lte"
	ReleaseDateGTE = "release_date.gte"
)

// EraFilter is a release date bound.
type EraFilter struct {
	Field string `json:"field"` // ReleaseDateLTE or ReleaseDateGTE
	Value string `json:"value"` // YYYY-MM-DD
}

// Criteria are the slots collected so far.
type Criteria struct {
	GenreID  int        `json:"genre_id,omitempty"`
	Genre    string     `json:"genre,omitempty"`
	Era      *EraFilter `json:"era,omitempty"`
	PersonID int        `json:"person_id,omitempty"`
}

// Filters converts the criteria into discover filters.
func (c Criteria) Filters() catalog.DiscoverFilters {
	var f catalog.DiscoverFilters
	if c.GenreID > 0 {
		f.GenreIDs = []int{c.GenreID}
	}
	if c.Era != nil {
		switch c.Era.Field {
		case ReleaseDateLTE:
			f.ReleaseDateLTE = c.Era.Value
		case ReleaseDateGTE:
			f.ReleaseDateGTE = c.Era.Value
		}
	}
	f.PeopleID = c.PersonID
	return f
}

// Session is the persisted state of one conversation.
type Session struct {
	State      State                    `json:"state"`
	Criteria   Criteria                 `json:"criteria"`
	Candidates []models.PersonCandidate `json:"candidates,omitempty"`

	// Retries counts consecutive unmatched turns in State.
	Retries int `json:"retries,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns a session at the start state.
func NewSession() *Session {
	return &Session{State: StateStart}
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	if s.Criteria.Era != nil {
		era := *s.Criteria.Era
		c.Criteria.Era = &era
	}
	if s.Candidates != nil {
		c.Candidates = make([]models.PersonCandidate, len(s.Candidates))
		copy(c.Candidates, s.Candidates)
	}
	return &c
}

// hasCandidate reports whether id is one of the pending candidates.
func (s *Session) hasCandidate(id int) (models.PersonCandidate, bool) {
	for _, c := range s.Candidates {
		if c.ID == id {
			return c, true
		}
	}
	return models.PersonCandidate{}, false
}

// Reply is the outcome of one turn.
type Reply struct {
	Text              string                   `json:"reply"`
	Recommendations   []string                 `json:"recommendations,omitempty"`
	PendingCandidates []models.PersonCandidate `json:"pending_candidates,omitempty"`
	SelectedPerson    *models.PersonCandidate  `json:"selected_person,omitempty"`
	ConfirmedPersonID int                      `json:"confirmed_person_id,omitempty"`
	Criteria          *Criteria                `json:"criteria,omitempty"`
	State             State                    `json:"state"`
}
