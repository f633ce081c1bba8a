// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package models

// PersonKind distinguishes actors from directors in the local catalog.
type PersonKind string

// Person kinds.
const (
	PersonActor    PersonKind = "actor"
	PersonDirector PersonKind = "director"
	PersonRemote   PersonKind = "remote"
)

// Person is an entry of the fixed local people catalog.
type Person struct {
	ID   int        `json:"id"`
	Name string     `json:"name"`
	Kind PersonKind `json:"kind"`
}

// PersonCandidate is a person proposed to the user with its fuzzy score.
type PersonCandidate struct {
	ID    int        `json:"id"`
	Label string     `json:"label"`
	Kind  PersonKind `json:"kind"`
	Score float64    `json:"score"`
}
