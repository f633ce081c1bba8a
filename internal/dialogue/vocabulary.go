// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package dialogue

import (
	"github.com/tomtom215/pelismatch/internal/fuzzy"
	"github.com/tomtom215/pelismatch/internal/models"
)

// GenreChoice is a TMDb genre with its display name.
type GenreChoice struct {
	ID   int
	Name string
}

type genre = fuzzy.Entry[GenreChoice]

// genres maps accent-free Spanish genre names to TMDb genre ids.
var genres = fuzzy.NewVocabulary(
	genre{Label: "accion", Value: GenreChoice{28, "Acción"}},
	genre{Label: "aventura", Value: GenreChoice{12, "Aventura"}},
	genre{Label: "animacion", Value: GenreChoice{16, "Animación"}},
	genre{Label: "comedia", Value: GenreChoice{35, "Comedia"}},
	genre{Label: "crimen", Value: GenreChoice{80, "Crimen"}},
	genre{Label: "documental", Value: GenreChoice{99, "Documental"}},
	genre{Label: "drama", Value: GenreChoice{18, "Drama"}},
	genre{Label: "familia", Value: GenreChoice{10751, "Familia"}},
	genre{Label: "fantasia", Value: GenreChoice{14, "Fantasía"}},
	genre{Label: "historia", Value: GenreChoice{36, "Historia"}},
	genre{Label: "terror", Value: GenreChoice{27, "Terror"}},
	genre{Label: "musica", Value: GenreChoice{10402, "Música"}},
	genre{Label: "misterio", Value: GenreChoice{9648, "Misterio"}},
	genre{Label: "romance", Value: GenreChoice{10749, "Romance"}},
	genre{Label: "ciencia ficcion", Value: GenreChoice{878, "Ciencia ficción"}},
	genre{Label: "pelicula de tv", Value: GenreChoice{10770, "Película de TV"}},
	genre{Label: "suspense", Value: GenreChoice{53, "Suspense"}},
	genre{Label: "guerra", Value: GenreChoice{10752, "Guerra"}},
	genre{Label: "western", Value: GenreChoice{37, "Western"}},
)

type era = fuzzy.Entry[EraFilter]

// eras maps era words to a release date bound around 2000-01-01.
var eras = fuzzy.NewVocabulary(
	era{Label: "clasico", Value: EraFilter{ReleaseDateLTE, "2000-01-01"}},
	era{Label: "antiguo", Value: EraFilter{ReleaseDateLTE, "2000-01-01"}},
	era{Label: "viejo", Value: EraFilter{ReleaseDateLTE, "2000-01-01"}},
	era{Label: "reciente", Value: EraFilter{ReleaseDateGTE, "2000-01-01"}},
	era{Label: "moderno", Value: EraFilter{ReleaseDateGTE, "2000-01-01"}},
	era{Label: "nuevo", Value: EraFilter{ReleaseDateGTE, "2000-01-01"}},
)

// noneWords skip the person slot.
var noneWords = []string{"ninguno", "nadie", "no", "saltar", "omitir"}

// resetWords restart the conversation from any state.
var resetWords = []string{"reset", "salir", "cancelar", "reiniciar"}

var directors = []models.Person{
	{ID: 525, Name: "Christopher Nolan", Kind: models.PersonDirector},
	{ID: 488, Name: "Steven Spielberg", Kind: models.PersonDirector},
	{ID: 138, Name: "Quentin Tarantino", Kind: models.PersonDirector},
	{ID: 1032, Name: "Martin Scorsese", Kind: models.PersonDirector},
	{ID: 240, Name: "Stanley Kubrick", Kind: models.PersonDirector},
	{ID: 10828, Name: "Guillermo del Toro", Kind: models.PersonDirector},
	{ID: 139820, Name: "Greta Gerwig", Kind: models.PersonDirector},
	{ID: 2710, Name: "James Cameron", Kind: models.PersonDirector},
	{ID: 510, Name: "Tim Burton", Kind: models.PersonDirector},
	{ID: 608, Name: "Hayao Miyazaki", Kind: models.PersonDirector},
	{ID: 1776, Name: "Francis Ford Coppola", Kind: models.PersonDirector},
	{ID: 2636, Name: "Alfred Hitchcock", Kind: models.PersonDirector},
}

var actors = []models.Person{
	{ID: 287, Name: "Brad Pitt", Kind: models.PersonActor},
	{ID: 500, Name: "Tom Cruise", Kind: models.PersonActor},
	{ID: 6193, Name: "Leonardo DiCaprio", Kind: models.PersonActor},
	{ID: 3223, Name: "Robert Downey Jr.", Kind: models.PersonActor},
	{ID: 1245, Name: "Scarlett Johansson", Kind: models.PersonActor},
	{ID: 85, Name: "Johnny Depp", Kind: models.PersonActor},
	{ID: 31, Name: "Tom Hanks", Kind: models.PersonActor},
	{ID: 234352, Name: "Margot Robbie", Kind: models.PersonActor},
	{ID: 5064, Name: "Meryl Streep", Kind: models.PersonActor},
	{ID: 5292, Name: "Denzel Washington", Kind: models.PersonActor},
	{ID: 54693, Name: "Emma Stone", Kind: models.PersonActor},
	{ID: 2037, Name: "Cillian Murphy", Kind: models.PersonActor},
}

// people is the local person vocabulary, actors first.
var people = newPeopleVocabulary()

func newPeopleVocabulary() *fuzzy.Vocabulary[models.Person] {
	entries := make([]fuzzy.Entry[models.Person], 0, len(actors)+len(directors))
	for _, p := range actors {
		entries = append(entries, fuzzy.Entry[models.Person]{Label: p.Name, Value: p})
	}
	for _, p := range directors {
		entries = append(entries, fuzzy.Entry[models.Person]{Label: p.Name, Value: p})
	}
	return fuzzy.NewVocabulary(entries...)
}

// Directors returns the local director catalog.
func Directors() []models.Person {
	return append([]models.Person(nil), directors...)
}

// Actors returns the local actor catalog.
func Actors() []models.Person {
	return append([]models.Person(nil), actors...)
}
