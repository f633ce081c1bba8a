// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package dialogue

import (
	"fmt"
	"strings"
)

const (
	msgReset          = "Conversación reiniciada. ¿En qué te puedo ayudar?"
	msgAskGenre       = "¡Hola! Te ayudaré a encontrar una película. ¿Qué género te gustaría? (Ej: Acción, Comedia, Drama, Ciencia Ficción)"
	msgGenreUnknown   = "No entendí ese género. Por favor, intenta de nuevo (Ej: Acción, Comedia, Drama)."
	msgEraUnknown     = "No entendí eso. Por favor, di 'clásico' o 'reciente'."
	msgChooseLocal    = "Selecciona uno de los siguientes (envía el ID):"
	msgChooseRemote   = "¿A quién te refieres? Envía el ID de la lista:"
	msgNeedNumericID  = "Por favor envía el ID numérico (o 'ninguno')."
	msgInvalidID      = "ID no válido. Reenvía uno de los mostrados o 'ninguno'."
	msgRecommended    = "¡Aquí tienes tus recomendaciones! "
	msgNoResults      = "No encontré películas con esos criterios. Escríbeme de nuevo para empezar otra búsqueda."
	msgDiscoverFailed = "Lo siento, no pude buscar recomendaciones en este momento. Inténtalo de nuevo más tarde."
	msgRetryLimit     = "Parece que no nos estamos entendiendo. Empecemos de nuevo. ¿En qué te puedo ayudar?"
)

func msgAskEra(genre string) string {
	return fmt.Sprintf("¡%s! ¿Buscas algo 'clásico' (antes de 2000) o 'reciente' (2000 en adelante)?", genre)
}

func msgAskPerson(era string) string {
	return fmt.Sprintf("Entendido, algo '%s'. ¿Tienes algún actor o director en mente? (Escribe un nombre o 'ninguno')", era)
}

func msgPersonNotFound(query string) string {
	return fmt.Sprintf("No encontré coincidencias para '%s'. Intenta otro nombre o 'ninguno'.", query)
}

func msgRecommendations(titles []string) string {
	return msgRecommended + strings.Join(titles, ", ")
}
