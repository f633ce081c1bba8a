// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

/*
Package dialogue implements the PelisMatch chatbot: a finite state machine
that collects a genre, an era and optionally a person through free text, then
runs a single catalog discovery and replies with the first titles.

# States

	S0_START ──any──▶ S1_GENRE ──genre──▶ S2_ERA ──era──▶ S3_PERSON
	                                                        │
	                        ┌── one local match / remote ≥ auto-select ──▶ terminal
	                        ├── "ninguno" ─────────────────────────────▶ terminal
	                        └── several candidates ──▶ S3_CONFIRM_PERSON
	                                                        │
	                              numeric id or "ninguno" ──▶ terminal

The terminal action resets the conversation to S0_START. A message matching
the reset vocabulary ("reset", "salir", "cancelar", "reiniciar") clears the
session from any state.

Unmatched input never raises; the machine re-prompts. With
dialogue.max_retries > 0 a conversation stuck that many turns in one state
starts over.

# Sessions

Conversation state lives in a SessionStore keyed by an opaque token: an
LRU-backed MemoryStore, or a BadgerStore that survives restarts. The Machine
serializes turns per token so concurrent requests on one conversation never
lose updates.
*/
package dialogue
