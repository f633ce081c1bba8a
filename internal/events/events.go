// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// SchemaVersion is the current event schema version.
const SchemaVersion = 1

// Topics.
const (
	TopicRecommendationServed  = "recommendation.served"
	TopicConversationCompleted = "conversation.completed"
)

// Topics lists every topic the consumer subscribes to.
var Topics = []string{TopicRecommendationServed, TopicConversationCompleted}

// Event is the envelope of every activity event.
type Event struct {
	SchemaVersion int             `json:"schema_version"`
	EventID       string          `json:"event_id"`
	Type          string          `json:"type"`
	Timestamp     time.Time       `json:"timestamp"`
	Payload       json.RawMessage `json:"payload"`
}

// RecommendationServed describes a recommendation response.
type RecommendationServed struct {
	Source     string `json:"source"` // "favorites" or "similar"
	BasedOn    int    `json:"based_on"`
	Unresolved int    `json:"unresolved,omitempty"`
	Returned   int    `json:"returned"`
}

// ConversationCompleted describes a conversation that ended.
type ConversationCompleted struct {
	Session         string `json:"session"` // sanitized token prefix
	Reason          string `json:"reason"`
	GenreID         int    `json:"genre_id,omitempty"`
	EraField        string `json:"era_field,omitempty"`
	EraValue        string `json:"era_value,omitempty"`
	PersonID        int    `json:"person_id,omitempty"`
	Recommendations int    `json:"recommendations"`
}

// NewEvent wraps payload in an envelope with a fresh id.
func NewEvent(eventType string, payload interface{}, now time.Time) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return &Event{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Type:          eventType,
		Timestamp:     now.UTC(),
		Payload:       data,
	}, nil
}

// Decode unmarshals the payload into target.
func (e *Event) Decode(target interface{}) error {
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}
