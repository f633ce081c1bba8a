// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pelismatch/internal/dialogue"
	"github.com/tomtom215/pelismatch/internal/logging"
	"github.com/tomtom215/pelismatch/internal/metrics"
)

// Publisher publishes activity events. A nil *Publisher is a valid no-op,
// used when events are disabled.
type Publisher struct {
	pub    message.Publisher
	now    func() time.Time
	logger zerolog.Logger
}

// NewPublisher creates a publisher on pub.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPublisher(pub message.Publisher, logger zerolog.Logger) *Publisher {
	return &Publisher{
		pub:    pub,
		now:    time.Now,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// Publish sends payload on topic. Errors are logged, counted and returned.
func (p *Publisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	if p == nil {
		return nil
	}

	err := p.publish(ctx, topic, payload)
	outcome := "success"
	if err != nil {
		outcome = "error"
		p.logger.Warn().Err(err).Str("topic", topic).Msg("failed to publish event")
	}
	metrics.EventsPublished.WithLabelValues(topic, outcome).Inc()
	return err
}

func (p *Publisher) publish(ctx context.Context, topic string, payload interface{}) error {
	evt, err := NewEvent(topic, payload, p.now())
	if err != nil {
		return err
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(evt.EventID, data)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set("request_id", id)
	}
	if err := p.pub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// RecommendationServed publishes a recommendation.served event.
func (p *Publisher) RecommendationServed(ctx context.Context, evt RecommendationServed) {
	_ = p.Publish(ctx, TopicRecommendationServed, evt)
}

// ConversationCompleted implements dialogue.Listener.
func (p *Publisher) ConversationCompleted(ctx context.Context, c dialogue.Completion) {
	evt := ConversationCompleted{
		Session:         logging.SanitizeToken(c.Token),
		Reason:          c.Reason,
		GenreID:         c.Criteria.GenreID,
		PersonID:        c.Criteria.PersonID,
		Recommendations: len(c.Recommendations),
	}
	if c.Criteria.Era != nil {
		evt.EraField = c.Criteria.Era.Field
		evt.EraValue = c.Criteria.Era.Value
	}
	_ = p.Publish(ctx, TopicConversationCompleted, evt)
}

var _ dialogue.Listener = (*Publisher)(nil)
