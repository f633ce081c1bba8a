// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pelismatch/internal/metrics"
)

// Consumer logs and counts activity events. It implements suture.Service.
type Consumer struct {
	sub    message.Subscriber
	topics []string
	logger zerolog.Logger

	mu     sync.Mutex
	counts map[string]int64
	total  atomic.Int64
}

// NewConsumer creates a consumer for every topic in Topics.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConsumer(sub message.Subscriber, logger zerolog.Logger) *Consumer {
	return &Consumer{
		sub:    sub,
		topics: Topics,
		logger: logger.With().Str("component", "events-consumer").Logger(),
		counts: make(map[string]int64),
	}
}

// Serve subscribes and processes events until ctx is canceled.
func (c *Consumer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, topic := range c.topics {
		ch, err := c.sub.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe to %s: %w", topic, err)
		}
		wg.Add(1)
		go func(topic string, ch <-chan *message.Message) {
			defer wg.Done()
			for msg := range ch {
				c.handle(topic, msg)
			}
		}(topic, ch)
	}

	<-ctx.Done()
	wg.Wait()
	return ctx.Err()
}

func (c *Consumer) handle(topic string, msg *message.Message) {
	defer msg.Ack()

	var evt Event
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		c.logger.Warn().Err(err).Str("topic", topic).Str("message_id", msg.UUID).Msg("malformed event dropped")
		return
	}

	c.mu.Lock()
	c.counts[topic]++
	c.mu.Unlock()
	c.total.Add(1)
	metrics.EventsConsumed.WithLabelValues(topic).Inc()

	c.logger.Info().
		Str("topic", topic).
		Str("event_id", evt.EventID).
		Str("request_id", msg.Metadata.Get("request_id")).
		RawJSON("payload", evt.Payload).
		Msg("activity event")
}

// Count returns how many events were consumed on topic.
func (c *Consumer) Count(topic string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[topic]
}

// Total returns how many events were consumed on all topics.
func (c *Consumer) Total() int64 {
	return c.total.Load()
}

// String implements fmt.Stringer for suture logging.
func (c *Consumer) String() string {
	return "events-consumer"
}
