// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package events

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/pelismatch/internal/config"
	"github.com/tomtom215/pelismatch/internal/dialogue"
	"github.com/tomtom215/pelismatch/internal/logging"
)

type capturePublisher struct {
	mu   sync.Mutex
	msgs map[string][]*message.Message
	err  error
}

func (c *capturePublisher) Publish(topic string, msgs ...*message.Message) error {
	if c.err != nil {
		return c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.msgs == nil {
		c.msgs = make(map[string][]*message.Message)
	}
	c.msgs[topic] = append(c.msgs[topic], msgs...)
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func (c *capturePublisher) only(t *testing.T, topic string) *Event {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.msgs[topic]) != 1 {
		t.Fatalf("expected 1 message on %s, got %d", topic, len(c.msgs[topic]))
	}
	var evt Event
	if err := json.Unmarshal(c.msgs[topic][0].Payload, &evt); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return &evt
}

func TestNewEvent(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	evt, err := NewEvent(TopicRecommendationServed, RecommendationServed{Source: "favorites", BasedOn: 2, Returned: 10}, now)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if evt.EventID == "" {
		t.Error("expected event id")
	}
	if evt.SchemaVersion != SchemaVersion {
		t.Errorf("schema version = %d", evt.SchemaVersion)
	}
	if !evt.Timestamp.Equal(now) || evt.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp = %v, want UTC of %v", evt.Timestamp, now)
	}

	var got RecommendationServed
	if err := evt.Decode(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.BasedOn != 2 || got.Returned != 10 || got.Source != "favorites" {
		t.Errorf("payload = %+v", got)
	}
}

func TestNewEvent_UnmarshalablePayload(t *testing.T) {
	if _, err := NewEvent("x", make(chan int), time.Now()); err == nil {
		t.Fatal("expected marshal error")
	}
}

func TestPublisher_RecommendationServed(t *testing.T) {
	pub := &capturePublisher{}
	p := NewPublisher(pub, logging.NewTestLogger(&bytes.Buffer{}))

	ctx := logging.ContextWithRequestID(context.Background(), "req-1")
	p.RecommendationServed(ctx, RecommendationServed{Source: "similar", BasedOn: 1, Returned: 4})

	evt := pub.only(t, TopicRecommendationServed)
	if evt.Type != TopicRecommendationServed {
		t.Errorf("type = %q", evt.Type)
	}
	if got := pub.msgs[TopicRecommendationServed][0].Metadata.Get("request_id"); got != "req-1" {
		t.Errorf("request_id metadata = %q", got)
	}
}

func TestPublisher_ConversationCompleted(t *testing.T) {
	pub := &capturePublisher{}
	p := NewPublisher(pub, logging.NewTestLogger(&bytes.Buffer{}))

	p.ConversationCompleted(context.Background(), dialogue.Completion{
		Token:  "0123456789abcdef",
		Reason: dialogue.ReasonRecommended,
		Criteria: dialogue.Criteria{
			GenreID:  28,
			Era:      &dialogue.EraFilter{Field: dialogue.ReleaseDateLTE, Value: "2000-01-01"},
			PersonID: 31,
		},
		Recommendations: []string{"A", "B", "C"},
	})

	evt := pub.only(t, TopicConversationCompleted)
	var got ConversationCompleted
	if err := evt.Decode(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Session != "01234567..." {
		t.Errorf("session = %q, token must be truncated", got.Session)
	}
	if got.GenreID != 28 || got.PersonID != 31 || got.Recommendations != 3 {
		t.Errorf("payload = %+v", got)
	}
	if got.EraField != dialogue.ReleaseDateLTE || got.EraValue != "2000-01-01" {
		t.Errorf("era = %s %s", got.EraField, got.EraValue)
	}
}

func TestPublisher_FailureIsReturnedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	p := NewPublisher(&capturePublisher{err: errors.New("closed")}, logging.NewTestLogger(&buf))

	if err := p.Publish(context.Background(), TopicRecommendationServed, RecommendationServed{}); err == nil {
		t.Fatal("expected error")
	}
	if !bytes.Contains(buf.Bytes(), []byte("failed to publish event")) {
		t.Errorf("expected warning in log, got %s", buf.String())
	}

	// The typed helpers swallow the error.
	p.RecommendationServed(context.Background(), RecommendationServed{})
}

func TestPublisher_NilIsNoop(t *testing.T) {
	var p *Publisher
	if err := p.Publish(context.Background(), TopicRecommendationServed, RecommendationServed{}); err != nil {
		t.Fatalf("nil publisher returned %v", err)
	}
	p.RecommendationServed(context.Background(), RecommendationServed{})
	p.ConversationCompleted(context.Background(), dialogue.Completion{})
}

func TestConsumer_ReceivesEvents(t *testing.T) {
	bus := NewBus(&config.EventsConfig{Enabled: true})
	defer bus.Close()

	var buf syncBuffer
	consumer := NewConsumer(bus, logging.NewTestLogger(&buf))
	p := NewPublisher(bus, logging.NewTestLogger(&bytes.Buffer{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Serve(ctx) }()

	// Messages published before the subscription exists are dropped, so keep
	// publishing until the consumer has seen one on each topic.
	deadline := time.Now().Add(3 * time.Second)
	for consumer.Count(TopicRecommendationServed) == 0 || consumer.Count(TopicConversationCompleted) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("consumer did not receive events")
		}
		if consumer.Count(TopicRecommendationServed) == 0 {
			p.RecommendationServed(context.Background(), RecommendationServed{Source: "favorites", Returned: 1})
		}
		if consumer.Count(TopicConversationCompleted) == 0 {
			p.ConversationCompleted(context.Background(), dialogue.Completion{Token: "t", Reason: dialogue.ReasonReset})
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if consumer.Total() < 2 {
		t.Errorf("total = %d", consumer.Total())
	}
	if !bytes.Contains(buf.Bytes(), []byte("activity event")) {
		t.Errorf("expected consumer log line, got %s", buf.String())
	}
}

func TestConsumer_MalformedMessageIsAcked(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsumer(nil, logging.NewTestLogger(&buf))

	msg := message.NewMessage("m1", []byte("not json"))
	c.handle(TopicRecommendationServed, msg)

	select {
	case <-msg.Acked():
	default:
		t.Error("malformed message was not acked")
	}
	if c.Total() != 0 {
		t.Errorf("malformed message counted")
	}
}

func TestConsumer_ImplementsService(t *testing.T) {
	var _ suture.Service = (*Consumer)(nil)
	c := NewConsumer(nil, logging.NewTestLogger(&bytes.Buffer{}))
	if c.String() != "events-consumer" {
		t.Errorf("String() = %q", c.String())
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buf.Bytes()...)
}

func (s *syncBuffer) String() string { return string(s.Bytes()) }
