// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package dialogue

import (
	"context"
	"time"

	"github.com/tomtom215/pelismatch/internal/cache"
	"github.com/tomtom215/pelismatch/internal/metrics"
)

// MemoryStore keeps sessions in a bounded LRU with TTL. The least recently
// used conversation is evicted when the store is full.
type MemoryStore struct {
	sessions *cache.LRU[string, *Session]
}

// NewMemoryStore creates a store holding up to capacity sessions for ttl.
// Non-positive values use the cache defaults.
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{sessions: cache.NewLRU[string, *Session](capacity, ttl)}
}

// Get returns a copy of the session.
func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	sess, ok := s.sessions.Get(token)
	if !ok {
		metrics.RecordSessionOp(string(SessionStoreMemory), "miss", nil)
		return nil, ErrSessionNotFound
	}
	metrics.RecordSessionOp(string(SessionStoreMemory), "get", nil)
	return sess.Clone(), nil
}

// Put stores a copy of the session.
func (s *MemoryStore) Put(_ context.Context, token string, session *Session) error {
	s.sessions.Add(token, session.Clone())
	metrics.RecordSessionOp(string(SessionStoreMemory), "put", nil)
	return nil
}

// Clear removes the session.
func (s *MemoryStore) Clear(_ context.Context, token string) error {
	s.sessions.Remove(token)
	metrics.RecordSessionOp(string(SessionStoreMemory), "clear", nil)
	return nil
}

// Len returns the number of stored sessions, expired ones included until
// they are touched or purged.
func (s *MemoryStore) Len() int {
	return s.sessions.Len()
}

// PurgeExpired drops expired sessions.
func (s *MemoryStore) PurgeExpired() int {
	return s.sessions.CleanupExpired()
}
