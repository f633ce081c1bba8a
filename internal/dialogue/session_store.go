// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package dialogue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/pelismatch/internal/config"
)

// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired tokens.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists conversations by token.
type SessionStore interface {
	// Get returns a copy of the session, or ErrSessionNotFound.
	Get(ctx context.Context, token string) (*Session, error)

	// Put stores the session, replacing any previous value and resetting its TTL.
	Put(ctx context.Context, token string, session *Session) error

	// Clear removes the session. Clearing an unknown token is not an error.
	Clear(ctx context.Context, token string) error
}

// SessionStoreType defines the type of session storage backend.
type SessionStoreType string

const (
	// SessionStoreMemory keeps sessions in process memory.
	SessionStoreMemory SessionStoreType = "memory"

	// SessionStoreBadger keeps sessions in BadgerDB across restarts.
	SessionStoreBadger SessionStoreType = "badger"
)

// DefaultSessionTTL applies when the configured TTL is not positive.
const DefaultSessionTTL = 30 * time.Minute

// SessionStoreFactory creates session stores based on configuration.
type SessionStoreFactory struct {
	storeType SessionStoreType
	ttl       time.Duration
	db        *badger.DB
}

// NewSessionStoreFactory opens BadgerDB at cfg.Path for the badger store.
// The memory store opens nothing.
func NewSessionStoreFactory(cfg *config.SessionConfig) (*SessionStoreFactory, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	factory := &SessionStoreFactory{storeType: SessionStoreType(cfg.Store), ttl: ttl}

	switch factory.storeType {
	case SessionStoreBadger:
		opts := badger.DefaultOptions(cfg.Path)
		opts.Logger = nil // Suppress BadgerDB logs

		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open badger db for sessions: %w", err)
		}
		factory.db = db
	case SessionStoreMemory, "":
		factory.storeType = SessionStoreMemory
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}

	return factory, nil
}

// CreateStore creates a SessionStore based on the factory's configuration.
func (f *SessionStoreFactory) CreateStore() SessionStore {
	if f.db != nil {
		return NewBadgerStore(f.db, f.ttl)
	}
	return NewMemoryStore(0, f.ttl)
}

// Type returns the configured backend.
func (f *SessionStoreFactory) Type() SessionStoreType {
	return f.storeType
}

// Close closes the underlying BadgerDB if one was opened.
func (f *SessionStoreFactory) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}

var _ io.Closer = (*SessionStoreFactory)(nil)

// keyedMutex serializes work per key. Entries are dropped once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock blocks until key is free and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// size returns the number of keys currently held or awaited.
func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
