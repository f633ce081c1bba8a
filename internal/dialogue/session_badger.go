// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package dialogue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/pelismatch/internal/metrics"
)

// Key prefix for BadgerDB storage
const sessionKeyPrefix = "conversation:"

// BadgerStore keeps sessions in BadgerDB. Expiry uses badger entry TTLs.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerStore creates a store on an open DB.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &BadgerStore{db: db, ttl: ttl}
}

// Get retrieves a session by token.
func (s *BadgerStore) Get(_ context.Context, token string) (*Session, error) {
	var session Session

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionKeyPrefix + token))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if errors.Is(err, ErrSessionNotFound) {
		metrics.RecordSessionOp(string(SessionStoreBadger), "miss", nil)
		return nil, err
	}
	metrics.RecordSessionOp(string(SessionStoreBadger), "get", err)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Put stores the session with a fresh TTL.
func (s *BadgerStore) Put(_ context.Context, token string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(sessionKeyPrefix+token), data).WithTTL(s.ttl)
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		return nil
	})
	metrics.RecordSessionOp(string(SessionStoreBadger), "put", err)
	return err
}

// Clear removes a session by token.
func (s *BadgerStore) Clear(_ context.Context, token string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(sessionKeyPrefix + token)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
	metrics.RecordSessionOp(string(SessionStoreBadger), "clear", err)
	return err
}
