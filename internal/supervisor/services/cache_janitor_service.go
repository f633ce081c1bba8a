// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CachePurger drops expired cache entries. Satisfied by *catalog.Client and
// *dialogue.MemoryStore.
type CachePurger interface {
	PurgeExpired() int
}

// CacheJanitorService periodically purges an in-memory TTL cache so expired
// entries do not hold memory until they are next looked up.
type CacheJanitorService struct {
	name     string
	cache    CachePurger
	interval time.Duration
	logger   zerolog.Logger
}

// NewCacheJanitorService creates a janitor for the named cache. A non-positive
// interval means 5m.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(name string, cache CachePurger, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheJanitorService{
		name:     name,
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("service", name+"-janitor").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.cache.PurgeExpired(); n > 0 {
				s.logger.Debug().Int("purged", n).Msg("expired cache entries purged")
			}
		}
	}
}

// String returns the service name for logging.
func (s *CacheJanitorService) String() string {
	return s.name + "-janitor"
}
