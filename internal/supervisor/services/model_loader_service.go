// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package services

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pelismatch/internal/config"
	"github.com/tomtom215/pelismatch/internal/metrics"
	"github.com/tomtom215/pelismatch/internal/recommend/storage"
)

// DefaultRetryInterval is used between load attempts when no reload
// interval is configured and the model is not loaded yet.
const DefaultRetryInterval = time.Minute

// ModelInstaller receives freshly loaded models.
// Satisfied by *recommend.Recommender.
type ModelInstaller interface {
	SetModel(m *storage.Model)
	Ready() bool
}

// ModelLoadFunc reads the embedding and map artifacts from disk.
type ModelLoadFunc func(embeddingsPath, mapsPath string) (*storage.Model, error)

// artifactStamp identifies one version of the artifact pair on disk.
type artifactStamp struct {
	embModTime  time.Time
	embSize     int64
	mapsModTime time.Time
	mapsSize    int64
}

// ModelLoaderService loads the embedding model and keeps it current.
//
// The first load happens as soon as the service starts. While no model is
// installed the loader retries every interval. Once loaded, a positive
// ReloadInterval polls both artifacts and reloads when either changes; a
// failed reload leaves the previous model in place.
type ModelLoaderService struct {
	target   ModelInstaller
	load     ModelLoadFunc
	cfg      config.ModelConfig
	logger   zerolog.Logger
	name     string
	lastSeen artifactStamp
}

// NewModelLoaderService creates a loader that reads artifacts with storage.LoadModel.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewModelLoaderService(target ModelInstaller, cfg config.ModelConfig, logger zerolog.Logger) *ModelLoaderService {
	return &ModelLoaderService{
		target: target,
		load:   storage.LoadModel,
		cfg:    cfg,
		logger: logger.With().Str("service", "model-loader").Logger(),
		name:   "model-loader",
	}
}

// WithLoadFunc replaces the artifact reader.
func (s *ModelLoaderService) WithLoadFunc(fn ModelLoadFunc) *ModelLoaderService {
	if fn != nil {
		s.load = fn
	}
	return s
}

// Serve implements suture.Service.
func (s *ModelLoaderService) Serve(ctx context.Context) error {
	s.logger.Info().
		Str("embeddings", s.cfg.EmbeddingsPath).
		Str("maps", s.cfg.MapsPath).
		Dur("reload_interval", s.cfg.ReloadInterval).
		Msg("model loader starting")

	if !s.target.Ready() {
		if err := s.loadNow(); err != nil {
			s.logger.Warn().Err(err).Msg("initial model load failed (will retry)")
		}
	}

	interval := s.cfg.ReloadInterval
	if interval <= 0 {
		interval = DefaultRetryInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("model loader shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *ModelLoaderService) tick() {
	if !s.target.Ready() {
		if err := s.loadNow(); err != nil {
			s.logger.Warn().Err(err).Msg("model load retry failed")
		}
		return
	}
	if s.cfg.ReloadInterval <= 0 {
		return
	}

	stamp, err := s.stat()
	if err != nil {
		s.logger.Warn().Err(err).Msg("model artifacts not readable; keeping current model")
		return
	}
	if stamp == s.lastSeen {
		return
	}

	s.logger.Info().Msg("model artifacts changed, reloading")
	if err := s.loadNow(); err != nil {
		s.logger.Error().Err(err).Msg("model reload failed; keeping previous model")
	}
}

// loadNow reads both artifacts and installs the result on success.
// The stamp is recorded either way so a broken pair is not re-read until
// it changes again.
func (s *ModelLoaderService) loadNow() error {
	stamp, statErr := s.stat()

	start := time.Now()
	m, err := s.load(s.cfg.EmbeddingsPath, s.cfg.MapsPath)
	metrics.RecordModelLoad(rowsOf(m), err)
	if statErr == nil {
		s.lastSeen = stamp
	}
	if err != nil {
		return err
	}
	if m == nil {
		return errors.New("model loader returned no model")
	}

	s.target.SetModel(m)
	meta := m.Metadata()
	s.logger.Info().
		Int("rows", meta.Rows).
		Int("dim", meta.Dim).
		Int("retained_ids", meta.RetainedIDs).
		Dur("duration", time.Since(start)).
		Msg("embedding model loaded")
	return nil
}

func (s *ModelLoaderService) stat() (artifactStamp, error) {
	emb, err := os.Stat(s.cfg.EmbeddingsPath)
	if err != nil {
		return artifactStamp{}, err
	}
	maps, err := os.Stat(s.cfg.MapsPath)
	if err != nil {
		return artifactStamp{}, err
	}
	return artifactStamp{
		embModTime:  emb.ModTime(),
		embSize:     emb.Size(),
		mapsModTime: maps.ModTime(),
		mapsSize:    maps.Size(),
	}, nil
}

func rowsOf(m *storage.Model) int {
	if m == nil {
		return 0
	}
	return m.Rows()
}

// String returns the service name for logging.
func (s *ModelLoaderService) String() string {
	return s.name
}
