// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/pelismatch/internal/api"
	"github.com/tomtom215/pelismatch/internal/catalog"
	"github.com/tomtom215/pelismatch/internal/config"
	"github.com/tomtom215/pelismatch/internal/dialogue"
	"github.com/tomtom215/pelismatch/internal/discovery"
	"github.com/tomtom215/pelismatch/internal/events"
	"github.com/tomtom215/pelismatch/internal/logging"
	"github.com/tomtom215/pelismatch/internal/middleware"
	"github.com/tomtom215/pelismatch/internal/recommend"
	"github.com/tomtom215/pelismatch/internal/recommend/algorithms"
	"github.com/tomtom215/pelismatch/internal/supervisor"
	"github.com/tomtom215/pelismatch/internal/supervisor/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("session_store", cfg.Session.Store).
		Bool("events", cfg.Events.Enabled).
		Msg("Starting PelisMatch")

	if containsWildcard(cfg.Security.CORSOrigins) && cfg.Server.Environment == "production" {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS to your frontend")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED")
	}

	client, err := catalog.NewClient(&cfg.Catalog, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create catalog client")
	}

	recommender := recommend.NewRecommender(logging.Logger())

	scorer := algorithms.NewSimilarityScorer(algorithms.SimilarityWeights{
		Director: cfg.Recommend.DirectorWeight,
		Genre:    cfg.Recommend.GenreWeight,
		Actor:    cfg.Recommend.ActorWeight,
	})
	disc := discovery.NewService(client, recommender, scorer, discovery.Config{
		CallTimeout:    cfg.Catalog.RequestTimeout,
		MaxConcurrency: cfg.Catalog.MaxConcurrency,
		TopN:           cfg.Recommend.TopN,
	}, logging.Logger())

	sessions, err := dialogue.NewSessionStoreFactory(&cfg.Session)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()
	if sessions.Type() == dialogue.SessionStoreMemory && cfg.Server.Environment != "development" {
		logging.Warn().Msg("Conversations are kept in memory and are lost on restart; consider SESSION_STORE=badger")
	}

	sessionStore := sessions.CreateStore()
	machine := dialogue.NewMachine(sessionStore, client, cfg.Dialogue, logging.Logger())

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	var publisher *events.Publisher
	if cfg.Events.Enabled {
		bus := events.NewBus(&cfg.Events)
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		publisher = events.NewPublisher(bus, logging.Logger())
		machine.SetListener(publisher)
		tree.AddMessagingService(events.NewConsumer(bus, logging.Logger()))
	}

	perf := middleware.NewPerformanceMonitor(0)

	handler := api.NewHandler(api.Deps{
		Config:       cfg,
		Discovery:    disc,
		Conversation: machine,
		Genres:       client,
		Model:        recommender,
		Events:       publisher,
		Perf:         perf,
		SessionStore: string(sessions.Type()),
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	tree.AddDataService(services.NewModelLoaderService(recommender, cfg.Model, logging.WithComponent("model")))
	tree.AddDataService(services.NewCacheJanitorService("catalog", client, cfg.Catalog.CacheTTL, logging.WithComponent("catalog")))
	if mem, ok := sessionStore.(*dialogue.MemoryStore); ok {
		tree.AddDataService(services.NewCacheJanitorService("sessions", mem, cfg.Session.TTL, logging.WithComponent("dialogue")))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("PelisMatch stopped")
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
