// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Catalog (TMDb) Metrics
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of movie catalog API calls",
		},
		[]string{"operation", "outcome"}, // outcome: "success", "error"
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Movie catalog API call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"operation"},
	)

	CatalogRateLimitRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rate_limit_retries_total",
			Help: "Total number of catalog retries after HTTP 429",
		},
	)

	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Total number of movie detail cache hits",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Total number of movie detail cache misses",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "not_found", "canceled", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Embedding Model Metrics
	ModelReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_ready",
			Help: "Whether the embedding model is loaded (1) or not (0)",
		},
	)

	ModelRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_rows",
			Help: "Number of embedding rows with a retained catalog id",
		},
	)

	ModelLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_model_loads_total",
			Help: "Total number of embedding model load attempts",
		},
		[]string{"outcome"},
	)

	ModelLastLoad = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_last_load_timestamp",
			Help: "Unix timestamp of the last successful model load",
		},
	)

	// Recommender Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of favorites recommendation requests",
		},
		[]string{"outcome"}, // outcome: "ok", "empty", "not_ready"
	)

	RecommendUnresolvedFavorites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_unresolved_favorites_total",
			Help: "Total number of favorite ids that did not translate to an embedding row",
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time to rank the catalog for one favorites request",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SimilarityScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "similarity_pairs_scored_total",
			Help: "Total number of movie pairs scored by the similarity scorer",
		},
	)

	// Dialogue Metrics
	DialogueTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_turns_total",
			Help: "Total number of dialogue turns by the state they started in",
		},
		[]string{"state"},
	)

	DialogueTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_transitions_total",
			Help: "Total number of dialogue state transitions",
		},
		[]string{"from_state", "to_state"},
	)

	DialogueCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_completed_total",
			Help: "Total number of conversations ending in a recommendation or reset",
		},
		[]string{"reason"}, // reason: "recommended", "reset", "retry_limit"
	)

	// Session Store Metrics
	SessionStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_store_operations_total",
			Help: "Total number of conversation session store operations",
		},
		[]string{"backend", "operation", "outcome"},
	)

	// Batch Fan-out Metrics
	BatchItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_items_total",
			Help: "Total number of fan-out batch items by outcome",
		},
		[]string{"batch", "outcome"}, // outcome: "ok", "error", "canceled"
	)

	// Activity Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_published_total",
			Help: "Total number of activity events published",
		},
		[]string{"topic", "outcome"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_consumed_total",
			Help: "Total number of activity events consumed",
		},
		[]string{"topic"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_websocket_connections",
			Help: "Current number of open chat WebSocket connections",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogCall records one catalog API call.
func RecordCatalogCall(operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	CatalogRequestsTotal.WithLabelValues(operation, outcome).Inc()
	CatalogRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordModelLoad records a model load attempt and, on success, its size.
func RecordModelLoad(rows int, err error) {
	if err != nil {
		ModelLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	ModelLoadsTotal.WithLabelValues("success").Inc()
	ModelRows.Set(float64(rows))
	ModelReady.Set(1)
	ModelLastLoad.Set(float64(time.Now().Unix()))
}

// RecordRecommendation records a favorites request outcome.
func RecordRecommendation(outcome string, unresolved int, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(outcome).Inc()
	if unresolved > 0 {
		RecommendUnresolvedFavorites.Add(float64(unresolved))
	}
	if duration > 0 {
		RecommendDuration.Observe(duration.Seconds())
	}
}

// RecordDialogueTurn records a turn and the transition it caused.
func RecordDialogueTurn(from, to string) {
	DialogueTurnsTotal.WithLabelValues(from).Inc()
	if from != to {
		DialogueTransitionsTotal.WithLabelValues(from, to).Inc()
	}
}

// RecordSessionOp records a session store operation.
func RecordSessionOp(backend, operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	SessionStoreOperations.WithLabelValues(backend, operation, outcome).Inc()
}
