// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

/*
Package metrics provides Prometheus instrumentation for PelisMatch.

# Overview

The package registers metrics with the default registry via promauto for:
  - HTTP request latency and throughput
  - TMDb catalog calls, cache efficiency and circuit breaker state
  - Embedding model readiness and recommender outcomes
  - Dialogue turns and state transitions
  - Session store operations
  - Fan-out batch item outcomes
  - Activity events published and consumed

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage

Prefer the Record* helpers over touching the collectors directly:

	start := time.Now()
	movie, err := client.MovieDetail(ctx, id)
	metrics.RecordCatalogCall("movie_detail", time.Since(start), err)
*/
package metrics
