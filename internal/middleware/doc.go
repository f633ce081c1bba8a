// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: request id propagation (X-Request-ID) into the logging context
  - PrometheusMetrics: request count, duration and in-flight gauge per route
  - PerformanceMonitor: sliding window of request latencies with percentiles

All middleware uses the func(http.Handler) http.Handler shape so it composes
with chi's r.Use:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)

Metrics are labeled with the chi route pattern (for example
"/api/v1/movies/similar/{title}") rather than the raw path, so path
parameters do not create unbounded label cardinality.
*/
package middleware
