// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

/*
Package api exposes PelisMatch over HTTP using the chi router.

Routes:

	GET  /health                              full health report
	GET  /health/live                         liveness (always 200)
	GET  /health/ready                        readiness (503 until a model is loaded)
	GET  /metrics                             Prometheus metrics

	POST /api/v1/chat                         one chatbot turn
	GET  /api/v1/chat/ws                      chatbot over WebSocket
	POST /api/v1/recommendations/favorites    embedding recommendations
	GET  /api/v1/movies/similar/{title}       similar movies by shared credits
	GET  /api/v1/movies/top                   popular movies by weighted rating
	GET  /api/v1/movies/available             external ids known to the model
	POST /api/v1/search/logic                 include/exclude discover search
	GET  /api/v1/genres                       catalog genre list
	GET  /api/v1/people                       local director and actor catalog
	GET  /api/v1/stats/latency                recent per-route latency

Every JSON response uses the envelope in response.go. Errors are classified
with errors.Is against the models taxonomy:

	models.ErrValidation          400 VALIDATION_FAILED
	models.ErrNotFound            404 NOT_FOUND
	models.ErrUpstream            502 EXTERNAL_SERVICE_FAILED
	models.ErrServiceUnavailable  503 SERVICE_UNAVAILABLE
	anything else                 500 INTERNAL_ERROR

Chat sessions are identified by an opaque token taken from the session cookie
or the X-Session-Token header. A token is issued when the request carries
none, and it is echoed back in both the cookie and the response body.
*/
package api
