// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

/*
Package main is the entry point for the PelisMatch server.

PelisMatch recommends movies three ways: from a user's favorites using a
pretrained embedding model, from a single movie by scoring its catalog
neighbours, and through a guided Spanish-language chat that narrows genre,
era and a director or actor before asking TMDb's discover endpoint.

# Startup

 1. Configuration: .env, optional config.yaml, then environment (Koanf v2)
 2. Logging: zerolog, JSON or console
 3. Catalog client: rate limited, circuit broken, detail cache
 4. Recommender: empty until the model loader installs a model
 5. Session store: in-memory LRU or BadgerDB
 6. Event bus: in-process Watermill GoChannel (if events.enabled)
 7. HTTP API: chi router, CORS, per-IP rate limits, Prometheus metrics
 8. Supervisor tree: suture v4 runs the loader, consumer and server

# Supervision

	pelismatch
	├── data-layer
	│   ├── model-loader
	│   ├── catalog-janitor
	│   └── sessions-janitor  (memory session store only)
	├── messaging-layer
	│   └── events-consumer
	└── api-layer
	    └── http-server

The server starts listening before the model is loaded; /health/ready and
the favorites endpoints answer 503 until it is.

# Signals

SIGINT and SIGTERM cancel the root context. Each service gets 10s to stop;
the HTTP server drains in-flight requests and WebSocket chats.

# Example

	export TMDB_API_KEY=...
	export MODEL_EMBEDDINGS_PATH=/models/movie_embeddings.npy
	export MODEL_MAPS_PATH=/models/model_maps.json
	./pelismatch
*/
package main
