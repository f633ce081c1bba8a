// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

/*
Package services adapts PelisMatch components to suture.Service.

HTTPServerService turns http.Server's blocking ListenAndServe into a
context-aware Serve with bounded graceful shutdown.

ModelLoaderService owns the embedding model lifecycle: it loads the .npy
matrix and JSON map bundle at startup, retries while nothing is loaded, and
when model.reload_interval is positive polls both files' size and mtime and
swaps in a fresh model when they change. A reload that fails keeps the
model that is already serving.

The events consumer in package events implements suture.Service directly
and needs no wrapper here.
*/
package services
