// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package models

import "errors"

// Error taxonomy. Packages wrap these with fmt.Errorf("...: %w", Err...) and
// the HTTP layer classifies them with errors.Is.
var (
	// ErrNotFound means a title or person search returned nothing, or none
	// of the supplied favorites resolve in the embedding model.
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable means the embedding model is not loaded.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrValidation means a request payload is malformed.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream means the movie catalog failed or timed out on a call the
	// operation cannot proceed without.
	ErrUpstream = errors.New("upstream catalog error")
)
