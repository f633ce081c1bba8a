// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pelismatch/internal/models"
	"github.com/tomtom215/pelismatch/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// maxTitleLength bounds the title path parameter.
const maxTitleLength = 200

// ChatRequest is one chatbot turn.
type ChatRequest struct {
	Message string `json:"message" validate:"required,notblank,max=500"`
}

// decodeAndValidate reads a JSON body into dst and validates it. Unknown
// fields are rejected.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return err
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr
	}
	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("content type must be application/json: %w", models.ErrValidation)
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errRequestBody, err)
	}
	return nil
}
