// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pelismatch/internal/logging"
	"github.com/tomtom215/pelismatch/internal/validation"
)

func TestResponseWriter_Success(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-9"))
	rec := httptest.NewRecorder()

	NewResponseWriter(rec, req).Success(map[string]int{"n": 1})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Error != nil || resp.Meta.RequestID != "req-9" {
		t.Errorf("response = %+v", resp)
	}
}

func TestResponseWriter_ValidationErrorDetails(t *testing.T) {
	type payload struct {
		IDs []int `json:"ids" validate:"required,min=1"`
	}
	verr := validation.ValidateStruct(&payload{})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	rec := httptest.NewRecorder()
	NewResponseWriter(rec, httptest.NewRequest(http.MethodPost, "/", nil)).FromError(verr)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != ErrCodeValidationFailed || resp.Error.Details == nil {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestResponseWriter_ServerErrorsHideCause(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponseWriter(rec, httptest.NewRequest(http.MethodGet, "/", nil)).FromError(errSecret)

	var resp APIResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error.Message != "internal error" {
		t.Errorf("message = %q leaks the cause", resp.Error.Message)
	}
}

var errSecret = &secretError{}

type secretError struct{}

func (*secretError) Error() string { return "dsn=postgres://user:pw@host" }
