// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/pelismatch/internal/models"
	"github.com/tomtom215/pelismatch/internal/validation"
)

// errRequestBody is returned for bodies that are not valid JSON for the
// endpoint. It wraps models.ErrValidation.
var errRequestBody = errors.Join(models.ErrValidation, errors.New("request body is not valid JSON"))

// classification is the HTTP rendering of an error.
type classification struct {
	status  int
	code    string
	message string
	details interface{}
}

// classify maps the error taxonomy onto status codes. Messages for 5xx are
// generic; the cause is logged, not returned.
func classify(err error) classification {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		return classification{http.StatusBadRequest, ErrCodeValidationFailed, apiErr.Message, apiErr.Details}
	case errors.Is(err, models.ErrValidation):
		return classification{http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), nil}
	case errors.Is(err, models.ErrNotFound):
		return classification{http.StatusNotFound, ErrCodeNotFound, err.Error(), nil}
	case errors.Is(err, models.ErrServiceUnavailable):
		return classification{http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "recommendation model is not loaded", nil}
	case errors.Is(err, models.ErrUpstream), errors.Is(err, context.DeadlineExceeded):
		return classification{http.StatusBadGateway, ErrCodeExternalServiceFail, "movie catalog is unavailable", nil}
	default:
		return classification{http.StatusInternalServerError, ErrCodeInternalError, "internal error", nil}
	}
}
