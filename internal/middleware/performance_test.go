// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/pelismatch/internal/logging"
)

func sample(route string, ms int64, status int) RequestSample {
	return RequestSample{Route: route, Method: "GET", DurationMS: ms, StatusCode: status, Timestamp: time.Now()}
}

func TestPerformanceMonitor_RingKeepsNewest(t *testing.T) {
	pm := NewPerformanceMonitor(5)
	for i := 0; i < 12; i++ {
		pm.Record(sample("/a", int64(i), 200))
	}

	recent := pm.Recent(10)
	if len(recent) != 5 {
		t.Fatalf("len = %d, want 5", len(recent))
	}
	for i, s := range recent {
		if want := int64(7 + i); s.DurationMS != want {
			t.Errorf("recent[%d] = %d, want %d", i, s.DurationMS, want)
		}
	}
}

func TestPerformanceMonitor_RecentBeforeFull(t *testing.T) {
	pm := NewPerformanceMonitor(10)
	pm.Record(sample("/a", 1, 200))
	pm.Record(sample("/a", 2, 200))

	recent := pm.Recent(1)
	if len(recent) != 1 || recent[0].DurationMS != 2 {
		t.Errorf("recent = %+v", recent)
	}
	if got := len(pm.Recent(100)); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
}

func TestPerformanceMonitor_Stats(t *testing.T) {
	pm := NewPerformanceMonitor(100)
	for i := 0; i < 10; i++ {
		pm.Record(sample("/busy", int64(100+i*10), 200))
	}
	pm.Record(sample("/quiet", 5, 502))

	stats := pm.Stats()
	if len(stats) != 2 {
		t.Fatalf("len = %d", len(stats))
	}

	busy := stats[0]
	if busy.Endpoint != "GET /busy" || busy.RequestCount != 10 {
		t.Errorf("busy = %+v", busy)
	}
	if busy.P50Duration != 140 || busy.MaxDuration != 190 || busy.AvgDuration != 145 {
		t.Errorf("busy percentiles = %+v", busy)
	}
	if stats[1].ErrorCount != 1 {
		t.Errorf("quiet errors = %d, want 1", stats[1].ErrorCount)
	}
}

func TestPerformanceMonitor_EmptyStats(t *testing.T) {
	pm := NewPerformanceMonitor(0)
	if got := pm.Stats(); len(got) != 0 {
		t.Errorf("stats = %+v", got)
	}
	if got := percentile(nil, 0.5); got != 0 {
		t.Errorf("percentile(nil) = %d", got)
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	defer logging.SetLogger(prev)

	pm := NewPerformanceMonitor(10)
	pm.SetSlowThreshold(time.Nanosecond)

	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/api/v1/movies/similar/{title}", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond)
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/movies/similar/heat", nil))

	recent := pm.Recent(1)
	if len(recent) != 1 {
		t.Fatalf("no sample recorded")
	}
	if recent[0].Route != "/api/v1/movies/similar/{title}" || recent[0].StatusCode != http.StatusTeapot {
		t.Errorf("sample = %+v", recent[0])
	}
	if !bytes.Contains(buf.Bytes(), []byte("Slow request detected")) {
		t.Errorf("expected slow request log, got %s", buf.String())
	}
}
