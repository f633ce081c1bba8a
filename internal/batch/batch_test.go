// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapAlignsResultsWithInputs(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}
	results := Map(context.Background(), items, Options{Limit: 2}, func(_ context.Context, n int) (int, error) {
		return n * 10, nil
	})

	if len(results) != len(items) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(items))
	}
	for i, r := range results {
		if !r.OK() || r.Value != items[i]*10 {
			t.Errorf("results[%d] = %+v, want %d", i, r, items[i]*10)
		}
	}
}

func TestMapPartialFailure(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	results := Map(context.Background(), []int{1, 2, 3}, Options{}, func(_ context.Context, n int) (string, error) {
		if n == 2 {
			return "", errBoom
		}
		return "ok", nil
	})

	if !errors.Is(results[1].Err, errBoom) {
		t.Errorf("results[1].Err = %v, want boom", results[1].Err)
	}
	if Failed(results) != 1 {
		t.Errorf("Failed = %d, want 1", Failed(results))
	}
	if vals := Values(results); len(vals) != 2 {
		t.Errorf("Values = %v, want 2 values", vals)
	}
}

func TestMapPerCallTimeout(t *testing.T) {
	t.Parallel()

	results := Map(context.Background(), []time.Duration{0, time.Second}, Options{Timeout: 20 * time.Millisecond},
		func(ctx context.Context, d time.Duration) (bool, error) {
			select {
			case <-time.After(d):
				return true, nil
			case <-ctx.Done():
				return false, ctx.Err()
			}
		})

	if !results[0].OK() {
		t.Errorf("fast call failed: %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, context.DeadlineExceeded) {
		t.Errorf("slow call err = %v, want deadline exceeded", results[1].Err)
	}
}

func TestMapRespectsLimit(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	items := make([]int, 20)
	Map(context.Background(), items, Options{Limit: 3}, func(_ context.Context, _ int) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})

	if p := peak.Load(); p > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", p)
	}
}

func TestMapCanceledParent(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	results := Map(ctx, []int{1, 2}, Options{}, func(_ context.Context, _ int) (int, error) {
		calls.Add(1)
		return 0, nil
	})

	if calls.Load() != 0 {
		t.Errorf("fn called %d times on canceled context", calls.Load())
	}
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v, want canceled", i, r.Err)
		}
	}
}

func TestMapEmpty(t *testing.T) {
	t.Parallel()

	results := Map(context.Background(), []int(nil), Options{}, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}
