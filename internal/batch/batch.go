// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

// Package batch runs independent calls concurrently and returns one Result
// per input, so a failing item degrades to "missing" instead of aborting the
// whole batch.
//
//	results := batch.Map(ctx, ids, batch.Options{Limit: 8, Timeout: 5 * time.Second},
//	    func(ctx context.Context, id int) (*models.MovieRecord, error) {
//	        return client.MovieDetail(ctx, id)
//	    })
//	records := batch.Values(results)
package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/pelismatch/internal/metrics"
)

// DefaultLimit is the number of calls in flight when Options.Limit is zero.
const DefaultLimit = 8

// Result is the outcome of one item.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the item succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Options bounds a batch.
type Options struct {
	// Limit caps concurrent calls. Zero uses DefaultLimit.
	Limit int

	// Timeout bounds each call individually. Zero leaves only the parent
	// context deadline.
	Timeout time.Duration

	// Name labels the batch in metrics.
	Name string
}

// Map calls fn for every item and returns results aligned with items.
// Errors never cancel sibling calls. When the parent context is done,
// items that have not started yet fail with ctx.Err().
func Map[I, T any](ctx context.Context, items []I, opts Options, fn func(context.Context, I) (T, error)) []Result[T] {
	results := make([]Result[T], len(items))
	if len(items) == 0 {
		return results
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	name := opts.Name
	if name == "" {
		name = "default"
	}

	// errgroup is used for bounded concurrency only; workers always return nil.
	var g errgroup.Group
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result[T]{Err: err}
				metrics.BatchItems.WithLabelValues(name, "canceled").Inc()
				return nil
			}

			callCtx := ctx
			if opts.Timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
				defer cancel()
			}

			v, err := fn(callCtx, item)
			results[i] = Result[T]{Value: v, Err: err}
			if err != nil {
				metrics.BatchItems.WithLabelValues(name, "error").Inc()
			} else {
				metrics.BatchItems.WithLabelValues(name, "ok").Inc()
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Values returns the values of successful results, in order.
func Values[T any](results []Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Value)
		}
	}
	return out
}

// Failed counts failed results.
func Failed[T any](results []Result[T]) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
