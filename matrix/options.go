// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the normalisation transforms.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Notes:
//   - Sinkhorn defaults mirror the classic agreement tooling: tolerance 1e-4 on the
//     L1 marginal error and at most 50 balancing iterations.
//   - LegacyColumnGuard is a compatibility switch; see DoublyStochastic.
package matrix

import (
	"log/slog"
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultSinkhornTolerance is the stopping threshold for the summed absolute
	// deviation of all row and column sums from 1.
	DefaultSinkhornTolerance = 1e-4

	// DefaultSinkhornMaxIter caps the number of row+column balancing passes.
	DefaultSinkhornMaxIter = 50

	// DefaultRegularization replaces diagonal entries that are effectively zero
	// before taking square roots in Variation.
	DefaultRegularization = 1e-4

	// DefaultLegacyColumnGuard keeps the corrected column guard.
	DefaultLegacyColumnGuard = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicToleranceInvalid      = "matrix: WithTolerance: tol must be finite, positive"
	panicMaxIterInvalid        = "matrix: WithMaxIter: maxIter must be > 0"
	panicRegularizationInvalid = "matrix: WithRegularization: c must be finite, positive"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options holds the transform configuration. Fields are unexported; use WithX.
type Options struct {
	tolerance         float64
	maxIter           int
	legacyColumnGuard bool
	regularization    float64
	logger            *slog.Logger
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		tolerance:         DefaultSinkhornTolerance,
		maxIter:           DefaultSinkhornMaxIter,
		legacyColumnGuard: DefaultLegacyColumnGuard,
		regularization:    DefaultRegularization,
	}
}

// gatherOptions applies opts on top of the defaults. Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}

// WithTolerance sets the Sinkhorn convergence threshold.
// Panics if tol is not finite or not strictly positive.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithMaxIter sets the Sinkhorn iteration cap. Panics if maxIter <= 0.
func WithMaxIter(maxIter int) Option {
	if maxIter <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = maxIter }
}

// WithLegacyColumnGuard reproduces the historical column pass, which decides
// whether to rescale cell (i,j) by looking at the sum of column i instead of
// column j. Results differ only when some column sums to zero.
func WithLegacyColumnGuard() Option {
	return func(o *Options) { o.legacyColumnGuard = true }
}

// WithRegularization sets the value substituted for a vanishing diagonal
// entry in Variation. Panics if c is not finite or not strictly positive.
func WithRegularization(c float64) Option {
	if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
		panic(panicRegularizationInvalid)
	}

	return func(o *Options) { o.regularization = c }
}

// WithLogger routes non-fatal diagnostics (e.g. Sinkhorn non-convergence).
// A nil logger falls back to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}
