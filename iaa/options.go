// SPDX-License-Identifier: MIT

package iaa

import (
	"log/slog"
	"math"
)

// Defaults for the anomaly checks. None of them changes a computed value;
// they only decide when a warning is logged.
const (
	// DefaultSumTolerance bounds |Σ_l w(k,l) − 1| for one item before it is
	// reported as inconsistently labelled.
	DefaultSumTolerance = 1e-6

	// DefaultDriftTolerance bounds the cumulative drift of an annotator's total
	// weight away from the number of items seen so far.
	DefaultDriftTolerance = 0.5

	// DefaultNormalizationTolerance bounds |Σq − N·Q| in the Fleiss consistency check.
	DefaultNormalizationTolerance = 0.1

	// DefaultWorkers is the AllPairs concurrency bound; 0 means one goroutine per pair.
	DefaultWorkers = 0
)

const (
	panicToleranceInvalid = "iaa: tolerance must be finite, positive"
	panicWorkersInvalid   = "iaa: WithWorkers: n must be >= 0"
)

// Option configures a calculator.
type Option func(*Options)

// Options holds calculator configuration. Use the WithX constructors.
type Options struct {
	logger                 *slog.Logger
	sumTolerance           float64
	driftTolerance         float64
	normalizationTolerance float64
	workers                int
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		sumTolerance:           DefaultSumTolerance,
		driftTolerance:         DefaultDriftTolerance,
		normalizationTolerance: DefaultNormalizationTolerance,
		workers:                DefaultWorkers,
	}
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

func validTolerance(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		panic(panicToleranceInvalid)
	}
}

// WithLogger routes anomaly warnings to l. A nil logger means slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithSumTolerance sets the per-item "weights sum to 1" tolerance.
func WithSumTolerance(eps float64) Option {
	validTolerance(eps)
	return func(o *Options) { o.sumTolerance = eps }
}

// WithDriftTolerance sets the cumulative frequency drift tolerance.
func WithDriftTolerance(d float64) Option {
	validTolerance(d)
	return func(o *Options) { o.driftTolerance = d }
}

// WithNormalizationTolerance sets the Σq vs N·Q tolerance.
func WithNormalizationTolerance(t float64) Option {
	validTolerance(t)
	return func(o *Options) { o.normalizationTolerance = t }
}

// WithWorkers bounds the number of pairs AllPairs computes at once.
// 0 removes the bound.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}
	return func(o *Options) { o.workers = n }
}
