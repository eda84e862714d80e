// SPDX-License-Identifier: MIT

package dataset

import (
	"log/slog"
	"math"
)

// DefaultSumTolerance bounds how far a turn's weights may drift from 1
// before a warning is logged.
const DefaultSumTolerance = 1e-6

type options struct {
	logger       *slog.Logger
	weights      []float64
	sumTolerance float64
}

// Option configures loading and matrix construction.
type Option func(*options)

func gatherOptions(opts ...Option) options {
	o := options{sumTolerance: DefaultSumTolerance}
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

// WithLogger routes ingestion warnings. Nil selects slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithWeights assigns weights[i] to the i-th label of a turn instead of the
// equal split 1/len(labels). Panics on a negative or non-finite weight.
func WithWeights(weights ...float64) Option {
	for _, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			panic("dataset: WithWeights: weights must be finite, non-negative")
		}
	}
	ws := append([]float64(nil), weights...)

	return func(o *options) { o.weights = ws }
}
