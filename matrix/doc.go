// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric infrastructure behind the
// agreement statistics.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with checked accessors.
//   - Labeled, a square Dense addressed by an ordered set of category labels.
//   - DoublyStochastic, Sinkhorn-Knopp balancing of a non-negative matrix
//     towards unit row and column sums.
//   - Variation, diagonal-scaled normalisation with a zeroed diagonal.
//
// Transforms never mutate their input and report misuse with sentinel errors
// matched via errors.Is. Tuning goes through functional options (WithTolerance,
// WithMaxIter, WithRegularization, WithLogger).
package matrix
