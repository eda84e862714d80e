// SPDX-License-Identifier: MIT

package matrix

import (
	"math"
)

const ctxSinkhorn = "DoublyStochastic"

// SinkhornResult reports how a Sinkhorn-Knopp balancing run terminated.
type SinkhornResult struct {
	// Iterations is the number of row+column passes performed.
	Iterations int
	// Error is Σ_i |rowSum_i − 1| + Σ_j |colSum_j − 1| after the last pass.
	Error float64
	// Converged reports Error <= tolerance.
	Converged bool
}

// DoublyStochastic balances a non-negative square matrix towards one whose
// rows and columns all sum to 1 (Sinkhorn-Knopp).
//
// Implementation:
//   - Stage 1: validate (nil → square → non-negative), copy the input.
//   - Stage 2: measure the L1 marginal error; an input already within tolerance
//     is returned unchanged with zero iterations.
//   - Stage 3: while error > tolerance and the iteration cap is not reached:
//     divide each row by its sum, then each column of the row-normalised matrix
//     by its sum, recompute the error. Zero rows (columns) are left untouched.
//
// Behavior highlights:
//   - The input is never mutated.
//   - Non-convergence is not an error: the best-effort matrix is returned with
//     Converged=false and a warning is logged.
//   - A zero row or column can never reach sum 1, so such inputs end with
//     Converged=false.
//   - WithLegacyColumnGuard switches the column pass to the historical guard
//     (cell (i,j) rescaled iff colSum_i != 0, divided by colSum_j).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrNegative (wrapped).
//
// Complexity:
//   - Time O(iter·n²), Space O(n²).
func DoublyStochastic(m Matrix, opts ...Option) (*Dense, SinkhornResult, error) {
	var res SinkhornResult
	if err := ValidateSquare(m); err != nil {
		return nil, res, matrixErrorf(ctxSinkhorn, err)
	}
	if err := ValidateNonNegative(m); err != nil {
		return nil, res, matrixErrorf(ctxSinkhorn, err)
	}
	o := gatherOptions(opts...)

	d, err := toDense(m)
	if err != nil {
		return nil, res, matrixErrorf(ctxSinkhorn, err)
	}
	// The legacy guard may legitimately produce 0/0 cells; do not reject them.
	d.validateNaNInf = false

	rows := make([]float64, d.r)
	cols := make([]float64, d.c)
	res.Error = marginalError(d, rows, cols)

	var guard func(i, j int) bool
	if o.legacyColumnGuard {
		guard = func(i, _ int) bool { return cols[i] != 0 }
	}

	for res.Error > o.tolerance && res.Iterations < o.maxIter {
		res.Iterations++
		d.rowSumsInto(rows)
		ewDivRows(d, rows)
		d.colSumsInto(cols)
		ewDivCols(d, cols, guard)
		res.Error = marginalError(d, rows, cols)
	}
	res.Converged = res.Error <= o.tolerance
	d.validateNaNInf = DefaultValidateNaNInf

	if !res.Converged {
		o.logger.Warn("sinkhorn did not converge",
			"iterations", res.Iterations,
			"error", res.Error,
			"tolerance", o.tolerance)
	}

	return d, res, nil
}

// marginalError returns Σ|rowSum−1| + Σ|colSum−1| using rows/cols as scratch.
// NaN cells propagate into the error, which then never satisfies the tolerance.
func marginalError(d *Dense, rows, cols []float64) float64 {
	d.rowSumsInto(rows)
	d.colSumsInto(cols)
	var e float64
	for _, s := range rows {
		e += math.Abs(s - 1)
	}
	for _, s := range cols {
		e += math.Abs(s - 1)
	}
	if math.IsNaN(e) {
		return math.Inf(1)
	}

	return e
}
