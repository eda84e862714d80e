// SPDX-License-Identifier: MIT

package matrix

import (
	"math"
)

const ctxVariation = "Variation"

// Variation rescales a square matrix by the square roots of its diagonal so
// that off-diagonal mass is expressed in units of the two categories' own
// "self-agreement":
//
//	v[i,j] = m[i,j] / (sqrt(d_i) · sqrt(d_j)),   v[i,i] = 0
//
// Diagonal entries below math.SmallestNonzeroFloat64 (i.e. zero, or negative)
// are replaced by the regularisation constant (DefaultRegularization unless
// WithRegularization is given) before the square root. The scale vector is
// taken once from the original diagonal; the input is never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare (wrapped).
//
// Complexity:
//   - Time O(n²), Space O(n²).
func Variation(m Matrix, opts ...Option) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(ctxVariation, err)
	}
	o := gatherOptions(opts...)

	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(ctxVariation, err)
	}

	n := d.r
	scale := make([]float64, n)
	var v float64
	for i := 0; i < n; i++ {
		v = d.data[i*n+i]
		if v < math.SmallestNonzeroFloat64 {
			v = o.regularization
		}
		scale[i] = math.Sqrt(v)
	}

	ewDivRows(d, scale)
	ewDivCols(d, scale, nil)
	for i := 0; i < n; i++ {
		d.data[i*n+i] = 0
	}

	return d, nil
}
