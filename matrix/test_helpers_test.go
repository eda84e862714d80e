// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/iaa/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the generic (non-*Dense) code paths.
type hide struct{ matrix.Matrix }

// MustDenseFrom builds a *Dense from rows or fails the test.
func MustDenseFrom(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// requireMarginals asserts every row and column sums to 1 within tol.
func requireMarginals(t *testing.T, m *matrix.Dense, tol float64) {
	t.Helper()
	for i, s := range m.RowSums() {
		require.InDeltaf(t, 1.0, s, tol, "row %d", i)
	}
	for j, s := range m.ColSums() {
		require.InDeltaf(t, 1.0, s, tol, "col %d", j)
	}
}

// sliceClose asserts element-wise closeness of two vectors.
func sliceClose(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsNaN(want[i]) {
			require.Truef(t, math.IsNaN(got[i]), "index %d: want NaN, got %g", i, got[i])
			continue
		}
		require.InDeltaf(t, want[i], got[i], tol, "index %d", i)
	}
}
