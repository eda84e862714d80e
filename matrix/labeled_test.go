// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/iaa/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewLabeled(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewLabeled([]string{})
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewLabeled([]string{"a", "b", "a"})
	require.ErrorIs(t, err, matrix.ErrDuplicateLabel)

	l, err := matrix.NewLabeled([]string{"x", "y"})
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	require.Equal(t, []string{"x", "y"}, l.Labels())

	i, ok := l.Index("y")
	require.True(t, ok)
	require.Equal(t, 1, i)
	_, ok = l.Index("z")
	require.False(t, ok)
}

func TestLabeled_CellAccess(t *testing.T) {
	t.Parallel()

	l, err := matrix.NewLabeled([]int{10, 20})
	require.NoError(t, err)

	require.NoError(t, l.SetLabel(10, 20, 1.5))
	require.NoError(t, l.AddLabel(10, 20, 1))
	v, err := l.AtLabel(10, 20)
	require.NoError(t, err)
	require.Equal(t, 2.5, v)
	require.Equal(t, 2.5, MustAt(t, l.Dense(), 0, 1))

	_, err = l.AtLabel(30, 10)
	require.ErrorIs(t, err, matrix.ErrUnknownLabel)
	require.ErrorIs(t, l.SetLabel(10, 30, 1), matrix.ErrUnknownLabel)

	// Labels() is a copy.
	labels := l.Labels()
	labels[0] = 99
	require.Equal(t, []int{10, 20}, l.Labels())
}

func TestLabeled_WithMatrixAndClone(t *testing.T) {
	t.Parallel()

	l, err := matrix.NewLabeled([]string{"a", "b"})
	require.NoError(t, err)

	src := MustDenseFrom(t, [][]float64{{1, 2}, {3, 4}})
	w, err := l.WithMatrix(src)
	require.NoError(t, err)
	v, err := w.AtLabel("b", "a")
	require.NoError(t, err)
	require.Equal(t, 3.0, v)

	require.NoError(t, src.Set(1, 0, 42))
	v, _ = w.AtLabel("b", "a")
	require.Equal(t, 3.0, v, "WithMatrix copies its argument")

	_, err = l.WithMatrix(MustDenseFrom(t, [][]float64{{1}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = l.WithMatrix(MustDenseFrom(t, [][]float64{{1, 2}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	cp := w.Clone()
	require.NoError(t, cp.SetLabel("a", "a", 9))
	v, _ = w.AtLabel("a", "a")
	require.Equal(t, 1.0, v)
}
