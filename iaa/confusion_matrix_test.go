// SPDX-License-Identifier: MIT

package iaa_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/iaa/iaa"
	"github.com/katalvlaran/iaa/matrix"
	"github.com/stretchr/testify/require"
)

func filledConfusion(t *testing.T) *iaa.ConfusionMatrix[string] {
	t.Helper()
	c, err := iaa.NewConfusionMatrix([]string{"a", "b"})
	require.NoError(t, err)
	require.NoError(t, c.Set("a", "a", 2))
	require.NoError(t, c.Set("a", "b", 1))
	require.NoError(t, c.Set("b", "a", 3))
	require.NoError(t, c.Add("b", "b", 4))

	return c
}

func TestConfusionMatrix_Sums(t *testing.T) {
	t.Parallel()

	c := filledConfusion(t)
	require.Equal(t, 6.0, c.DiagonalSum())
	require.Equal(t, 10.0, c.EntireSum())
	require.Equal(t, 2.0, c.NonDiagonalSum())
	require.Equal(t, c.EntireSum(), c.DiagonalSum()+2*c.NonDiagonalSum())

	// Mutation invalidates the memoised sums.
	require.NoError(t, c.Add("a", "b", 1))
	require.Equal(t, 11.0, c.EntireSum())
	require.Equal(t, 2.5, c.NonDiagonalSum())
	require.Equal(t, c.EntireSum(), c.DiagonalSum()+2*c.NonDiagonalSum())
}

func TestConfusionMatrix_Errors(t *testing.T) {
	t.Parallel()

	_, err := iaa.NewConfusionMatrix([]string{})
	require.ErrorIs(t, err, iaa.ErrNoCategories)
	_, err = iaa.NewConfusionMatrix([]string{"a", "a"})
	require.ErrorIs(t, err, iaa.ErrDuplicateCategory)

	c := filledConfusion(t)
	_, err = c.Get("a", "z")
	require.ErrorIs(t, err, iaa.ErrUnknownCategory)
	require.ErrorIs(t, c.Add("z", "a", 1), iaa.ErrUnknownCategory)
	require.ErrorIs(t, c.Set("a", "a", math.Inf(1)), iaa.ErrInvalidWeight)
}

func TestConfusionMatrix_DerivedViewsDoNotMutate(t *testing.T) {
	t.Parallel()

	c := filledConfusion(t)
	before := c.Labeled().Dense().RawRows()

	ds, res, err := c.DoublyStochastic()
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Equal(t, []string{"a", "b"}, ds.Labels())
	for _, s := range ds.Dense().RowSums() {
		require.InDelta(t, 1.0, s, matrix.DefaultSinkhornTolerance)
	}

	v, err := c.Variation()
	require.NoError(t, err)
	ab, err := v.AtLabel("a", "b")
	require.NoError(t, err)
	require.InDelta(t, 1/(math.Sqrt(2)*2), ab, 1e-12)
	aa, _ := v.AtLabel("a", "a")
	require.Equal(t, 0.0, aa)

	require.Equal(t, before, c.Labeled().Dense().RawRows())
	require.Equal(t, 2.0, cell(t, c, "a", "a"))
}

func TestConfusionMatrix_CloneAndString(t *testing.T) {
	t.Parallel()

	c := filledConfusion(t)
	cp := c.Clone()
	require.NoError(t, cp.Add("a", "a", 100))
	require.Equal(t, 2.0, cell(t, c, "a", "a"))

	require.NoError(t, c.Set("b", "b", 1.0/3))
	require.Equal(t, "*, a, b\na, 2, 1\nb, 3, 0.333\n", c.String())
	require.Equal(t, []string{"a", "b"}, c.Categories())
}
