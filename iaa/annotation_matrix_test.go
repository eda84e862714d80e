// SPDX-License-Identifier: MIT

package iaa_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/iaa/iaa"
	"github.com/stretchr/testify/require"
)

func TestNewAnnotationMatrix_Validation(t *testing.T) {
	t.Parallel()

	_, err := iaa.NewAnnotationMatrix[string, string]("a", []string{"i"}, nil)
	require.ErrorIs(t, err, iaa.ErrNoCategories)

	_, err = iaa.NewAnnotationMatrix("a", []string{"i"}, []string{"x", "y", "x"})
	require.ErrorIs(t, err, iaa.ErrDuplicateCategory)
	require.ErrorContains(t, err, "NewAnnotationMatrix(a): x:")

	_, err = iaa.NewAnnotationMatrix("a", []string{"i", "i"}, []string{"x"})
	require.ErrorIs(t, err, iaa.ErrDuplicateItem)

	m, err := iaa.NewAnnotationMatrix("a", []int{1, 2, 3}, []string{"x", "y"})
	require.NoError(t, err)
	require.Equal(t, "a", m.Annotator())
	require.Equal(t, 3, m.NumItems())
	require.Equal(t, 2, m.NumCategories())
	require.Equal(t, []int{1, 2, 3}, m.Items())
	require.True(t, m.HasItem(2))
	require.False(t, m.HasItem(4))
}

func TestAnnotationMatrix_AddSemantics(t *testing.T) {
	t.Parallel()

	m, err := iaa.NewAnnotationMatrix("a", []string{"k"}, []string{"x", "y"})
	require.NoError(t, err)

	v, err := m.Add("k", "x", 0.5)
	require.NoError(t, err)
	require.Equal(t, 0.5, v)
	v, _ = m.Add("k", "x", 0.25)
	require.Equal(t, 0.75, v, "positive value accumulates")

	// A stored zero is present but not a label, and is replaced on the next add.
	v, _ = m.Add("k", "y", 0)
	require.Equal(t, 0.0, v)
	require.True(t, m.Exists("k", "y"))
	require.False(t, m.Contains("k", "y"))
	v, _ = m.Add("k", "y", 0.3)
	require.Equal(t, 0.3, v)
	require.True(t, m.Contains("k", "y"))

	v, err = m.CountUp("k", "y")
	require.NoError(t, err)
	require.InDelta(t, 1.3, v, 1e-12)

	require.InDelta(t, 2.05, m.RowSum("k"), 1e-12)
}

func TestAnnotationMatrix_AddErrors(t *testing.T) {
	t.Parallel()

	m, err := iaa.NewAnnotationMatrix("a", []string{"k"}, []string{"x"})
	require.NoError(t, err)

	_, err = m.Add("nope", "x", 1)
	require.ErrorIs(t, err, iaa.ErrUnknownItem)
	_, err = m.Add("k", "z", 1)
	require.ErrorIs(t, err, iaa.ErrUnknownCategory)
	_, err = m.Add("k", "x", -1)
	require.ErrorIs(t, err, iaa.ErrInvalidWeight)
	_, err = m.Add("k", "x", math.NaN())
	require.ErrorIs(t, err, iaa.ErrInvalidWeight)
	require.False(t, m.Exists("k", "x"), "rejected adds leave no trace")
}

func TestAnnotationMatrix_Reads(t *testing.T) {
	t.Parallel()

	items := []string{"k1", "k2"}
	m := MustMatrix(t, "a", items, []string{"x", "y"}, labels{
		"k1": {"x": 0.5, "y": 0.5},
		"k2": {"y": 1},
	})

	require.Equal(t, 0.0, m.Get("k2", "x"))
	require.Equal(t, 0.0, m.Get("missing", "x"))
	require.False(t, m.Exists("missing", "x"))

	row, ok := m.Row("k1")
	require.True(t, ok)
	require.Equal(t, map[string]float64{"x": 0.5, "y": 0.5}, row)
	row["x"] = 9
	require.Equal(t, 0.5, m.Get("k1", "x"), "Row returns a copy")

	_, ok = m.Row("missing")
	require.False(t, ok)

	rows := m.Rows()
	require.Len(t, rows, 2)
	require.Equal(t, map[string]float64{"y": 1}, rows[1])

	require.Equal(t, map[string]float64{"x": 0.5, "y": 1.5}, m.CategoryFrequency())
}
