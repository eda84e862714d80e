// SPDX-License-Identifier: MIT

package iaa_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/iaa/iaa"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

// threeAnnotatorFixture: items i1, i2 over {x, y}.
//
//	i1: A=x B=x C=y
//	i2: A=x B=y C=y
func threeAnnotatorFixture(t *testing.T) map[string]*iaa.AnnotationMatrix[string, string] {
	t.Helper()
	items := []string{"i1", "i2"}
	cats := []string{"x", "y"}

	return map[string]*iaa.AnnotationMatrix[string, string]{
		"A": MustMatrix(t, "A", items, cats, labels{"i1": {"x": 1}, "i2": {"x": 1}}),
		"B": MustMatrix(t, "B", items, cats, labels{"i1": {"x": 1}, "i2": {"y": 1}}),
		"C": MustMatrix(t, "C", items, cats, labels{"i1": {"y": 1}, "i2": {"y": 1}}),
	}
}

func TestWeightedFleissKappa_TwoAnnotatorsMatchesPairwise(t *testing.T) {
	t.Parallel()

	data := twoItemFixture(t)
	wk, err := iaa.NewWeightedKappa(data, quiet())
	require.NoError(t, err)
	fk, err := iaa.NewWeightedFleissKappa(data, []string{"x", "y"}, quiet())
	require.NoError(t, err)

	require.InDelta(t, wk.Agreement(), fk.Agreement(), 1e-12)
	require.InDelta(t, wk.ChanceAgreement(), fk.ChanceAgreement(), 1e-12)
	require.InDelta(t, wk.Kappa(), fk.Kappa(), 1e-12)

	// The Fleiss confusion matrix is the symmetrised pairwise one.
	pc, fc := wk.ConfusionMatrix(), fk.ConfusionMatrix()
	for _, r := range []string{"x", "y"} {
		for _, c := range []string{"x", "y"} {
			want := (cell(t, pc, r, c) + cell(t, pc, c, r)) / 2
			require.InDelta(t, want, cell(t, fc, r, c), 1e-12, "cell(%s,%s)", r, c)
		}
	}
	require.InDelta(t, pc.EntireSum(), fc.EntireSum(), 1e-12)
}

func TestWeightedFleissKappa_ThreeAnnotators(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fk, err := iaa.NewWeightedFleissKappa(threeAnnotatorFixture(t), []string{"x", "y"}, captured(&buf))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, fk.Annotators())

	require.InDelta(t, 1.0/3, fk.Agreement(), 1e-12)
	require.InDelta(t, 1.0/3, fk.ChanceAgreement(), 1e-12)
	require.InDelta(t, 0.0, fk.Kappa(), 1e-12)

	freqA, err := fk.Freq("A")
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"x": 2, "y": 0}, freqA)

	rawB, err := fk.RawWeightedFreq("B")
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"x": 1, "y": 1}, rawB)
	wB, err := fk.WeightedFreq("B")
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"x": 0.5, "y": 0.5}, wB)

	require.Empty(t, cmp.Diff(map[string]float64{"x": 1, "y": 1}, fk.AveragedFreq(), approx))
	require.Empty(t, cmp.Diff(map[string]float64{"x": 0.5, "y": 0.5}, fk.AveragedWeightedFreq(), approx))
	require.Equal(t, map[string]float64{"x": 1, "y": 1}, fk.Cofreq())
	require.Empty(t, cmp.Diff(map[string]float64{"x": 0.5, "y": 0.5}, fk.CategoryDistribution(), approx))

	// Σq = N·A = 6 while N·Q = 4.
	require.Contains(t, buf.String(), "inconsistent normalization")

	_, err = fk.Freq("Z")
	require.ErrorIs(t, err, iaa.ErrUnknownAnnotator)
}

func TestWeightedFleissKappa_ConfusionSymmetricAndPairOrder(t *testing.T) {
	t.Parallel()

	fk, err := iaa.NewWeightedFleissKappa(threeAnnotatorFixture(t), []string{"x", "y"}, quiet())
	require.NoError(t, err)

	cm := fk.ConfusionMatrix()
	require.Same(t, cm, fk.ConfusionMatrix())
	require.InDelta(t, cell(t, cm, "x", "y"), cell(t, cm, "y", "x"), 1e-12)
	require.InDelta(t, cm.EntireSum(), cm.DiagonalSum()+2*cm.NonDiagonalSum(), 1e-12)
	// Each item contributes one unit of mass spread over the ordered pairs.
	require.InDelta(t, 2.0, cm.EntireSum(), 1e-12)

	// Chance agreement over ordered pairs equals the unordered average.
	ids := fk.Annotators()
	wf := make(map[string]map[string]float64, len(ids))
	for _, id := range ids {
		wf[id], err = fk.WeightedFreq(id)
		require.NoError(t, err)
	}
	var pe float64
	var n int
	for _, a := range ids {
		for _, b := range ids {
			if a == b {
				continue
			}
			for _, c := range fk.Categories() {
				pe += wf[a][c] * wf[b][c]
			}
			n++
		}
	}
	require.InDelta(t, fk.ChanceAgreement(), pe/float64(n), 1e-12)
}

func TestWeightedFleissKappa_LabelCardinality(t *testing.T) {
	t.Parallel()

	items := []string{"i1", "i2", "i3"}
	cats := []string{"a", "b", "c", "d", "e"}
	data := map[string]*iaa.AnnotationMatrix[string, string]{
		"u": MustMatrix(t, "u", items, cats, labels{"i1": {"a": .5, "b": .5}, "i2": {"c": .5, "d": .5}, "i3": {"a": .5, "e": .5}}),
		"v": MustMatrix(t, "v", items, cats, labels{"i1": {"a": .5, "c": .5}, "i2": {"b": .5, "d": .5}, "i3": {"d": .5, "e": .5}}),
	}
	fk, err := iaa.NewWeightedFleissKappa(data, cats, quiet())
	require.NoError(t, err)

	card := fk.LabelCardinality()
	require.Equal(t, 2, card.N())
	require.InDelta(t, 2.0, card.Mean(), 1e-12)
	require.Equal(t, 0.0, card.UnbiasedDeviation())
	require.InDelta(t, 0.4, fk.LabelDensity().Mean(), 1e-12)
	require.Equal(t, map[string]float64{"u": 2, "v": 2}, fk.LabelCardinalities())
	require.Empty(t, cmp.Diff(map[string]float64{"u": 0.4, "v": 0.4}, fk.LabelDensities(), approx))
}

func TestWeightedFleissKappa_ConstructorErrors(t *testing.T) {
	t.Parallel()

	data := threeAnnotatorFixture(t)
	_, err := iaa.NewWeightedFleissKappa(map[string]*iaa.AnnotationMatrix[string, string]{"A": data["A"]}, []string{"x"})
	require.ErrorIs(t, err, iaa.ErrTooFewAnnotators)

	_, err = iaa.NewWeightedFleissKappa(data, nil)
	require.ErrorIs(t, err, iaa.ErrNoCategories)

	_, err = iaa.NewWeightedFleissKappa(data, []string{"x", "x"})
	require.ErrorIs(t, err, iaa.ErrDuplicateCategory)

	data["D"] = nil
	_, err = iaa.NewWeightedFleissKappa(data, []string{"x", "y"})
	require.ErrorIs(t, err, iaa.ErrNilMatrix)
}

func TestWeightedFleissKappa_Memoized(t *testing.T) {
	t.Parallel()

	fk, err := iaa.NewWeightedFleissKappa(threeAnnotatorFixture(t), []string{"x", "y"}, quiet())
	require.NoError(t, err)

	require.Same(t, fk.ConfusionMatrix(), fk.ConfusionMatrix())
	for _, aid := range fk.Annotators() {
		f1, err := fk.Freq(aid)
		require.NoError(t, err)
		f2, err := fk.Freq(aid)
		require.NoError(t, err)
		require.Equal(t, f1, f2)

		w1, err := fk.WeightedFreq(aid)
		require.NoError(t, err)
		w2, err := fk.WeightedFreq(aid)
		require.NoError(t, err)
		require.Equal(t, w1, w2)
	}
	require.Equal(t, fk.Kappa(), fk.Kappa())
	require.Equal(t, fk.Cofreq(), fk.Cofreq())

	// callers get copies; the cache stays intact
	f, err := fk.Freq("A")
	require.NoError(t, err)
	f["x"] = 99
	again, err := fk.Freq("A")
	require.NoError(t, err)
	require.Equal(t, 2.0, again["x"])
}
