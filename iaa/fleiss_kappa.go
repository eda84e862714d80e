// SPDX-License-Identifier: MIT

package iaa

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/katalvlaran/iaa/estimator"
)

// WeightedFleissKappa generalises WeightedKappa to A >= 2 annotators.
//
// Observed agreement averages, over items, the ratio of Σ_pairs Σ_c p·r to
// Σ_pairs Σ_c ½(p² + r²) taken over unordered annotator pairs. Chance
// agreement averages Σ_c f_a1(c)·f_a2(c) of the per-annotator normalised
// weighted frequencies over the same unordered pairs. The confusion matrix
// instead sums outer products over ordered pairs of distinct annotators,
// divided by the number of ordered pairs, which makes it symmetric.
//
// Results are computed once, on first read, and cached.
type WeightedFleissKappa[K, L comparable] struct {
	ids        []string
	m          []*AnnotationMatrix[K, L]
	categories []L
	opts       Options

	once sync.Once
	res  fleissResult[L]
}

type fleissResult[L comparable] struct {
	agreement, kappa, pe float64
	confusion            *ConfusionMatrix[L]
	freq                 [][]float64 // [annotator][category] count of positive labels
	rawWeighted          [][]float64 // [annotator][category] Σ weights
	weighted             [][]float64 // rawWeighted normalised per annotator
	cofreq               []float64
	q                    []float64 // category distribution, Σq = 1
	cardinality          []float64
	density              []float64
}

// NewWeightedFleissKappa validates the input; no computation happens here.
// categories fixes the analysed label set; labels a matrix stores outside it
// are ignored.
//
// Errors:
//   - ErrTooFewAnnotators when data holds fewer than two annotators.
//   - ErrNilMatrix, ErrNoCategories, ErrDuplicateCategory.
func NewWeightedFleissKappa[K, L comparable](data map[string]*AnnotationMatrix[K, L], categories []L, opts ...Option) (*WeightedFleissKappa[K, L], error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("NewWeightedFleissKappa: got %d annotators: %w", len(data), ErrTooFewAnnotators)
	}
	if err := checkCategories(categories); err != nil {
		return nil, fmt.Errorf("NewWeightedFleissKappa: %w", err)
	}
	ids, err := sortedAnnotators(data)
	if err != nil {
		return nil, fmt.Errorf("NewWeightedFleissKappa: %w", err)
	}
	ms := make([]*AnnotationMatrix[K, L], len(ids))
	for i, id := range ids {
		ms[i] = data[id]
	}

	return &WeightedFleissKappa[K, L]{
		ids:        ids,
		m:          ms,
		categories: slices.Clone(categories),
		opts:       gatherOptions(opts...),
	}, nil
}

// Annotators returns the annotator ids in computation order.
func (f *WeightedFleissKappa[K, L]) Annotators() []string { return slices.Clone(f.ids) }

// Categories returns the analysed category order.
func (f *WeightedFleissKappa[K, L]) Categories() []L { return slices.Clone(f.categories) }

// Agreement returns the weighted observed agreement.
func (f *WeightedFleissKappa[K, L]) Agreement() float64 { return f.result().agreement }

// Kappa returns the chance-corrected agreement (NaN when pe is exactly 1).
func (f *WeightedFleissKappa[K, L]) Kappa() float64 { return f.result().kappa }

// ChanceAgreement returns pe.
func (f *WeightedFleissKappa[K, L]) ChanceAgreement() float64 { return f.result().pe }

// ConfusionMatrix returns the shared, cached symmetric confusion matrix.
// Clone it before mutating.
func (f *WeightedFleissKappa[K, L]) ConfusionMatrix() *ConfusionMatrix[L] {
	return f.result().confusion
}

// Freq returns, per category, the number of items annotator aid labelled
// with a positive weight.
func (f *WeightedFleissKappa[K, L]) Freq(aid string) (map[L]float64, error) {
	return f.perAnnotator(aid, func(r *fleissResult[L]) [][]float64 { return r.freq })
}

// RawWeightedFreq returns annotator aid's per-category weight totals.
func (f *WeightedFleissKappa[K, L]) RawWeightedFreq(aid string) (map[L]float64, error) {
	return f.perAnnotator(aid, func(r *fleissResult[L]) [][]float64 { return r.rawWeighted })
}

// WeightedFreq returns RawWeightedFreq(aid) normalised to sum to 1.
func (f *WeightedFleissKappa[K, L]) WeightedFreq(aid string) (map[L]float64, error) {
	return f.perAnnotator(aid, func(r *fleissResult[L]) [][]float64 { return r.weighted })
}

// AveragedFreq returns Freq averaged over annotators.
func (f *WeightedFleissKappa[K, L]) AveragedFreq() map[L]float64 {
	return copyFreq(f.categories, columnMean(f.result().freq))
}

// AveragedWeightedFreq returns WeightedFreq averaged over annotators.
func (f *WeightedFleissKappa[K, L]) AveragedWeightedFreq() map[L]float64 {
	return copyFreq(f.categories, columnMean(f.result().weighted))
}

// Cofreq returns, per category c, the number of items on which at least one
// annotator pair both put positive weight on c.
func (f *WeightedFleissKappa[K, L]) Cofreq() map[L]float64 {
	return copyFreq(f.categories, f.result().cofreq)
}

// CategoryDistribution returns the pooled weight of each category over all
// items and annotators, normalised to sum to 1.
func (f *WeightedFleissKappa[K, L]) CategoryDistribution() map[L]float64 {
	return copyFreq(f.categories, f.result().q)
}

// LabelCardinality summarises, across annotators, the average number of
// positive-weight categories per item.
func (f *WeightedFleissKappa[K, L]) LabelCardinality() *estimator.Variance {
	return estimator.NewVariance(f.result().cardinality...)
}

// LabelDensity summarises, across annotators, label cardinality divided by
// the number of categories.
func (f *WeightedFleissKappa[K, L]) LabelDensity() *estimator.Variance {
	return estimator.NewVariance(f.result().density...)
}

// LabelCardinalities returns the per-annotator label cardinality.
func (f *WeightedFleissKappa[K, L]) LabelCardinalities() map[string]float64 {
	return f.byAnnotator(f.result().cardinality)
}

// LabelDensities returns the per-annotator label density.
func (f *WeightedFleissKappa[K, L]) LabelDensities() map[string]float64 {
	return f.byAnnotator(f.result().density)
}

func (f *WeightedFleissKappa[K, L]) byAnnotator(v []float64) map[string]float64 {
	out := make(map[string]float64, len(f.ids))
	for i, id := range f.ids {
		out[id] = v[i]
	}

	return out
}

func (f *WeightedFleissKappa[K, L]) perAnnotator(aid string, pick func(*fleissResult[L]) [][]float64) (map[L]float64, error) {
	i, found := slices.BinarySearch(f.ids, aid)
	if !found {
		return nil, fmt.Errorf("WeightedFleissKappa: %q: %w", aid, ErrUnknownAnnotator)
	}

	return copyFreq(f.categories, pick(f.result())[i]), nil
}

func (f *WeightedFleissKappa[K, L]) result() *fleissResult[L] {
	f.once.Do(f.compute)
	return &f.res
}

func (f *WeightedFleissKappa[K, L]) compute() {
	log := f.opts.logger.With("annotators", f.ids)
	A, Q := len(f.ids), len(f.categories)
	items := f.m[0].items
	for _, m := range f.m[1:] {
		if m.NumItems() != len(items) {
			log.Warn("inconsistent data size", "n", len(items), "annotator", m.annotator, "got", m.NumItems())
		}
	}
	pairs := unorderedPairs(A)
	ordered := orderedPairs(A)

	res := &f.res
	res.confusion, _ = NewConfusionMatrix(f.categories)
	res.freq = grid(A, Q)
	res.rawWeighted = grid(A, Q)
	res.cofreq = make([]float64, Q)
	res.q = make([]float64, Q)
	res.cardinality = make([]float64, A)
	res.density = make([]float64, A)
	dists := grid(A, Q)
	co := make([]bool, Q)

	var ratioSum float64
	var a, c, l1, l2, numLabels int
	for _, k := range items {
		for a = 0; a < A; a++ {
			f.m[a].dist(k, f.categories, dists[a])
			numLabels = 0
			for c = 0; c < Q; c++ {
				score := dists[a][c]
				if score > 0 {
					numLabels++
					res.freq[a][c]++
				}
				res.q[c] += score
				res.rawWeighted[a][c] += score
			}
			res.cardinality[a] += float64(numLabels)
			res.density[a] += float64(numLabels) / float64(Q)
		}

		var agree, norm float64
		for c = 0; c < Q; c++ {
			co[c] = false
			for _, p := range pairs {
				s1, s2 := dists[p.a][c], dists[p.b][c]
				prod := s1 * s2
				agree += prod
				norm += 0.5 * (s1*s1 + s2*s2)
				if prod > 0 {
					co[c] = true
				}
			}
			if co[c] {
				res.cofreq[c]++
			}
		}
		ratioSum += guardedRatio(agree, norm)

		share := 1 / float64(len(ordered))
		for _, p := range ordered {
			for l1 = 0; l1 < Q; l1++ {
				if dists[p.a][l1] == 0 {
					continue
				}
				for l2 = 0; l2 < Q; l2++ {
					if dists[p.b][l2] != 0 {
						res.confusion.addAt(l1, l2, dists[p.a][l1]*dists[p.b][l2]*share)
					}
				}
			}
		}
	}

	N := float64(len(items))
	if N == 0 {
		log.Warn("no items to compare")
		res.weighted = grid(A, Q)
		return
	}
	for a = 0; a < A; a++ {
		res.cardinality[a] /= N
		res.density[a] /= N
	}

	var normQ float64
	for c = 0; c < Q; c++ {
		normQ += res.q[c]
	}
	if math.Abs(normQ-N*float64(Q)) > f.opts.normalizationTolerance {
		log.Warn("inconsistent normalization", "normQ", normQ, "NQ", N*float64(Q))
	}
	res.q = normalized(res.q)

	res.agreement = ratioSum / N

	res.weighted = make([][]float64, A)
	for a = 0; a < A; a++ {
		res.weighted[a] = normalized(res.rawWeighted[a])
	}
	for _, p := range pairs {
		for c = 0; c < Q; c++ {
			res.pe += res.weighted[p.a][c] * res.weighted[p.b][c]
		}
	}
	res.pe /= float64(len(pairs))
	res.kappa = kappa(res.agreement, res.pe, log)
}

func grid(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}

	return out
}

// columnMean averages rows of g element-wise.
func columnMean(g [][]float64) []float64 {
	if len(g) == 0 {
		return nil
	}
	out := make([]float64, len(g[0]))
	for _, row := range g {
		for j, v := range row {
			out[j] += v
		}
	}
	for j := range out {
		out[j] /= float64(len(g))
	}

	return out
}
