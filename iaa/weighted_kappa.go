// SPDX-License-Identifier: MIT

package iaa

import (
	"fmt"
	"math"
	"slices"
	"sync"
)

// WeightedKappa computes weighted agreement and Cohen's kappa between
// exactly two annotators over soft label distributions.
//
// For item k with distributions p (first annotator) and r (second):
//
//	a_k = Σ_l p_l·r_l,   n_k = Σ_l ½(p_l² + r_l²)
//	agreement = (1/N) Σ_k a_k/n_k          (a_k/n_k := 0 when n_k = 0)
//	pe        = Σ_l F1_l·F2_l / N²        (F = raw per-annotator frequency)
//	kappa     = (agreement − pe)/(1 − pe)
//
// Annotators are ordered by id; the first sorted id is the confusion matrix
// row annotator. Results are computed once, on first read, and cached.
type WeightedKappa[K, L comparable] struct {
	ids        [2]string
	m          [2]*AnnotationMatrix[K, L]
	categories []L
	opts       Options

	once sync.Once
	res  kappaResult[L]
}

type kappaResult[L comparable] struct {
	agreement, kappa, pe, overlap float64
	freq                          [2][]float64
	confusion                     *ConfusionMatrix[L]
	inconsistencies               int
}

// NewWeightedKappa validates the input; no computation happens here.
//
// Errors:
//   - ErrNotPair when data does not hold exactly two annotators.
//   - ErrNilMatrix for a nil matrix.
//   - ErrCategoryMismatch when the two category lists differ.
func NewWeightedKappa[K, L comparable](data map[string]*AnnotationMatrix[K, L], opts ...Option) (*WeightedKappa[K, L], error) {
	if len(data) != 2 {
		return nil, fmt.Errorf("NewWeightedKappa: got %d annotators: %w", len(data), ErrNotPair)
	}
	ids, err := sortedAnnotators(data)
	if err != nil {
		return nil, fmt.Errorf("NewWeightedKappa: %w", err)
	}
	m1, m2 := data[ids[0]], data[ids[1]]
	if !slices.Equal(m1.categories, m2.categories) {
		return nil, fmt.Errorf("NewWeightedKappa(%s,%s): %w", ids[0], ids[1], ErrCategoryMismatch)
	}

	return &WeightedKappa[K, L]{
		ids:        [2]string{ids[0], ids[1]},
		m:          [2]*AnnotationMatrix[K, L]{m1, m2},
		categories: m1.Categories(),
		opts:       gatherOptions(opts...),
	}, nil
}

// Annotators returns the two annotator ids in computation order.
func (w *WeightedKappa[K, L]) Annotators() []string { return []string{w.ids[0], w.ids[1]} }

// Categories returns the category order.
func (w *WeightedKappa[K, L]) Categories() []L { return append([]L(nil), w.categories...) }

// Agreement returns the weighted observed agreement.
func (w *WeightedKappa[K, L]) Agreement() float64 { return w.result().agreement }

// Kappa returns the chance-corrected agreement. NaN when the chance
// agreement is exactly 1.
func (w *WeightedKappa[K, L]) Kappa() float64 { return w.result().kappa }

// ChanceAgreement returns pe.
func (w *WeightedKappa[K, L]) ChanceAgreement() float64 { return w.result().pe }

// Overlap returns the unnormalised agreement (1/N) Σ_k a_k.
func (w *WeightedKappa[K, L]) Overlap() float64 { return w.result().overlap }

// Inconsistencies returns how many items tripped the cumulative drift check.
func (w *WeightedKappa[K, L]) Inconsistencies() int { return w.result().inconsistencies }

// ConfusionMatrix returns the accumulated outer products, rows indexed by the
// first annotator. The returned matrix is shared by every call; Clone it
// before mutating.
func (w *WeightedKappa[K, L]) ConfusionMatrix() *ConfusionMatrix[L] { return w.result().confusion }

// Freq returns the raw per-category weight totals of annotator aid.
func (w *WeightedKappa[K, L]) Freq(aid string) (map[L]float64, error) {
	i, err := w.slot(aid)
	if err != nil {
		return nil, err
	}

	return copyFreq(w.categories, w.result().freq[i]), nil
}

// NormalizedFreq returns Freq(aid) scaled to sum to 1 (all zeros when empty).
func (w *WeightedKappa[K, L]) NormalizedFreq(aid string) (map[L]float64, error) {
	i, err := w.slot(aid)
	if err != nil {
		return nil, err
	}

	return copyFreq(w.categories, normalized(w.result().freq[i])), nil
}

func (w *WeightedKappa[K, L]) slot(aid string) (int, error) {
	for i, id := range w.ids {
		if id == aid {
			return i, nil
		}
	}

	return 0, fmt.Errorf("WeightedKappa: %q: %w", aid, ErrUnknownAnnotator)
}

func (w *WeightedKappa[K, L]) result() *kappaResult[L] {
	w.once.Do(w.compute)
	return &w.res
}

func (w *WeightedKappa[K, L]) compute() {
	log := w.opts.logger.With("annotators", w.ids[:])
	m1, m2 := w.m[0], w.m[1]
	q := len(w.categories)
	items := m1.items
	if m1.NumItems() != m2.NumItems() {
		log.Warn("inconsistent data size", "n1", m1.NumItems(), "n2", m2.NumItems())
	}

	res := &w.res
	res.confusion, _ = NewConfusionMatrix(w.categories)
	res.freq = [2][]float64{make([]float64, q), make([]float64, q)}
	dist1 := make([]float64, q)
	dist2 := make([]float64, q)

	var ratioSum, overlap, n, total1, total2, offset1, offset2 float64
	var i, j int
	for _, k := range items {
		n++
		m1.dist(k, w.categories, dist1)
		m2.dist(k, w.categories, dist2)

		var a, norm, s1, s2 float64
		for i = 0; i < q; i++ {
			s1 += dist1[i]
			s2 += dist2[i]
			res.freq[0][i] += dist1[i]
			res.freq[1][i] += dist2[i]
			a += dist1[i] * dist2[i]
			norm += 0.5 * (dist1[i]*dist1[i] + dist2[i]*dist2[i])
		}
		total1 += s1
		total2 += s2

		if math.Abs(s1-1) > w.opts.sumTolerance || math.Abs(s2-1) > w.opts.sumTolerance {
			log.Warn("inconsistent labelling", "item", k, "sum1", s1, "sum2", s2)
		}
		if math.Abs(total1-n-offset1) >= w.opts.driftTolerance || math.Abs(total2-n-offset2) >= w.opts.driftTolerance {
			log.Warn("inconsistent frequency", "item", k, "drift1", total1-n-offset1, "drift2", total2-n-offset2)
			res.inconsistencies++
			offset1 = total1 - n
			offset2 = total2 - n
		}

		for i = 0; i < q; i++ {
			if dist1[i] == 0 {
				continue
			}
			for j = 0; j < q; j++ {
				if dist2[j] != 0 {
					res.confusion.addAt(i, j, dist1[i]*dist2[j])
				}
			}
		}

		ratioSum += guardedRatio(a, norm)
		overlap += a
	}
	if res.inconsistencies > 0 {
		log.Debug("drift summary", "inconsistent_items", res.inconsistencies)
	}

	N := float64(len(items))
	if N == 0 {
		log.Warn("no items to compare")
		return
	}
	res.agreement = ratioSum / N
	res.overlap = overlap / N
	for i = 0; i < q; i++ {
		res.pe += res.freq[0][i] * res.freq[1][i]
	}
	res.pe /= N * N
	res.kappa = kappa(res.agreement, res.pe, log)
}

// guardedRatio returns a/n, or 0 when n is zero or the ratio is NaN.
func guardedRatio(a, n float64) float64 {
	if n == 0 {
		return 0
	}
	r := a / n
	if math.IsNaN(r) {
		return 0
	}

	return r
}

// normalized returns v / Σv, or a zero vector when Σv is zero.
func normalized(v []float64) []float64 {
	out := make([]float64, len(v))
	var s float64
	for _, x := range v {
		s += x
	}
	if s == 0 {
		return out
	}
	for i, x := range v {
		out[i] = x / s
	}

	return out
}
