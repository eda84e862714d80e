// SPDX-License-Identifier: MIT

package iaa

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/iaa/estimator"
)

// PairTable holds one WeightedKappa per unordered pair of a chosen set of
// annotators.
type PairTable[K, L comparable] struct {
	ids   []string
	pairs map[[2]string]*WeightedKappa[K, L]
}

// AllPairs builds and evaluates a WeightedKappa for every unordered pair of
// annotators (all of data when annotators is empty). Each pair owns its own
// calculator, so pairs are evaluated concurrently, bounded by WithWorkers.
//
// Errors:
//   - ErrTooFewAnnotators when fewer than two annotators are selected.
//   - ErrUnknownAnnotator when a requested id is not in data.
//   - any NewWeightedKappa error for a pair.
func AllPairs[K, L comparable](data map[string]*AnnotationMatrix[K, L], annotators []string, opts ...Option) (*PairTable[K, L], error) {
	ids := slices.Clone(annotators)
	if len(ids) == 0 {
		for id := range data {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)
	for _, id := range ids {
		if _, ok := data[id]; !ok {
			return nil, fmt.Errorf("AllPairs: %q: %w", id, ErrUnknownAnnotator)
		}
	}
	if len(ids) < 2 {
		return nil, fmt.Errorf("AllPairs: %w", ErrTooFewAnnotators)
	}
	o := gatherOptions(opts...)

	t := &PairTable[K, L]{ids: ids, pairs: make(map[[2]string]*WeightedKappa[K, L])}
	var mu sync.Mutex
	var g errgroup.Group
	if o.workers > 0 {
		g.SetLimit(o.workers)
	}
	for _, p := range unorderedPairs(len(ids)) {
		a, b := ids[p.a], ids[p.b]
		g.Go(func() error {
			wk, err := NewWeightedKappa(map[string]*AnnotationMatrix[K, L]{a: data[a], b: data[b]}, opts...)
			if err != nil {
				return err
			}
			wk.result()
			mu.Lock()
			t.pairs[[2]string{a, b}] = wk
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("AllPairs: %w", err)
	}

	return t, nil
}

// Annotators returns the sorted annotator ids of the table.
func (t *PairTable[K, L]) Annotators() []string { return slices.Clone(t.ids) }

// Pair returns the calculator for (a, b) in either order.
func (t *PairTable[K, L]) Pair(a, b string) (*WeightedKappa[K, L], error) {
	if a > b {
		a, b = b, a
	}
	wk, ok := t.pairs[[2]string{a, b}]
	if !ok {
		return nil, fmt.Errorf("PairTable.Pair(%s,%s): %w", a, b, ErrUnknownAnnotator)
	}

	return wk, nil
}

// Agreement returns the pairwise agreement of (a, b).
func (t *PairTable[K, L]) Agreement(a, b string) (float64, error) {
	wk, err := t.Pair(a, b)
	if err != nil {
		return 0, err
	}

	return wk.Agreement(), nil
}

// Kappa returns the pairwise kappa of (a, b).
func (t *PairTable[K, L]) Kappa(a, b string) (float64, error) {
	wk, err := t.Pair(a, b)
	if err != nil {
		return 0, err
	}

	return wk.Kappa(), nil
}

// Agreements summarises all pairwise agreements.
func (t *PairTable[K, L]) Agreements() *estimator.Variance {
	return t.collect(func(wk *WeightedKappa[K, L]) float64 { return wk.Agreement() })
}

// Kappas summarises all pairwise kappas.
func (t *PairTable[K, L]) Kappas() *estimator.Variance {
	return t.collect(func(wk *WeightedKappa[K, L]) float64 { return wk.Kappa() })
}

func (t *PairTable[K, L]) collect(pick func(*WeightedKappa[K, L]) float64) *estimator.Variance {
	v := estimator.NewVariance()
	for _, p := range unorderedPairs(len(t.ids)) {
		v.Add(pick(t.pairs[[2]string{t.ids[p.a], t.ids[p.b]}]))
	}

	return v
}
