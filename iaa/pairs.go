// SPDX-License-Identifier: MIT

package iaa

import (
	"fmt"
	"slices"
)

// pair is a pair of indices into a sorted annotator list.
type pair struct{ a, b int }

// unorderedPairs returns (i, j) with i < j, in lexicographic order.
func unorderedPairs(n int) []pair {
	out := make([]pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, pair{i, j})
		}
	}

	return out
}

// orderedPairs returns every (i, j) with i != j, in lexicographic order.
func orderedPairs(n int) []pair {
	out := make([]pair, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				out = append(out, pair{i, j})
			}
		}
	}

	return out
}

// sortedAnnotators validates data and returns its keys sorted, so that every
// computation visits annotators in the same order.
func sortedAnnotators[K, L comparable](data map[string]*AnnotationMatrix[K, L]) ([]string, error) {
	ids := make([]string, 0, len(data))
	for id, m := range data {
		if m == nil {
			return nil, fmt.Errorf("annotator %q: %w", id, ErrNilMatrix)
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids, nil
}

// checkCategories rejects empty or repeated categories.
func checkCategories[L comparable](categories []L) error {
	if len(categories) == 0 {
		return ErrNoCategories
	}
	seen := make(map[L]struct{}, len(categories))
	for _, c := range categories {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%v: %w", c, ErrDuplicateCategory)
		}
		seen[c] = struct{}{}
	}

	return nil
}

// copyFreq converts a category-ordered vector into a fresh map.
func copyFreq[L comparable](categories []L, v []float64) map[L]float64 {
	out := make(map[L]float64, len(categories))
	for i, c := range categories {
		out[c] = v[i]
	}

	return out
}
