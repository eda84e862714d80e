// SPDX-License-Identifier: MIT

package iaa

import (
	"fmt"
	"math"
)

// AnnotationMatrix holds one annotator's soft labels: for every item of a
// fixed item list, a sparse distribution of non-negative weights over a fixed
// category list. Per-item weights are expected (not required) to sum to 1.
//
// Populate it from a single goroutine, then treat it as read-only; concurrent
// reads are safe, concurrent writes are not.
type AnnotationMatrix[K, L comparable] struct {
	annotator  string
	items      []K
	categories []L
	catIndex   map[L]int
	rows       map[K]map[L]float64
}

// NewAnnotationMatrix allocates an empty row for every item.
//
// Errors:
//   - ErrNoCategories when categories is empty.
//   - ErrDuplicateCategory / ErrDuplicateItem on repeated entries.
func NewAnnotationMatrix[K, L comparable](annotator string, items []K, categories []L) (*AnnotationMatrix[K, L], error) {
	if err := checkCategories(categories); err != nil {
		return nil, fmt.Errorf("NewAnnotationMatrix(%s): %w", annotator, err)
	}
	catIndex := make(map[L]int, len(categories))
	for i, c := range categories {
		catIndex[c] = i
	}
	rows := make(map[K]map[L]float64, len(items))
	for _, k := range items {
		if _, dup := rows[k]; dup {
			return nil, fmt.Errorf("NewAnnotationMatrix(%s): %v: %w", annotator, k, ErrDuplicateItem)
		}
		rows[k] = make(map[L]float64)
	}

	return &AnnotationMatrix[K, L]{
		annotator:  annotator,
		items:      append([]K(nil), items...),
		categories: append([]L(nil), categories...),
		catIndex:   catIndex,
		rows:       rows,
	}, nil
}

// Annotator returns the owning annotator id.
func (m *AnnotationMatrix[K, L]) Annotator() string { return m.annotator }

// Items returns a copy of the item list in construction order.
func (m *AnnotationMatrix[K, L]) Items() []K { return append([]K(nil), m.items...) }

// Categories returns a copy of the category list in construction order.
func (m *AnnotationMatrix[K, L]) Categories() []L { return append([]L(nil), m.categories...) }

// NumItems returns the item count.
func (m *AnnotationMatrix[K, L]) NumItems() int { return len(m.items) }

// NumCategories returns the category count.
func (m *AnnotationMatrix[K, L]) NumCategories() int { return len(m.categories) }

// HasItem reports whether k is part of the item list.
func (m *AnnotationMatrix[K, L]) HasItem(k K) bool {
	_, ok := m.rows[k]
	return ok
}

// Add records weight w for (k, l). When a positive weight is already stored
// it is increased by w; otherwise (absent, or zero) w replaces it.
// It returns the stored value.
func (m *AnnotationMatrix[K, L]) Add(k K, l L, w float64) (float64, error) {
	row, ok := m.rows[k]
	if !ok {
		return 0, fmt.Errorf("AnnotationMatrix.Add(%v): %w", k, ErrUnknownItem)
	}
	if _, ok = m.catIndex[l]; !ok {
		return 0, fmt.Errorf("AnnotationMatrix.Add(%v): %w", l, ErrUnknownCategory)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, fmt.Errorf("AnnotationMatrix.Add(%v,%v,%g): %w", k, l, w, ErrInvalidWeight)
	}
	v := w
	if cur := row[l]; cur > 0 {
		v = cur + w
	}
	row[l] = v

	return v, nil
}

// CountUp adds a unit weight to (k, l).
func (m *AnnotationMatrix[K, L]) CountUp(k K, l L) (float64, error) {
	return m.Add(k, l, 1)
}

// Get returns the weight at (k, l), or 0 when nothing is stored there
// (including unknown items and categories).
func (m *AnnotationMatrix[K, L]) Get(k K, l L) float64 {
	return m.rows[k][l]
}

// Exists reports whether a weight, possibly zero, is stored at (k, l).
func (m *AnnotationMatrix[K, L]) Exists(k K, l L) bool {
	_, ok := m.rows[k][l]
	return ok
}

// Contains reports whether item k carries label l, i.e. a positive weight
// is stored at (k, l).
func (m *AnnotationMatrix[K, L]) Contains(k K, l L) bool {
	return m.rows[k][l] > 0
}

// Row returns a copy of item k's sparse distribution.
func (m *AnnotationMatrix[K, L]) Row(k K) (map[L]float64, bool) {
	row, ok := m.rows[k]
	if !ok {
		return nil, false
	}
	out := make(map[L]float64, len(row))
	for l, v := range row {
		out[l] = v
	}

	return out, true
}

// Rows returns copies of all rows in item order.
func (m *AnnotationMatrix[K, L]) Rows() []map[L]float64 {
	out := make([]map[L]float64, len(m.items))
	for i, k := range m.items {
		out[i], _ = m.Row(k)
	}

	return out
}

// RowSum returns Σ_l w(k, l).
func (m *AnnotationMatrix[K, L]) RowSum(k K) float64 {
	var s float64
	for _, c := range m.categories {
		s += m.rows[k][c]
	}

	return s
}

// CategoryFrequency returns, per category, the total weight over all items.
// Every category is present in the result.
func (m *AnnotationMatrix[K, L]) CategoryFrequency() map[L]float64 {
	out := make(map[L]float64, len(m.categories))
	for _, c := range m.categories {
		out[c] = 0
	}
	for _, k := range m.items {
		for l, v := range m.rows[k] {
			out[l] += v
		}
	}

	return out
}

// dist fills dst (len == len(categories)) with item k's weights in category order.
func (m *AnnotationMatrix[K, L]) dist(k K, categories []L, dst []float64) {
	row := m.rows[k]
	for i, c := range categories {
		dst[i] = row[c]
	}
}
