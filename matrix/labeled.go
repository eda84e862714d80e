// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
)

// Labeled binds an ordered, duplicate-free label list to a square *Dense, so
// cells can be addressed by label as well as by position. Row i and column i
// both refer to Labels()[i].
type Labeled[L comparable] struct {
	labels []L
	index  map[L]int
	m      *Dense
}

// NewLabeled allocates a zero len(labels)×len(labels) matrix.
//
// Errors:
//   - ErrInvalidDimensions when labels is empty.
//   - ErrDuplicateLabel when a label repeats.
func NewLabeled[L comparable](labels []L) (*Labeled[L], error) {
	if len(labels) == 0 {
		return nil, matrixErrorf("NewLabeled", ErrInvalidDimensions)
	}
	idx := make(map[L]int, len(labels))
	for i, l := range labels {
		if _, dup := idx[l]; dup {
			return nil, fmt.Errorf("NewLabeled(%v): %w", l, ErrDuplicateLabel)
		}
		idx[l] = i
	}
	m, err := NewDense(len(labels), len(labels))
	if err != nil {
		return nil, matrixErrorf("NewLabeled", err)
	}

	return &Labeled[L]{labels: append([]L(nil), labels...), index: idx, m: m}, nil
}

// WithMatrix returns a new Labeled sharing l's labels over a copy of m.
// m must be square with the same order as the label list.
func (l *Labeled[L]) WithMatrix(m Matrix) (*Labeled[L], error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("Labeled.WithMatrix", err)
	}
	if m.Rows() != len(l.labels) {
		return nil, matrixErrorf("Labeled.WithMatrix", ErrDimensionMismatch)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf("Labeled.WithMatrix", err)
	}

	return &Labeled[L]{labels: l.labels, index: l.index, m: d}, nil
}

// Labels returns a copy of the label order.
func (l *Labeled[L]) Labels() []L { return append([]L(nil), l.labels...) }

// Len returns the number of labels (the matrix order).
func (l *Labeled[L]) Len() int { return len(l.labels) }

// Index returns the position of label, or false when it is unknown.
func (l *Labeled[L]) Index(label L) (int, bool) {
	i, ok := l.index[label]
	return i, ok
}

// Dense exposes the backing matrix. Callers that mutate it bypass label checks.
func (l *Labeled[L]) Dense() *Dense { return l.m }

// Clone returns an independent deep copy.
func (l *Labeled[L]) Clone() *Labeled[L] {
	return &Labeled[L]{labels: l.labels, index: l.index, m: l.m.clone()}
}

func (l *Labeled[L]) cell(tag string, row, col L) (int, int, error) {
	i, ok := l.index[row]
	if !ok {
		return 0, 0, fmt.Errorf("Labeled.%s(%v): %w", tag, row, ErrUnknownLabel)
	}
	j, ok := l.index[col]
	if !ok {
		return 0, 0, fmt.Errorf("Labeled.%s(%v): %w", tag, col, ErrUnknownLabel)
	}

	return i, j, nil
}

// AtLabel returns the value at (row, col).
func (l *Labeled[L]) AtLabel(row, col L) (float64, error) {
	i, j, err := l.cell("AtLabel", row, col)
	if err != nil {
		return 0, err
	}

	return l.m.At(i, j)
}

// SetLabel stores v at (row, col).
func (l *Labeled[L]) SetLabel(row, col L, v float64) error {
	i, j, err := l.cell("SetLabel", row, col)
	if err != nil {
		return err
	}

	return l.m.Set(i, j, v)
}

// AddLabel accumulates v into (row, col).
func (l *Labeled[L]) AddLabel(row, col L, v float64) error {
	i, j, err := l.cell("AddLabel", row, col)
	if err != nil {
		return err
	}

	return l.m.Add(i, j, v)
}

// String renders the matrix with a label header, one row per label.
func (l *Labeled[L]) String() string {
	return fmt.Sprintf("%v\n%s", l.labels, l.m.String())
}
