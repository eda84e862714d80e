// SPDX-License-Identifier: MIT

package iaa

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/katalvlaran/iaa/matrix"
)

// ConfusionMatrix is a square category×category accumulator. Cell (a, b)
// collects the weighted co-occurrence of label a from one distribution with
// label b from another.
//
// The three sums are memoised; any mutation invalidates them.
type ConfusionMatrix[L comparable] struct {
	mu     sync.Mutex
	cells  *matrix.Labeled[L]
	cached bool
	diag   float64
	entire float64
}

// NewConfusionMatrix returns a zero matrix over categories.
func NewConfusionMatrix[L comparable](categories []L) (*ConfusionMatrix[L], error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	cells, err := matrix.NewLabeled(categories)
	if err != nil {
		if errors.Is(err, matrix.ErrDuplicateLabel) {
			return nil, fmt.Errorf("NewConfusionMatrix: %w", ErrDuplicateCategory)
		}
		return nil, err
	}

	return &ConfusionMatrix[L]{cells: cells}, nil
}

// Categories returns the row/column label order.
func (c *ConfusionMatrix[L]) Categories() []L { return c.cells.Labels() }

// Get returns cell (r, col).
func (c *ConfusionMatrix[L]) Get(r, col L) (float64, error) {
	v, err := c.cells.AtLabel(r, col)
	if errors.Is(err, matrix.ErrUnknownLabel) {
		return 0, fmt.Errorf("ConfusionMatrix.Get: %w", ErrUnknownCategory)
	}

	return v, err
}

// Add accumulates v into cell (r, col).
func (c *ConfusionMatrix[L]) Add(r, col L, v float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = false
	if err := c.cells.AddLabel(r, col, v); err != nil {
		return c.labelErr("Add", err)
	}

	return nil
}

// Set overwrites cell (r, col).
func (c *ConfusionMatrix[L]) Set(r, col L, v float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = false
	if err := c.cells.SetLabel(r, col, v); err != nil {
		return c.labelErr("Set", err)
	}

	return nil
}

func (c *ConfusionMatrix[L]) labelErr(tag string, err error) error {
	if errors.Is(err, matrix.ErrUnknownLabel) {
		return fmt.Errorf("ConfusionMatrix.%s: %w", tag, ErrUnknownCategory)
	}
	if errors.Is(err, matrix.ErrNaNInf) {
		return fmt.Errorf("ConfusionMatrix.%s: %w", tag, ErrInvalidWeight)
	}

	return err
}

// addAt accumulates by position; indices come from the calculator's own
// category order, so they are always in range.
func (c *ConfusionMatrix[L]) addAt(i, j int, v float64) {
	c.cached = false
	_ = c.cells.Dense().Add(i, j, v)
}

func (c *ConfusionMatrix[L]) sums() (diag, entire float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cached {
		d := c.cells.Dense()
		c.diag, _ = d.Trace()
		c.entire = 0
		for _, s := range d.RowSums() {
			c.entire += s
		}
		c.cached = true
	}

	return c.diag, c.entire
}

// DiagonalSum returns Σ_c cell(c, c).
func (c *ConfusionMatrix[L]) DiagonalSum() float64 {
	d, _ := c.sums()
	return d
}

// EntireSum returns the sum of every cell.
func (c *ConfusionMatrix[L]) EntireSum() float64 {
	_, e := c.sums()
	return e
}

// NonDiagonalSum returns (EntireSum − DiagonalSum)/2, i.e. each unordered
// off-diagonal pair counted once for a matrix accumulated over both orderings.
func (c *ConfusionMatrix[L]) NonDiagonalSum() float64 {
	d, e := c.sums()
	return (e - d) / 2
}

// Labeled returns an independent labelled snapshot of the cells.
func (c *ConfusionMatrix[L]) Labeled() *matrix.Labeled[L] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cells.Clone()
}

// Clone returns an independent copy.
func (c *ConfusionMatrix[L]) Clone() *ConfusionMatrix[L] {
	return &ConfusionMatrix[L]{cells: c.Labeled()}
}

// DoublyStochastic returns the Sinkhorn-balanced view of a snapshot.
// The confusion matrix itself is not modified.
func (c *ConfusionMatrix[L]) DoublyStochastic(opts ...matrix.Option) (*matrix.Labeled[L], matrix.SinkhornResult, error) {
	snap := c.Labeled()
	ds, res, err := matrix.DoublyStochastic(snap.Dense(), opts...)
	if err != nil {
		return nil, res, err
	}
	out, err := snap.WithMatrix(ds)

	return out, res, err
}

// Variation returns the diagonal-scaled view of a snapshot.
// The confusion matrix itself is not modified.
func (c *ConfusionMatrix[L]) Variation(opts ...matrix.Option) (*matrix.Labeled[L], error) {
	snap := c.Labeled()
	v, err := matrix.Variation(snap.Dense(), opts...)
	if err != nil {
		return nil, err
	}

	return snap.WithMatrix(v)
}

// String renders a comma separated table with a header row, values rounded
// to three decimals.
func (c *ConfusionMatrix[L]) String() string {
	return FormatLabeled(c.Labeled(), 3)
}

// FormatLabeled renders l as "*, a, b\na, v, v\n..." with values rounded to
// the given number of decimals.
func FormatLabeled[L comparable](l *matrix.Labeled[L], decimals int) string {
	var b strings.Builder
	labels := l.Labels()
	b.WriteString("*")
	for _, lb := range labels {
		fmt.Fprintf(&b, ", %v", lb)
	}
	scale := math.Pow(10, float64(decimals))
	l.Dense().Do(func(i, j int, v float64) bool {
		if j == 0 {
			fmt.Fprintf(&b, "\n%v", labels[i])
		}
		b.WriteString(", ")
		b.WriteString(strconv.FormatFloat(math.Round(v*scale)/scale, 'f', -1, 64))
		return true
	})
	b.WriteString("\n")

	return b.String()
}
