// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"
	"math"
)

// Variance accumulates Σx and Σx² and derives the first two moments.
//
// The zero value is ready to use.
type Variance struct {
	series
	sum, squared float64
	mean, value  float64
}

var _ Estimator = (*Variance)(nil)

// NewVariance returns a Variance pre-loaded with data.
func NewVariance(data ...float64) *Variance {
	v := &Variance{}
	v.AddAll(data)

	return v
}

// Add appends x.
func (v *Variance) Add(x float64) {
	v.push(x)
	v.sum += x
	v.squared += x * x
}

// AddAll appends every value of xs.
func (v *Variance) AddAll(xs []float64) {
	for _, x := range xs {
		v.Add(x)
	}
}

// Eval recomputes the mean and population variance if values were added
// since the last evaluation.
func (v *Variance) Eval() {
	if !v.dirty {
		return
	}
	v.dirty = false
	n := float64(len(v.data))
	if n == 0 {
		v.mean, v.value = 0, 0
		return
	}
	v.mean = v.sum / n
	v.value = v.squared/n - v.mean*v.mean
}

// Clear resets the estimator to its zero state.
func (v *Variance) Clear() {
	v.reset()
	v.sum, v.squared = 0, 0
	v.mean, v.value = 0, 0
}

// Value returns the population variance.
func (v *Variance) Value() float64 { return v.Variance() }

// Mean returns the arithmetic mean.
func (v *Variance) Mean() float64 {
	v.Eval()
	return v.mean
}

// Variance returns the population variance mean(x²) − mean(x)².
func (v *Variance) Variance() float64 {
	v.Eval()
	return v.value
}

// UnbiasedVariance returns n/(n−1) times the population variance, or 0 when n <= 1.
func (v *Variance) UnbiasedVariance() float64 {
	n := len(v.data)
	if n <= 1 {
		return 0
	}

	return float64(n) / float64(n-1) * v.Variance()
}

// UnbiasedDeviation returns the square root of UnbiasedVariance, or 0 when n <= 1.
// Rounding can push a constant series slightly below zero; that clamps to 0.
func (v *Variance) UnbiasedDeviation() float64 {
	uv := v.UnbiasedVariance()
	if uv <= 0 {
		return 0
	}

	return math.Sqrt(uv)
}

// String renders "mean ± unbiased deviation" with three decimals.
func (v *Variance) String() string {
	return fmt.Sprintf("%.3f ± %.3f", v.Mean(), v.UnbiasedDeviation())
}
