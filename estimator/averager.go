// SPDX-License-Identifier: MIT

package estimator

// Averager tracks the arithmetic mean of the added values.
type Averager struct {
	series
	sum, mean float64
}

var _ Estimator = (*Averager)(nil)

// NewAverager returns an Averager pre-loaded with data.
func NewAverager(data ...float64) *Averager {
	a := &Averager{}
	a.AddAll(data)

	return a
}

// Add appends x.
func (a *Averager) Add(x float64) {
	a.push(x)
	a.sum += x
}

// AddAll appends every value of xs.
func (a *Averager) AddAll(xs []float64) {
	for _, x := range xs {
		a.Add(x)
	}
}

// Eval recomputes the mean if stale.
func (a *Averager) Eval() {
	if !a.dirty {
		return
	}
	a.dirty = false
	if len(a.data) == 0 {
		a.mean = 0
		return
	}
	a.mean = a.sum / float64(len(a.data))
}

// Clear resets the averager.
func (a *Averager) Clear() {
	a.reset()
	a.sum, a.mean = 0, 0
}

// Value returns the mean.
func (a *Averager) Value() float64 {
	a.Eval()
	return a.mean
}
