// SPDX-License-Identifier: MIT

package estimator

// Estimator is the common surface of the streaming estimators.
type Estimator interface {
	// Add appends one value and marks the estimate stale.
	Add(v float64)
	// AddAll appends every value of vs in order.
	AddAll(vs []float64)
	// Eval brings the cached estimate up to date. Reads call it implicitly.
	Eval()
	// Clear drops all values and cached state.
	Clear()
	// Value returns the primary estimate (mean for Averager, population
	// variance for Variance).
	Value() float64
	// Data returns a copy of the accumulated values in insertion order.
	Data() []float64
	// N returns the number of accumulated values.
	N() int
}

// series is the shared bookkeeping embedded by the concrete estimators.
type series struct {
	data  []float64
	dirty bool
}

func (s *series) push(v float64) {
	s.data = append(s.data, v)
	s.dirty = true
}

func (s *series) reset() {
	s.data = nil
	s.dirty = false
}

// Data returns a copy of the accumulated values.
func (s *series) Data() []float64 { return append([]float64(nil), s.data...) }

// N returns the number of accumulated values.
func (s *series) N() int { return len(s.data) }
