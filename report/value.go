// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/iaa/estimator"
	"github.com/katalvlaran/iaa/matrix"
)

var nan = math.NaN()

// Number is a float64 that encodes non-finite values as JSON null.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}

	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// round renders n with at most decimals fractional digits.
func round(n Number, decimals int) string {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	scale := math.Pow(10, float64(decimals))

	return strconv.FormatFloat(math.Round(f*scale)/scale, 'f', -1, 64)
}

// Estimate is a mean with its unbiased standard deviation.
type Estimate struct {
	Mean      Number `json:"mean" yaml:"mean"`
	Deviation Number `json:"deviation" yaml:"deviation"`
	N         int    `json:"n" yaml:"n"`
}

// EstimateOf summarises v.
func EstimateOf(v *estimator.Variance) Estimate {
	return Estimate{Mean: Number(v.Mean()), Deviation: Number(v.UnbiasedDeviation()), N: v.N()}
}

func (e Estimate) format(decimals int) string {
	return round(e.Mean, decimals) + " ± " + round(e.Deviation, decimals)
}

// Series is one value per category, in category order.
type Series struct {
	Name   string   `json:"name" yaml:"name"`
	Values []Number `json:"values" yaml:"values"`
}

func seriesOf[L comparable](name string, categories []L, m map[L]float64) Series {
	s := Series{Name: name, Values: make([]Number, len(categories))}
	for i, c := range categories {
		s.Values[i] = Number(m[c])
	}

	return s
}

// Table is a square labelled matrix.
type Table struct {
	Name   string     `json:"name" yaml:"name"`
	Labels []string   `json:"labels" yaml:"labels"`
	Rows   [][]Number `json:"rows" yaml:"rows"`
}

// TableOf copies l into a Table, formatting labels with %v.
func TableOf[L comparable](name string, l *matrix.Labeled[L]) Table {
	t := Table{Name: name, Labels: labelStrings(l.Labels()), Rows: make([][]Number, l.Len())}
	for i, row := range l.Dense().RawRows() {
		t.Rows[i] = make([]Number, len(row))
		for j, v := range row {
			t.Rows[i][j] = Number(v)
		}
	}

	return t
}

func labelStrings[L comparable](ls []L) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = fmt.Sprint(l)
	}

	return out
}
