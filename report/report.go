// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/iaa/dataset"
	"github.com/katalvlaran/iaa/iaa"
	"github.com/katalvlaran/iaa/matrix"
)

// Report is implemented by every document of this package.
type Report interface {
	// ID returns the run identifier.
	ID() string
	// Tables returns the matrices worth drawing as heat maps.
	Tables() []Table

	render(p *printer)
}

// Header is shared by all reports.
type Header struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	Created    time.Time `json:"created" yaml:"created"`
	Kind       string    `json:"kind" yaml:"kind"`
	Annotators []string  `json:"annotators" yaml:"annotators"`
	Categories []string  `json:"categories" yaml:"categories"`
}

func newHeader(kind string, annotators, categories []string) Header {
	return Header{
		RunID:      uuid.NewString(),
		Created:    time.Now().UTC().Truncate(time.Second),
		Kind:       kind,
		Annotators: annotators,
		Categories: categories,
	}
}

// ID implements Report.
func (h Header) ID() string { return h.RunID }

// PairReport describes a two-annotator weighted kappa.
type PairReport struct {
	Header          `yaml:",inline"`
	Agreement       Number   `json:"agreement" yaml:"agreement"`
	Kappa           Number   `json:"kappa" yaml:"kappa"`
	ChanceAgreement Number   `json:"chance_agreement" yaml:"chance_agreement"`
	Overlap         Number   `json:"overlap" yaml:"overlap"`
	Inconsistencies int      `json:"inconsistencies" yaml:"inconsistencies"`
	Frequencies     []Series `json:"frequencies" yaml:"frequencies"`
	Confusion       Table    `json:"confusion" yaml:"confusion"`
}

// NewPairReport evaluates k and captures its results.
func NewPairReport[K, L comparable](k *iaa.WeightedKappa[K, L]) (*PairReport, error) {
	cats := k.Categories()
	r := &PairReport{
		Header:          newHeader("pair", k.Annotators(), labelStrings(cats)),
		Agreement:       Number(k.Agreement()),
		Kappa:           Number(k.Kappa()),
		ChanceAgreement: Number(k.ChanceAgreement()),
		Overlap:         Number(k.Overlap()),
		Inconsistencies: k.Inconsistencies(),
		Confusion:       TableOf("confusion", k.ConfusionMatrix().Labeled()),
	}
	for _, aid := range k.Annotators() {
		f, err := k.Freq(aid)
		if err != nil {
			return nil, fmt.Errorf("NewPairReport: %w", err)
		}
		r.Frequencies = append(r.Frequencies, seriesOf(aid, cats, f))
	}

	return r, nil
}

// Tables implements Report.
func (r *PairReport) Tables() []Table { return []Table{r.Confusion} }

// PairScore is one cell of an all-pairs table.
type PairScore struct {
	A         string `json:"a" yaml:"a"`
	B         string `json:"b" yaml:"b"`
	Agreement Number `json:"agreement" yaml:"agreement"`
	Kappa     Number `json:"kappa" yaml:"kappa"`
}

// AllPairsReport describes every pairwise kappa of a group.
type AllPairsReport struct {
	Header     `yaml:",inline"`
	Pairs      []PairScore `json:"pairs" yaml:"pairs"`
	Agreements Estimate    `json:"agreements" yaml:"agreements"`
	Kappas     Estimate    `json:"kappas" yaml:"kappas"`
}

// NewAllPairsReport captures t. Pairs are listed in row-major upper
// triangle order.
func NewAllPairsReport[K, L comparable](t *iaa.PairTable[K, L], categories []L) (*AllPairsReport, error) {
	ids := t.Annotators()
	r := &AllPairsReport{
		Header:     newHeader("all-pairs", ids, labelStrings(categories)),
		Agreements: EstimateOf(t.Agreements()),
		Kappas:     EstimateOf(t.Kappas()),
	}
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			wk, err := t.Pair(a, b)
			if err != nil {
				return nil, fmt.Errorf("NewAllPairsReport: %w", err)
			}
			r.Pairs = append(r.Pairs, PairScore{A: a, B: b, Agreement: Number(wk.Agreement()), Kappa: Number(wk.Kappa())})
		}
	}

	return r, nil
}

// Tables implements Report. The tables hold the upper triangle; other cells
// are NaN.
func (r *AllPairsReport) Tables() []Table {
	return []Table{r.triangle("agreement", func(s PairScore) Number { return s.Agreement }),
		r.triangle("kappa", func(s PairScore) Number { return s.Kappa })}
}

func (r *AllPairsReport) triangle(name string, pick func(PairScore) Number) Table {
	idx := make(map[string]int, len(r.Annotators))
	for i, a := range r.Annotators {
		idx[a] = i
	}
	t := Table{Name: name, Labels: r.Annotators, Rows: make([][]Number, len(r.Annotators))}
	for i := range t.Rows {
		t.Rows[i] = make([]Number, len(r.Annotators))
		for j := range t.Rows[i] {
			t.Rows[i][j] = Number(nan)
		}
	}
	for _, s := range r.Pairs {
		t.Rows[idx[s.A]][idx[s.B]] = pick(s)
	}

	return t
}

// Sinkhorn records how the doubly stochastic table was obtained.
type Sinkhorn struct {
	Iterations int    `json:"iterations" yaml:"iterations"`
	Error      Number `json:"error" yaml:"error"`
	Converged  bool   `json:"converged" yaml:"converged"`
}

// MultiReport describes a weighted Fleiss kappa over many annotators.
type MultiReport struct {
	Header               `yaml:",inline"`
	Sessions             []dataset.SessionStat `json:"sessions,omitempty" yaml:"sessions,omitempty"`
	Agreement            Number                `json:"agreement" yaml:"agreement"`
	Kappa                Number                `json:"kappa" yaml:"kappa"`
	ChanceAgreement      Number                `json:"chance_agreement" yaml:"chance_agreement"`
	LabelCardinality     Estimate              `json:"label_cardinality" yaml:"label_cardinality"`
	LabelDensity         Estimate              `json:"label_density" yaml:"label_density"`
	Frequencies          []Series              `json:"frequencies" yaml:"frequencies"`
	WeightedFrequencies  []Series              `json:"weighted_frequencies" yaml:"weighted_frequencies"`
	AveragedFreq         Series                `json:"averaged_freq" yaml:"averaged_freq"`
	AveragedWeightedFreq Series                `json:"averaged_weighted_freq" yaml:"averaged_weighted_freq"`
	Cofreq               Series                `json:"cofreq" yaml:"cofreq"`
	Distribution         Series                `json:"distribution" yaml:"distribution"`
	Confusion            Table                 `json:"confusion" yaml:"confusion"`
	DiagonalRate         Number                `json:"diagonal_rate" yaml:"diagonal_rate"`
	NonDiagonalRate      Number                `json:"non_diagonal_rate" yaml:"non_diagonal_rate"`
	DoublyStochastic     Table                 `json:"doubly_stochastic" yaml:"doubly_stochastic"`
	Sinkhorn             Sinkhorn              `json:"sinkhorn" yaml:"sinkhorn"`
	Variation            Table                 `json:"variation" yaml:"variation"`
}

// NewMultiReport evaluates f, normalises its confusion matrix with opts and
// captures the results. sessions may be nil.
func NewMultiReport[K, L comparable](f *iaa.WeightedFleissKappa[K, L], sessions []dataset.SessionStat, opts ...matrix.Option) (*MultiReport, error) {
	cats := f.Categories()
	cm := f.ConfusionMatrix()
	r := &MultiReport{
		Header:               newHeader("multi", f.Annotators(), labelStrings(cats)),
		Sessions:             sessions,
		Agreement:            Number(f.Agreement()),
		Kappa:                Number(f.Kappa()),
		ChanceAgreement:      Number(f.ChanceAgreement()),
		LabelCardinality:     EstimateOf(f.LabelCardinality()),
		LabelDensity:         EstimateOf(f.LabelDensity()),
		AveragedFreq:         seriesOf("averaged", cats, f.AveragedFreq()),
		AveragedWeightedFreq: seriesOf("averaged weighted", cats, f.AveragedWeightedFreq()),
		Cofreq:               seriesOf("cofreq", cats, f.Cofreq()),
		Distribution:         seriesOf("distribution", cats, f.CategoryDistribution()),
		Confusion:            TableOf("confusion", cm.Labeled()),
	}
	if e := cm.EntireSum(); e != 0 {
		r.DiagonalRate = Number(cm.DiagonalSum() / e)
		r.NonDiagonalRate = Number(cm.NonDiagonalSum() / e)
	}
	for _, aid := range r.Annotators {
		fr, err := f.Freq(aid)
		if err != nil {
			return nil, fmt.Errorf("NewMultiReport: %w", err)
		}
		wf, err := f.WeightedFreq(aid)
		if err != nil {
			return nil, fmt.Errorf("NewMultiReport: %w", err)
		}
		r.Frequencies = append(r.Frequencies, seriesOf(aid, cats, fr))
		r.WeightedFrequencies = append(r.WeightedFrequencies, seriesOf(aid, cats, wf))
	}

	ds, res, err := cm.DoublyStochastic(opts...)
	if err != nil {
		return nil, fmt.Errorf("NewMultiReport: %w", err)
	}
	r.DoublyStochastic = TableOf("doubly stochastic", ds)
	r.Sinkhorn = Sinkhorn{Iterations: res.Iterations, Error: Number(res.Error), Converged: res.Converged}

	v, err := cm.Variation(opts...)
	if err != nil {
		return nil, fmt.Errorf("NewMultiReport: %w", err)
	}
	r.Variation = TableOf("variation", v)

	return r, nil
}

// Tables implements Report.
func (r *MultiReport) Tables() []Table {
	return []Table{r.Confusion, r.DoublyStochastic, r.Variation}
}
