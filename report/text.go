// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
)

// Decimal places used by the text renderer.
const (
	ScoreDecimals  = 3
	MultiDecimals  = 2
	MatrixDecimals = 3
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TextWriter renders reports for people. Plain output is comma separated;
// styled output draws bordered tables.
type TextWriter struct {
	w      io.Writer
	Styled bool
}

// NewTextWriter styles its output when w is a terminal.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w, Styled: isTerminal(w)}
}

// Write renders r.
func (t *TextWriter) Write(r Report) error {
	p := &printer{w: t.w, styled: t.Styled}
	r.render(p)

	return p.err
}

// WriteText renders r on w, styled when w is a terminal.
func WriteText(w io.Writer, r Report) error { return NewTextWriter(w).Write(r) }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type printer struct {
	w      io.Writer
	styled bool
	err    error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) heading(s string) {
	if p.styled {
		s = headingStyle.Render(s)
	}
	p.printf("%s\n", s)
}

func (p *printer) kv(key, value string) {
	if p.styled {
		key = keyStyle.Render(key)
	}
	p.printf("%s: %s\n", key, value)
}

// grid prints headers and rows. The first header cell labels the row keys.
func (p *printer) grid(headers []string, rows [][]string) {
	if !p.styled {
		p.printf("%s\n", strings.Join(headers, ", "))
		for _, r := range rows {
			p.printf("%s\n", strings.Join(r, ", "))
		}
		return
	}
	tb := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	p.printf("%s\n", tb.Render())
}

func (p *printer) table(t Table, decimals int) {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append(rows[i], t.Labels[i])
		for _, v := range row {
			rows[i] = append(rows[i], round(v, decimals))
		}
	}
	p.grid(append([]string{"*"}, t.Labels...), rows)
}

func (p *printer) series(categories []string, ss []Series, decimals int) {
	rows := make([][]string, len(ss))
	for i, s := range ss {
		rows[i] = append(rows[i], s.Name)
		for _, v := range s.Values {
			rows[i] = append(rows[i], round(v, decimals))
		}
	}
	p.grid(append([]string{"*"}, categories...), rows)
}

func (p *printer) header(h Header) {
	p.kv("run", h.RunID)
	p.kv("annotators", strings.Join(h.Annotators, ", "))
}

func (r *PairReport) render(p *printer) {
	p.header(r.Header)
	p.kv("agreement", round(r.Agreement, ScoreDecimals))
	p.kv("kappa", round(r.Kappa, ScoreDecimals))
	p.kv("chance agreement", round(r.ChanceAgreement, ScoreDecimals))
	p.kv("overlap", round(r.Overlap, ScoreDecimals))
	p.kv("inconsistencies", strconv.Itoa(r.Inconsistencies))
	p.heading("frequency")
	p.series(r.Categories, r.Frequencies, ScoreDecimals)
	p.heading("confusion matrix")
	p.table(r.Confusion, MatrixDecimals)
}

func (r *AllPairsReport) render(p *printer) {
	p.header(r.Header)
	for _, t := range r.Tables() {
		p.heading(t.Name)
		p.triangle(t)
	}
	p.kv("agreement", r.Agreements.format(ScoreDecimals))
	p.kv("kappa", r.Kappas.format(ScoreDecimals))
}

// triangle prints the strict upper triangle of t: rows 0..n-2, columns 1..n-1.
func (p *printer) triangle(t Table) {
	n := len(t.Labels)
	if n < 2 {
		return
	}
	rows := make([][]string, 0, n-1)
	for i := 0; i < n-1; i++ {
		row := []string{t.Labels[i]}
		for j := 1; j < n; j++ {
			cell := ""
			if j > i {
				cell = round(t.Rows[i][j], ScoreDecimals)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	p.grid(append([]string{"*"}, t.Labels[1:]...), rows)
}

func (r *MultiReport) render(p *printer) {
	p.header(r.Header)
	if len(r.Sessions) > 0 {
		p.heading("loaded data")
		rows := make([][]string, len(r.Sessions))
		for i, s := range r.Sessions {
			rows[i] = []string{s.SystemID, strconv.Itoa(s.Sessions), strconv.Itoa(s.Annotations)}
		}
		p.grid([]string{"system", "#Sessions", "#Annotations"}, rows)
	}
	p.kv("agreement", round(r.Agreement, MultiDecimals))
	p.kv("kappa", round(r.Kappa, MultiDecimals))
	p.kv("chance agreement", round(r.ChanceAgreement, MultiDecimals))
	p.kv("label cardinality", r.LabelCardinality.format(MultiDecimals))
	p.kv("label density", r.LabelDensity.format(MultiDecimals))

	p.heading("frequency")
	p.series(r.Categories, append(slices.Clip(r.Frequencies), r.AveragedFreq), MultiDecimals)
	p.heading("weighted frequency")
	p.series(r.Categories, append(slices.Clip(r.WeightedFrequencies), r.AveragedWeightedFreq), MultiDecimals)
	p.heading("co-occurrence")
	p.series(r.Categories, []Series{r.Cofreq, r.Distribution}, MultiDecimals)

	p.heading("confusion matrix")
	p.table(r.Confusion, MatrixDecimals)
	p.kv("diagonal/entire", round(r.DiagonalRate, MatrixDecimals))
	p.kv("non-diagonal/entire", round(r.NonDiagonalRate, MatrixDecimals))
	p.heading("doubly stochastic matrix")
	p.table(r.DoublyStochastic, MatrixDecimals)
	if !r.Sinkhorn.Converged {
		p.kv("sinkhorn", fmt.Sprintf("not converged after %d iterations (error %s)", r.Sinkhorn.Iterations, round(r.Sinkhorn.Error, 6)))
	}
	p.heading("variation matrix")
	p.table(r.Variation, MatrixDecimals)
}
