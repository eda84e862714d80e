// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// WriteHeatmapHTML renders every table of r as an interactive heat map on a
// single HTML page.
func WriteHeatmapHTML(w io.Writer, r Report) error {
	page := components.NewPage()
	page.PageTitle = "agreement " + r.ID()
	for _, t := range r.Tables() {
		page.AddCharts(heatMapChart(t, r.ID()))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("report: heatmap: %w", err)
	}

	return nil
}

func heatMapChart(t Table, runID string) *charts.HeatMap {
	data := make([]opts.HeatMapData, 0, len(t.Labels)*len(t.Labels))
	lo, hi := finiteRange(t)
	for i, row := range t.Rows {
		for j, v := range row {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				continue
			}
			// x is the column; y counts rows from the bottom
			data = append(data, opts.HeatMapData{Value: [3]any{j, len(t.Rows) - 1 - i, f}})
		}
	}

	hm := charts.NewHeatMap()
	ys := reversed(t.Labels)
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "720px", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: t.Name, Subtitle: "run " + runID}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: t.Labels}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: ys}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.SetXAxis(t.Labels).AddSeries(t.Name, data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))

	return hm
}

// finiteRange returns the extent of the finite cells of t, [0,1] when none.
func finiteRange(t Table) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range t.Rows {
		for _, v := range row {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				continue
			}
			lo, hi = math.Min(lo, f), math.Max(hi, f)
		}
	}
	if lo > hi {
		return 0, 1
	}
	if lo == hi {
		hi = lo + 1
	}

	return lo, hi
}

// grid adapts a Table to plotter.GridXYZ. Row 0 is drawn on top.
type grid struct{ t Table }

func (g grid) Dims() (c, r int) { return len(g.t.Labels), len(g.t.Labels) }
func (g grid) X(c int) float64 { return float64(c) }
func (g grid) Y(r int) float64 { return float64(r) }
func (g grid) Z(c, r int) float64 { return float64(g.t.Rows[len(g.t.Rows)-1-r][c]) }

// WriteHeatmapPNG draws t as a static heat map and saves it to path. The
// image format follows the file extension.
func WriteHeatmapPNG(path string, t Table) error {
	if len(t.Labels) == 0 {
		return fmt.Errorf("report: heatmap %s: empty table", t.Name)
	}
	lo, hi := finiteRange(t)

	h := plotter.NewHeatMap(grid{t}, palette.Heat(12, 1))
	h.Min, h.Max = lo, hi
	h.NaN = color.Transparent

	p := plot.New()
	p.Title.Text = t.Name
	p.Add(h)
	p.NominalX(t.Labels...)
	p.NominalY(reversed(t.Labels)...)

	side := vg.Length(len(t.Labels))*vg.Centimeter + 6*vg.Centimeter
	if err := p.Save(side, side, path); err != nil {
		return fmt.Errorf("report: heatmap %s: %w", t.Name, err)
	}

	return nil
}

func reversed(ls []string) []string {
	out := slices.Clone(ls)
	slices.Reverse(out)

	return out
}
