// Package viz renders the standard EDA charts to PNG files with gonum/plot.
// It consumes a cleaned table (or a computed report) and never mutates it.
package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/eda"
	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
)

var (
	fillBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	dotBlue  = color.RGBA{R: 50, G: 50, B: 255, A: 255}
)

// Histogram renders a binned frequency histogram of a numeric column.
func Histogram(t *table.Table, col string, bins int, path string) error {
	c, err := t.Column(col)
	if err != nil {
		return err
	}
	if c.Kind != table.Numeric {
		return fmt.Errorf("histogram: column %s is %s, want numeric", col, c.Kind)
	}
	vals := c.ValidFloats()
	if len(vals) == 0 {
		return &table.EmptyColumnError{Column: col, Op: "histogram"}
	}
	if bins <= 0 {
		bins = 30
	}

	p := plot.New()
	p.Title.Text = "Histogram of " + col
	p.X.Label.Text = col
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return fmt.Errorf("histogram %s: %w", col, err)
	}
	h.FillColor = fillBlue
	p.Add(h)

	return save(p, path)
}

// BoxPlots renders side-by-side box plots for the given numeric columns (all
// numeric columns when none are named), the visual counterpart of the IQR
// outlier report.
func BoxPlots(t *table.Table, cols []string, path string) error {
	if len(cols) == 0 {
		for _, c := range t.Columns() {
			if c.Kind == table.Numeric {
				cols = append(cols, c.Name)
			}
		}
	}
	if len(cols) == 0 {
		return fmt.Errorf("box plots: no numeric columns")
	}

	p := plot.New()
	p.Title.Text = "Outlier Detection"
	p.Y.Label.Text = "Value"

	for i, name := range cols {
		c, err := t.Column(name)
		if err != nil {
			return err
		}
		if c.Kind != table.Numeric {
			return fmt.Errorf("box plots: column %s is %s, want numeric", name, c.Kind)
		}
		vals := c.ValidFloats()
		if len(vals) == 0 {
			return &table.EmptyColumnError{Column: name, Op: "box plot"}
		}
		b, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(vals))
		if err != nil {
			return fmt.Errorf("box plot %s: %w", name, err)
		}
		p.Add(b)
	}
	p.NominalX(cols...)

	return save(p, path)
}

// Scatter renders one numeric column against another, skipping rows where
// either value is missing.
func Scatter(t *table.Table, xCol, yCol, path string) error {
	x, err := t.Column(xCol)
	if err != nil {
		return err
	}
	y, err := t.Column(yCol)
	if err != nil {
		return err
	}
	if x.Kind != table.Numeric || y.Kind != table.Numeric {
		return fmt.Errorf("scatter: columns %s and %s must both be numeric", xCol, yCol)
	}

	var pts plotter.XYs
	for i := range x.Floats {
		if x.Missing[i] || y.Missing[i] {
			continue
		}
		pts = append(pts, plotter.XY{X: x.Floats[i], Y: y.Floats[i]})
	}
	if len(pts) == 0 {
		return fmt.Errorf("scatter: no complete rows for %s vs %s", xCol, yCol)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", xCol, yCol)
	p.X.Label.Text = xCol
	p.Y.Label.Text = yCol

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	s.Color = dotBlue
	p.Add(s)

	return save(p, path)
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Rows are flipped
// so the first column reads from the top, matching the usual heatmap layout.
type corrGrid struct{ m *eda.CorrMatrix }

func (g corrGrid) Dims() (int, int)   { return len(g.m.Columns), len(g.m.Columns) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[len(g.m.Columns)-1-r][c] }

// Heatmap renders a correlation matrix with a diverging palette fixed to
// [-1, 1].
func Heatmap(m *eda.CorrMatrix, path string) error {
	if len(m.Columns) < 2 {
		return fmt.Errorf("heatmap: need at least two columns, have %d", len(m.Columns))
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	h := plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(255))
	h.Min, h.Max = -1, 1

	p := plot.New()
	p.Title.Text = "Correlation Matrix"
	p.Add(h)

	ticksX := make([]plot.Tick, len(m.Columns))
	ticksY := make([]plot.Tick, len(m.Columns))
	for i, name := range m.Columns {
		ticksX[i] = plot.Tick{Value: float64(i), Label: name}
		ticksY[i] = plot.Tick{Value: float64(len(m.Columns) - 1 - i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticksX)
	p.Y.Tick.Marker = plot.ConstantTicks(ticksY)

	return save(p, path)
}

// TrendLines renders one line per group series, e.g. monthly premium totals
// per province.
func TrendLines(series []eda.GroupSeries, title, yLabel, path string) error {
	if len(series) == 0 {
		return fmt.Errorf("trend lines: no series")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Month"
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Legend.Top = true

	for i, s := range series {
		pts := make(plotter.XYs, len(s.Months))
		for j := range s.Months {
			pts[j] = plotter.XY{X: float64(s.Months[j].Unix()), Y: s.Totals[j]}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("trend line %s: %w", s.Key, err)
		}
		l.Color = plotutilColor(i)
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(s.Key, l)
	}

	return save(p, path)
}

// plotutilColor cycles through a fixed line palette.
func plotutilColor(i int) color.Color {
	palette := []color.RGBA{
		{R: 31, G: 119, B: 180, A: 255},
		{R: 255, G: 127, B: 14, A: 255},
		{R: 44, G: 160, B: 44, A: 255},
		{R: 214, G: 39, B: 40, A: 255},
		{R: 148, G: 103, B: 189, A: 255},
		{R: 140, G: 86, B: 75, A: 255},
		{R: 227, G: 119, B: 194, A: 255},
		{R: 127, G: 127, B: 127, A: 255},
		{R: 188, G: 189, B: 34, A: 255},
	}
	return palette[i%len(palette)]
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return &table.WriteError{Path: path, Err: err}
	}
	return nil
}
