package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Figure is a line chart with one series per report row, x being the run index.
// Each report owns its figure; nothing is shared between reports.
type Figure struct {
	plot   *plot.Plot
	series int
	runs   int
}

// NewFigure creates an empty figure titled with the report name.
func NewFigure(title, yLabel string) *Figure {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Run"
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	return &Figure{plot: p}
}

// AddSeries plots ys against run indices 1..len(ys).
func (f *Figure) AddSeries(label string, ys []float64) error {
	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i].X = float64(i + 1)
		pts[i].Y = y
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("series %q: %w", label, err)
	}
	line.Color = plotutil.Color(f.series)
	line.Dashes = plotutil.Dashes(f.series / len(plotutil.DefaultColors))
	line.Width = vg.Points(2)

	f.plot.Add(line)
	f.plot.Legend.Add(label, line)
	f.series++
	f.runs = max(f.runs, len(ys))
	return nil
}

// Len returns the number of series added so far.
func (f *Figure) Len() int {
	return f.series
}

// Save renders the figure; the format follows the file extension.
func (f *Figure) Save(path string) error {
	ticks := make([]plot.Tick, f.runs)
	for i := range ticks {
		ticks[i] = plot.Tick{Value: float64(i + 1), Label: fmt.Sprintf("Run %d", i+1)}
	}
	f.plot.X.Tick.Marker = plot.ConstantTicks(ticks)
	f.plot.X.Min = 0.5
	f.plot.X.Max = float64(f.runs) + 0.5

	if err := f.plot.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving figure: %w", err)
	}
	return nil
}
