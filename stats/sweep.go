package stats

import (
	"errors"
	"fmt"
)

// ErrUnknownSweep is returned by ParseSweep for an unregistered sweep name.
var ErrUnknownSweep = errors.New("unknown sweep")

// Sweep names the dimension varied while the others stay at their defaults.
type Sweep string

const (
	SweepStructure   Sweep = "structure" // block size x associativity
	SweepReplacement Sweep = "replace"
	SweepWrite       Sweep = "write"
)

// AllSweeps returns every sweep in report order.
func AllSweeps() []Sweep {
	return []Sweep{SweepStructure, SweepReplacement, SweepWrite}
}

// ParseSweep validates s against the known sweeps.
func ParseSweep(s string) (Sweep, error) {
	for _, sw := range AllSweeps() {
		if string(sw) == s {
			return sw, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: structure, replace, write)", ErrUnknownSweep, s)
}

// Point is one labelled configuration along a sweep.
type Point struct {
	Label  string
	Params Params
}

// Points enumerates the configurations visited by sweep, in table order.
func (g Grid) Points(sweep Sweep) ([]Point, error) {
	var points []Point
	switch sweep {
	case SweepStructure:
		for _, bs := range g.BlockSizes {
			for _, a := range g.Assocs {
				p := g.Defaults()
				p.BlockSize, p.Assoc = bs, a
				points = append(points, Point{Label: fmt.Sprintf("%d, %d", bs, a), Params: p})
			}
		}
	case SweepReplacement:
		for _, rp := range g.Replacements {
			p := g.Defaults()
			p.Replacement = rp
			points = append(points, Point{Label: string(rp), Params: p})
		}
	case SweepWrite:
		for _, wp := range g.Writes {
			p := g.Defaults()
			p.Write = wp
			points = append(points, Point{Label: string(wp), Params: p})
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSweep, sweep)
	}
	return points, nil
}

// Row is one labelled line of a report.
type Row struct {
	Label string
	Cells []Cell
}

// Texts returns the rendered text of every cell.
func (r Row) Texts() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Text
	}
	return out
}

// Series returns the plotted per-run values, excluding the aggregate cell.
func (r Row) Series() []float64 {
	n := len(r.Cells)
	if n > NumRuns {
		n = NumRuns
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = r.Cells[i].Value
	}
	return out
}

// Table is the content of one report file.
type Table struct {
	Name   string
	YLabel string
	Rows   []Row
}

// ReportName returns the report name for a sweep/metric pair, e.g. "structure_mr".
func ReportName(sweep Sweep, metric Metric) string {
	return fmt.Sprintf("%s_%s", sweep, metric.Suffix)
}

// BuildTable loads every configuration along sweep and extracts metric for each.
// Stats files are read fresh on every call.
func BuildTable(loader Loader, g Grid, sweep Sweep, metric Metric) (*Table, error) {
	points, err := g.Points(sweep)
	if err != nil {
		return nil, err
	}
	table := &Table{Name: ReportName(sweep, metric), YLabel: metric.YLabel}
	for _, pt := range points {
		runs, err := loader.Load(pt.Params)
		if err != nil {
			return nil, fmt.Errorf("%s: loading %s: %w", table.Name, pt.Params, err)
		}
		cells, err := metric.Extract(runs)
		if err != nil {
			return nil, fmt.Errorf("%s: extracting %s for %s: %w", table.Name, metric.Suffix, pt.Params, err)
		}
		table.Rows = append(table.Rows, Row{Label: pt.Label, Cells: cells})
	}
	return table, nil
}
