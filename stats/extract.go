package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	mstats "github.com/montanaflynn/stats"
)

// ErrUnknownMetric is returned by MetricBySuffix for an unregistered suffix.
var ErrUnknownMetric = errors.New("unknown metric")

// Cell is one table entry: the text written to the report and the value plotted for it.
type Cell struct {
	Text  string
	Value float64
}

// Extractor maps the NumRuns runs of one configuration to NumRuns per-run cells
// followed by one aggregate cell.
type Extractor func(runs []Run) ([]Cell, error)

// Metric pairs an extractor with the suffix used in report names.
type Metric struct {
	Suffix  string
	YLabel  string // axis label of the per-run values
	Extract Extractor
}

var (
	MissRate = Metric{Suffix: "mr", YLabel: "Miss rate (%)", Extract: ExtractMissRate}
	Space    = Metric{Suffix: "space", YLabel: "Cache + replacement space (B)", Extract: ExtractSpace}
	Traffic  = Metric{Suffix: "traffic", YLabel: "Memory reads + writes", Extract: ExtractTraffic}
)

// DefaultMetrics are the metrics reported when none are selected explicitly.
func DefaultMetrics() []Metric {
	return []Metric{MissRate, Space}
}

// MetricBySuffix looks up a metric by its report-name suffix.
func MetricBySuffix(suffix string) (Metric, error) {
	for _, m := range []Metric{MissRate, Space, Traffic} {
		if m.Suffix == suffix {
			return m, nil
		}
	}
	return Metric{}, fmt.Errorf("%w: %q (valid: mr, space, traffic)", ErrUnknownMetric, suffix)
}

// ExtractMissRate reports each run's miss rate and their mean to one decimal place.
func ExtractMissRate(runs []Run) ([]Cell, error) {
	if err := checkRuns(runs); err != nil {
		return nil, err
	}
	cells := make([]Cell, 0, NumRuns+1)
	rates := make(mstats.Float64Data, 0, NumRuns)
	for _, r := range runs {
		cells = append(cells, Cell{Text: formatFloat(r.MissRate), Value: r.MissRate})
		rates = append(rates, r.MissRate)
	}
	avg, err := mstats.Mean(rates)
	if err != nil {
		return nil, fmt.Errorf("averaging miss rate: %w", err)
	}
	cells = append(cells, Cell{Text: fmt.Sprintf("%.1f", avg), Value: avg})
	return cells, nil
}

// ExtractSpace reports "<cache>+<replace>" storage bytes per run. The aggregate
// is the truncated mean of each component.
func ExtractSpace(runs []Run) ([]Cell, error) {
	return extractPair(runs, "space", func(r Run) (float64, float64) {
		return r.CacheSpace, r.ReplaceSpace
	})
}

// ExtractTraffic reports "<read>+<write>" memory accesses per run. The aggregate
// is the truncated mean of each component.
func ExtractTraffic(runs []Run) ([]Cell, error) {
	return extractPair(runs, "traffic", func(r Run) (float64, float64) {
		return r.ReadMemCount, r.WriteMemCount
	})
}

func extractPair(runs []Run, what string, pick func(Run) (float64, float64)) ([]Cell, error) {
	if err := checkRuns(runs); err != nil {
		return nil, err
	}
	cells := make([]Cell, 0, NumRuns+1)
	firsts := make(mstats.Float64Data, 0, NumRuns)
	seconds := make(mstats.Float64Data, 0, NumRuns)
	for _, r := range runs {
		a, b := pick(r)
		ia, ib := int64(a), int64(b)
		cells = append(cells, Cell{Text: fmt.Sprintf("%d+%d", ia, ib), Value: float64(ia + ib)})
		firsts = append(firsts, float64(ia))
		seconds = append(seconds, float64(ib))
	}
	avgA, err := mstats.Mean(firsts)
	if err != nil {
		return nil, fmt.Errorf("averaging %s: %w", what, err)
	}
	avgB, err := mstats.Mean(seconds)
	if err != nil {
		return nil, fmt.Errorf("averaging %s: %w", what, err)
	}
	ia, ib := int64(avgA), int64(avgB)
	cells = append(cells, Cell{Text: fmt.Sprintf("%d+%d", ia, ib), Value: float64(ia + ib)})
	return cells, nil
}

func checkRuns(runs []Run) error {
	if len(runs) != NumRuns {
		return fmt.Errorf("%w: expected %d runs, found %d", ErrRunCount, NumRuns, len(runs))
	}
	return nil
}

// formatFloat renders v in its shortest form but always with a fractional part,
// so 12 prints as "12.0" and 0.10 as "0.1".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
