package report

import (
	"errors"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/cachesim/cachestats/stats"
)

// Batch produces one report per (metric, sweep) pair.
type Batch struct {
	Loader  stats.Loader
	Grid    stats.Grid
	Metrics []stats.Metric
	Sweeps  []stats.Sweep
	Writer  *Writer
}

// Summary describes a finished batch.
type Summary struct {
	RunID   string
	Reports []string // report names in write order
}

// Run writes reports metric by metric, each over all sweeps in order. It stops
// at the first failure; reports written before it are left in place.
func (b *Batch) Run() (*Summary, error) {
	if b.Loader == nil || b.Writer == nil {
		return nil, errors.New("batch needs a loader and a writer")
	}
	if err := b.Grid.Validate(); err != nil {
		return nil, err
	}
	metrics := b.Metrics
	if len(metrics) == 0 {
		metrics = stats.DefaultMetrics()
	}
	sweeps := b.Sweeps
	if len(sweeps) == 0 {
		sweeps = stats.AllSweeps()
	}

	summary := &Summary{RunID: xid.New().String()}
	log := logrus.WithField("run", summary.RunID)
	w := *b.Writer
	w.Log = log

	log.Infof("generating %d reports (%s) into %s", len(metrics)*len(sweeps), w.Mode, w.Dir)
	for _, m := range metrics {
		for _, sw := range sweeps {
			table, err := stats.BuildTable(loggingLoader{b.Loader, log}, b.Grid, sw, m)
			if err != nil {
				return summary, err
			}
			if err := w.Write(table); err != nil {
				return summary, err
			}
			summary.Reports = append(summary.Reports, table.Name)
		}
	}
	log.Infof("wrote %d reports", len(summary.Reports))
	return summary, nil
}

// loggingLoader traces every stats file read at debug level.
type loggingLoader struct {
	next stats.Loader
	log  *logrus.Entry
}

func (l loggingLoader) Load(p stats.Params) ([]stats.Run, error) {
	l.log.Debugf("loading stats for %s", p)
	return l.next.Load(p)
}
