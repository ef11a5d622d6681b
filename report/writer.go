package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/cachesim/cachestats/stats"
)

// Writer renders tables into an existing output directory.
type Writer struct {
	Dir   string
	Mode  Mode
	Plots bool // save a PNG figure next to every Markdown report
	Log   *logrus.Entry
}

// TablePath returns the text report location for name.
func (w *Writer) TablePath(name string) string {
	return filepath.Join(w.Dir, name+".txt")
}

// FigurePath returns the figure location for name.
func (w *Writer) FigurePath(name string) string {
	return filepath.Join(w.Dir, name+".png")
}

func (w *Writer) log() *logrus.Entry {
	if w.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return w.Log
}

// Write renders table to <Dir>/<name>.txt and, in Markdown mode with plots
// enabled, its figure to <Dir>/<name>.png. The directory is not created; a
// missing directory fails with an error wrapping fs.ErrNotExist.
func (w *Writer) Write(table *stats.Table) error {
	log := w.log().WithField("report", table.Name)

	path := w.TablePath(table.Name)
	log.Infof("writing to %s", path)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := Render(file, table.Rows, w.Mode); err != nil {
		_ = file.Close()
		return fmt.Errorf("rendering %s: %w", table.Name, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	if w.Mode != Markdown || !w.Plots {
		return nil
	}
	fig := NewFigure(table.Name, table.YLabel)
	for _, row := range table.Rows {
		if err := fig.AddSeries(row.Label, row.Series()); err != nil {
			return fmt.Errorf("plotting %s: %w", table.Name, err)
		}
	}
	figPath := w.FigurePath(table.Name)
	if err := fig.Save(figPath); err != nil {
		return fmt.Errorf("%s: %w", figPath, err)
	}
	log.Infof("saved figure %s", figPath)
	return nil
}
