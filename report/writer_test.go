package report

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cachesim/cachestats/stats"
)

func numericRow(label string, values ...float64) stats.Row {
	r := stats.Row{Label: label}
	for _, v := range values {
		r.Cells = append(r.Cells, stats.Cell{Text: strconv.FormatFloat(v, 'f', 1, 64), Value: v})
	}
	return r
}

func numericTable() *stats.Table {
	rows := []stats.Row{
		numericRow("binTree", 1, 2, 3, 4, 2.5),
		numericRow("LRU", 2, 2, 1, 1, 1.5),
	}
	return &stats.Table{Name: "replace_mr", YLabel: stats.MissRate.YLabel, Rows: rows}
}

func TestWriter_Markdown_WritesTableAndFigure(t *testing.T) {
	// GIVEN an existing output directory
	dir := t.TempDir()
	w := &Writer{Dir: dir, Mode: Markdown, Plots: true}

	// WHEN a table is written
	require.NoError(t, w.Write(numericTable()))

	// THEN the Markdown table and its PNG exist
	data, err := os.ReadFile(filepath.Join(dir, "replace_mr.txt"))
	require.NoError(t, err)
	assert.Equal(t,
		"| binTree | 1.0 | 2.0 | 3.0 | 4.0 | 2.5 |\n"+
			"| LRU     | 2.0 | 2.0 | 1.0 | 1.0 | 1.5 |\n",
		string(data))
	info, err := os.Stat(filepath.Join(dir, "replace_mr.png"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriter_PlotsDisabled_NoFigure(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Mode: Markdown, Plots: false}

	require.NoError(t, w.Write(numericTable()))

	_, err := os.Stat(w.FigurePath("replace_mr"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWriter_Plain_TabSeparatedWithoutFigure(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Mode: Plain, Plots: true}

	require.NoError(t, w.Write(numericTable()))

	data, err := os.ReadFile(w.TablePath("replace_mr"))
	require.NoError(t, err)
	assert.Equal(t, "binTree\t1.0\t2.0\t3.0\t4.0\t2.5\nLRU\t2.0\t2.0\t1.0\t1.0\t1.5\n", string(data))
	_, err = os.Stat(w.FigurePath("replace_mr"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWriter_MissingDirectory_NotCreated(t *testing.T) {
	// GIVEN an output directory that does not exist
	dir := filepath.Join(t.TempDir(), "stats")
	w := &Writer{Dir: dir, Mode: Markdown, Plots: true}

	// WHEN writing
	err := w.Write(numericTable())

	// THEN the write fails and the directory is still absent
	require.ErrorIs(t, err, fs.ErrNotExist)
	_, statErr := os.Stat(dir)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestFigure_SeriesAreIndependentPerFigure(t *testing.T) {
	a := NewFigure("a", "y")
	b := NewFigure("b", "y")

	require.NoError(t, a.AddSeries("one", []float64{1, 2, 3, 4}))
	require.NoError(t, a.AddSeries("two", []float64{4, 3, 2, 1}))
	require.NoError(t, b.AddSeries("three", []float64{1, 1, 1, 1}))

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 1, b.Len())
	require.NoError(t, b.Save(filepath.Join(t.TempDir(), "b.png")))
}
