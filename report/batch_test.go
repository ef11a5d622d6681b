package report

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cachesim/cachestats/stats"
)

// writeStatsTree writes a stats file for every configuration any sweep of g visits.
// Miss rates encode the block size so rows are distinguishable.
func writeStatsTree(t *testing.T, g stats.Grid) string {
	t.Helper()
	dir := t.TempDir()
	for _, sw := range stats.AllSweeps() {
		points, err := g.Points(sw)
		require.NoError(t, err)
		for _, pt := range points {
			var b strings.Builder
			b.WriteString("trace id\tcache space\treplace space\taccess count\tmiss rate\twrite mem count\tread mem count\tread miss\n")
			for i := 1; i <= stats.NumRuns; i++ {
				fmt.Fprintf(&b, "%d\t%d\t%d\t1000\t%.1f\t10\t20\t5\n", i, 64*pt.Params.BlockSize, 8*i, float64(pt.Params.BlockSize)/float64(i))
			}
			require.NoError(t, os.WriteFile(filepath.Join(dir, pt.Params.Filename()), []byte(b.String()), 0o644))
		}
	}
	return dir
}

func TestBatch_Run_DefaultsWriteSixReports(t *testing.T) {
	// GIVEN a complete stats tree and an existing output directory
	g := stats.DefaultGrid()
	in := writeStatsTree(t, g)
	out := t.TempDir()
	b := &Batch{
		Loader: stats.DirLoader{Dir: in},
		Grid:   g,
		Writer: &Writer{Dir: out, Mode: Markdown, Plots: true},
	}

	// WHEN the batch runs with default metrics and sweeps
	summary, err := b.Run()

	// THEN six reports are written metric by metric
	require.NoError(t, err)
	assert.NotEmpty(t, summary.RunID)
	want := []string{"structure_mr", "replace_mr", "write_mr", "structure_space", "replace_space", "write_space"}
	assert.Equal(t, want, summary.Reports)
	for _, name := range want {
		assert.FileExists(t, filepath.Join(out, name+".txt"))
		assert.FileExists(t, filepath.Join(out, name+".png"))
	}

	data, err := os.ReadFile(filepath.Join(out, "structure_mr.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 12)
	// bs=8: 8/1, 8/2, 8/3, 8/4 -> mean of 8.0, 4.0, 2.7, 2.0 = 4.175
	assert.Equal(t, "| 8, 1  | 8.0  | 4.0  | 2.7  | 2.0  | 4.2  |", lines[0])
	assert.True(t, strings.HasPrefix(lines[11], "| 64, 0 | 64.0 | 32.0 | 21.3 | 16.0 | 33.3 |"))

	data, err = os.ReadFile(filepath.Join(out, "write_space.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "| through_noAlloc | 512+8 | 512+16 | 512+24 | 512+32 | 512+20 |")
}

func TestBatch_Run_PlainSelectedMetricAndSweep(t *testing.T) {
	g := stats.DefaultGrid()
	in := writeStatsTree(t, g)
	out := t.TempDir()
	b := &Batch{
		Loader:  stats.DirLoader{Dir: in},
		Grid:    g,
		Metrics: []stats.Metric{stats.Traffic},
		Sweeps:  []stats.Sweep{stats.SweepReplacement},
		Writer:  &Writer{Dir: out, Mode: Plain, Plots: true},
	}

	summary, err := b.Run()

	require.NoError(t, err)
	assert.Equal(t, []string{"replace_traffic"}, summary.Reports)
	data, err := os.ReadFile(filepath.Join(out, "replace_traffic.txt"))
	require.NoError(t, err)
	assert.Equal(t,
		"binTree\t20+10\t20+10\t20+10\t20+10\t20+10\n"+
			"LRU\t20+10\t20+10\t20+10\t20+10\t20+10\n"+
			"PLRU\t20+10\t20+10\t20+10\t20+10\t20+10\n",
		string(data))
}

func TestBatch_Run_MissingInputAbortsKeepingEarlierReports(t *testing.T) {
	// GIVEN a tree missing one write-policy file
	g := stats.DefaultGrid()
	in := writeStatsTree(t, g)
	missing := stats.Params{BlockSize: 8, Assoc: 8, Replacement: stats.BinaryTree, Write: stats.WriteThroughAlloc}
	require.NoError(t, os.Remove(filepath.Join(in, missing.Filename())))
	out := t.TempDir()
	b := &Batch{
		Loader: stats.DirLoader{Dir: in},
		Grid:   g,
		Writer: &Writer{Dir: out, Mode: Markdown, Plots: false},
	}

	// WHEN the batch runs
	summary, err := b.Run()

	// THEN it stops at write_mr and the first two reports remain
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), missing.Filename())
	assert.Equal(t, []string{"structure_mr", "replace_mr"}, summary.Reports)
	assert.FileExists(t, filepath.Join(out, "replace_mr.txt"))
	assert.NoFileExists(t, filepath.Join(out, "write_mr.txt"))
	assert.NoFileExists(t, filepath.Join(out, "structure_space.txt"))
}

func TestBatch_Run_InvalidGrid(t *testing.T) {
	g := stats.DefaultGrid()
	g.Assocs = nil
	b := &Batch{Loader: stats.DirLoader{Dir: t.TempDir()}, Grid: g, Writer: &Writer{Dir: t.TempDir()}}

	_, err := b.Run()

	assert.ErrorIs(t, err, stats.ErrInvalidGrid)
}
