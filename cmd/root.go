package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachesim/cachestats/report"
	"github.com/cachesim/cachestats/stats"
)

var (
	inDir       string   // Directory holding the simulator's stats_*.tsv files
	outDir      string   // Existing directory receiving the reports
	gridPath    string   // Optional YAML file overriding the parameter grid
	logLevel    string   // Log verbosity level
	plain       bool     // Write tab-separated tables instead of Markdown
	noPlots     bool     // Skip PNG figures for Markdown reports
	metricNames []string // Metric suffixes to report
	sweepNames  []string // Sweeps to report
)

// rootCmd runs the full report batch; it takes no arguments.
var rootCmd = &cobra.Command{
	Use:   "cachestats",
	Short: "Aggregate cache simulation stats into comparison tables and plots",
	Long: "Reads the per-configuration stats files written by the cache simulator, " +
		"extracts miss rate and space usage for every sweep of the parameter grid, " +
		"and writes one report per metric and sweep.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		grid := stats.DefaultGrid()
		if gridPath != "" {
			grid, err = LoadGridConfig(gridPath)
			if err != nil {
				logrus.Fatalf("Failed to load grid: %v", err)
			}
		}

		metrics, err := parseMetrics(metricNames)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		sweeps, err := parseSweeps(sweepNames)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		mode := report.Markdown
		if plain {
			mode = report.Plain
		}
		batch := &report.Batch{
			Loader:  stats.DirLoader{Dir: inDir},
			Grid:    grid,
			Metrics: metrics,
			Sweeps:  sweeps,
			Writer:  &report.Writer{Dir: outDir, Mode: mode, Plots: !noPlots},
		}
		summary, err := batch.Run()
		if err != nil {
			logrus.Fatalf("Report generation failed: %v", err)
		}
		logrus.WithField("run", summary.RunID).Infof("Done: %d reports in %s", len(summary.Reports), outDir)
	},
}

func parseMetrics(names []string) ([]stats.Metric, error) {
	metrics := make([]stats.Metric, 0, len(names))
	for _, name := range names {
		m, err := stats.MetricBySuffix(name)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

func parseSweeps(names []string) ([]stats.Sweep, error) {
	sweeps := make([]stats.Sweep, 0, len(names))
	for _, name := range names {
		sw, err := stats.ParseSweep(name)
		if err != nil {
			return nil, err
		}
		sweeps = append(sweeps, sw)
	}
	return sweeps, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&inDir, "in-dir", "output/stats", "Directory containing stats_<bs>_<assoc>_<replace>_<write>.tsv files")
	rootCmd.Flags().StringVar(&outDir, "out-dir", "stats", "Existing directory to write reports into")
	rootCmd.Flags().StringVar(&gridPath, "grid", "", "Path to a YAML parameter grid (default: built-in grid)")
	rootCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "Write tab-separated tables instead of Markdown")
	rootCmd.Flags().BoolVar(&noPlots, "no-plots", false, "Do not save PNG figures for Markdown reports")
	rootCmd.Flags().StringSliceVar(&metricNames, "metrics", []string{"mr", "space"}, "Metrics to report (mr, space, traffic)")
	rootCmd.Flags().StringSliceVar(&sweepNames, "sweeps", []string{"structure", "replace", "write"}, "Sweeps to report (structure, replace, write)")
}
