// Package stats reads the per-configuration statistics files written by the
// cache simulator and turns them into report rows.
//
// # Reading Guide
//
//   - params.go: policies and the parameter tuple that names one stats file
//   - grid.go: the swept parameter lists and the defaults held fixed
//   - record.go: TSV parsing into typed Run values, run-count validation
//   - extract.go: metrics (miss rate, space, memory traffic) mapping 4 runs to a row
//   - sweep.go: sweeps over the grid and table construction
//
// Rendering and file output live in the report package.
package stats
