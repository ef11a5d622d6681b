package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cachesim/cachestats/stats"
)

var (
	// ErrEmptyTable is returned when asked to render a table without rows.
	ErrEmptyTable = errors.New("empty table")
	// ErrRaggedTable is returned when rows have differing cell counts.
	ErrRaggedTable = errors.New("ragged table")
)

// Mode selects the table layout.
type Mode int

const (
	// Markdown renders a pipe table with aligned columns and produces a figure.
	Markdown Mode = iota
	// Plain renders tab-separated rows without padding.
	Plain
)

func (m Mode) String() string {
	if m == Plain {
		return "plain"
	}
	return "markdown"
}

// columnWidths returns the widest label plus one, and the widest text per column.
func columnWidths(rows []stats.Row) (int, []int, error) {
	if len(rows) == 0 {
		return 0, nil, ErrEmptyTable
	}
	ncols := len(rows[0].Cells)
	labelWidth := 0
	widths := make([]int, ncols)
	for _, row := range rows {
		if len(row.Cells) != ncols {
			return 0, nil, fmt.Errorf("%w: row %q has %d cells, expected %d", ErrRaggedTable, row.Label, len(row.Cells), ncols)
		}
		labelWidth = max(labelWidth, len(row.Label))
		for c, cell := range row.Cells {
			widths[c] = max(widths[c], len(cell.Text))
		}
	}
	return labelWidth + 1, widths, nil
}

// RenderMarkdown writes one "| label | cell | ... |" line per row, padding the
// label and every column to a common width.
func RenderMarkdown(w io.Writer, rows []stats.Row) error {
	labelWidth, widths, err := columnWidths(rows)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		padded := make([]string, len(row.Cells))
		for c, cell := range row.Cells {
			padded[c] = pad(cell.Text, widths[c])
		}
		fmt.Fprintf(bw, "| %s| %s |\n", pad(row.Label, labelWidth), strings.Join(padded, " | "))
	}
	return bw.Flush()
}

// RenderPlain writes one "label\tcell\t..." line per row.
func RenderPlain(w io.Writer, rows []stats.Row) error {
	if _, _, err := columnWidths(rows); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		fmt.Fprintf(bw, "%s\t%s\n", row.Label, strings.Join(row.Texts(), "\t"))
	}
	return bw.Flush()
}

// Render dispatches on mode.
func Render(w io.Writer, rows []stats.Row, mode Mode) error {
	if mode == Plain {
		return RenderPlain(w, rows)
	}
	return RenderMarkdown(w, rows)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
