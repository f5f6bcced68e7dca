package stats

import (
	"fmt"
	"io"
	"strings"
)

// column describes one column of a plain-text report table.
// Numeric columns are right-aligned.
type column struct {
	title   string
	numeric bool
}

var (
	roundColumns = []column{
		{title: "#", numeric: true},
		{title: "Duration", numeric: true},
		{title: "Correct", numeric: true},
		{title: "Errors", numeric: true},
		{title: "SPM", numeric: true},
	}
	letterColumns = []column{
		{title: "Letter"},
		{title: "Accuracy", numeric: true},
		{title: "Avg Latency (ms)", numeric: true},
		{title: "Correct", numeric: true},
		{title: "Missed", numeric: true},
	}
)

// writeTable writes a header line and one line per row, each column padded
// to its widest cell, followed by a blank line. Cells past the last column
// are dropped.
func writeTable(w io.Writer, cols []column, rows [][]string) error {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c.title)
	}
	for _, row := range rows {
		for i := 0; i < len(cols) && i < len(row); i++ {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	if _, err := fmt.Fprintln(w, tableLine(cols, widths, header)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, tableLine(cols, widths, row)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func tableLine(cols []column, widths []int, cells []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if c.numeric {
			parts[i] = fmt.Sprintf("%*s", widths[i], cell)
		} else {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
	}
	return strings.Join(parts, " ")
}
