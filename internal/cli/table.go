package cli

import (
	"strings"
)

// Table is a simple table formatter with dynamic column widths. Cells in the
// last column may contain ANSI escape sequences; it is never padded, so the
// escape codes do not skew alignment.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
	}
}

// AddRow adds a row to the table. Short rows are padded to the header count,
// long rows truncated.
func (t *Table) AddRow(row []string) {
	if len(row) != len(t.headers) {
		newRow := make([]string, len(t.headers))
		copy(newRow, row)
		t.rows = append(t.rows, newRow)
		return
	}
	t.rows = append(t.rows, row)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Calculate column widths.
	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			// ANSI-coloured cells report inflated lengths; leave them out.
			if strings.Contains(cell, "\x1b") {
				continue
			}
			if len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var result strings.Builder

	// Header.
	headerParts := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerParts[i] = padRight(h, colWidths[i])
	}
	result.WriteString(strings.TrimRight(strings.Join(headerParts, gap), " "))
	result.WriteString("\n")

	// Separator.
	sepParts := make([]string, len(t.headers))
	for i, w := range colWidths {
		sepParts[i] = strings.Repeat("-", w)
	}
	result.WriteString(strings.Join(sepParts, gap))
	result.WriteString("\n")

	// Data rows.
	for _, row := range t.rows {
		rowParts := make([]string, len(row))
		for i, cell := range row {
			if i < len(row)-1 {
				rowParts[i] = padRight(cell, colWidths[i])
			} else {
				rowParts[i] = cell
			}
		}
		result.WriteString(strings.TrimRight(strings.Join(rowParts, gap), " "))
		result.WriteString("\n")
	}

	return result.String()
}

// padRight pads a string with spaces on the right to reach the desired width.
// If the string is already longer than or equal to the width, it is returned
// unchanged.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
