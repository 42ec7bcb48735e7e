// SPDX-License-Identifier: MPL-2.0

package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table is a bordered table with a styled header row.
type Table struct {
	headers []string
	rows    [][]string
	// StatusColumn, when non-negative, is styled with StatusStyle.
	StatusColumn int
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, StatusColumn: -1}
}

// Row appends a row.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// String renders the table.
func (t *Table) String() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == t.StatusColumn && row >= 0 && row < len(t.rows) && col < len(t.rows[row]) {
				return StatusStyle(t.rows[row][col]).Padding(0, 1)
			}
			return cell
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}
