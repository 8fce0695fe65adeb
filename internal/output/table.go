package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue).PaddingRight(2)
	tableCellStyle   = lipgloss.NewStyle().PaddingRight(2)
	tableMutedStyle  = tableCellStyle.Foreground(ColorDimGray)
)

// Table is a borderless column listing, e.g. the template catalog.
type Table struct {
	headers []string
	rows    [][]string
	muted   map[int]bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, muted: map[int]bool{}}
}

// Row appends a row.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// MutedRow appends a row rendered dimmed, for entries that could not be
// loaded.
func (t *Table) MutedRow(cells ...string) *Table {
	t.muted[len(t.rows)] = true
	return t.Row(cells...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) String() string {
	tbl := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case t.muted[row]:
				return tableMutedStyle
			default:
				return tableCellStyle
			}
		})
	return tbl.String()
}
