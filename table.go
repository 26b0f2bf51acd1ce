package drivetab

import (
	"fmt"
	"slices"
)

// Table is an in-memory table of string cells with ordered, named columns.
// It is the unit of data exchanged with Google Drive: Read returns a Table
// owned by the caller, and Write borrows a Table for the duration of
// serialization.
type Table struct {
	columns []string
	rows    [][]string
}

// NewTable creates a Table from column names and rows.
// Every row must have exactly one cell per column.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), len(columns), ErrInvalidTable)
		}
	}
	t := &Table{columns: append([]string{}, columns...)}
	for _, row := range rows {
		t.rows = append(t.rows, append([]string{}, row...))
	}
	return t, nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string{}, t.columns...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Row returns a copy of the i-th row.
func (t *Table) Row(i int) []string {
	return append([]string{}, t.rows[i]...)
}

// Cell returns the cell at row i in the named column.
// The second return value is false if the column does not exist.
func (t *Table) Cell(i int, column string) (string, bool) {
	j := slices.Index(t.columns, column)
	if j < 0 {
		return "", false
	}
	return t.rows[i][j], true
}

// Equal reports whether two tables have the same columns and cell values.
func (t *Table) Equal(other *Table) bool {
	if other == nil {
		return false
	}
	if !slices.Equal(t.columns, other.columns) {
		return false
	}
	return slices.EqualFunc(t.rows, other.rows, slices.Equal)
}
