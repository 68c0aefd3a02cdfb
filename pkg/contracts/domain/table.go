package domain

// Cell is a single table value. Concrete types are float64 for numbers and
// string for text; a nil Cell is an explicitly absent value. The empty string
// and the literal text "NaN" are treated as missing throughout the pipeline.
type Cell = interface{}

// Row maps column names to cell values. Row identity is positional: rows are
// never merged or reordered once a table is loaded.
type Row map[string]Cell

// Table is the in-memory dataset handed to the analysis engine. Columns holds
// the column names in load order; that order is preserved in every output.
// A Table is read-only once produced by a loader.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns in the table.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Clone returns a deep copy of the table. Mutating the clone never affects
// the original.
func (t *Table) Clone() *Table {
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)

	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = CloneRow(row)
	}

	return &Table{Columns: cols, Rows: rows}
}

// CloneRow returns a copy of a single row.
func CloneRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// CloneRows returns a deep copy of a row slice.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = CloneRow(row)
	}
	return out
}
