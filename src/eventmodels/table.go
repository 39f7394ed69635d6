package eventmodels

import "fmt"

// Table is a header plus string cells, the shape exchanged with the sheet
// store. Short rows are padded with "" on access.
type Table struct {
	Header []string
	Rows   [][]string
}

type Rows [][]interface{}

func NewTable(header ...string) *Table {
	return &Table{Header: append([]string(nil), header...)}
}

// NewTableFromRows reads the first row as the header.
func NewTableFromRows(rows Rows) *Table {
	if len(rows) == 0 {
		return NewTable()
	}

	table := NewTable()
	for _, cell := range rows[0] {
		table.Header = append(table.Header, fmt.Sprint(cell))
	}

	for _, row := range rows[1:] {
		values := make([]string, len(row))
		for i, cell := range row {
			values[i] = fmt.Sprint(cell)
		}

		table.Rows = append(table.Rows, values)
	}

	return table
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Header) == 0
}

func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}

	return -1
}

func (t *Table) HasColumns(names ...string) bool {
	for _, name := range names {
		if t.ColumnIndex(name) < 0 {
			return false
		}
	}

	return true
}

func (t *Table) Value(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || idx >= len(t.Rows[row]) {
		return ""
	}

	return t.Rows[row][idx]
}

func (t *Table) Append(values ...string) {
	row := make([]string, len(t.Header))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// AddColumn appends a column filled with value; existing columns are left alone.
func (t *Table) AddColumn(name string, value string) {
	if t.ColumnIndex(name) >= 0 {
		return
	}

	t.Header = append(t.Header, name)
	for i := range t.Rows {
		for len(t.Rows[i]) < len(t.Header)-1 {
			t.Rows[i] = append(t.Rows[i], "")
		}

		t.Rows[i] = append(t.Rows[i], value)
	}
}

func (t *Table) SetValue(row int, column string, value string) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return
	}

	for len(t.Rows[row]) <= idx {
		t.Rows[row] = append(t.Rows[row], "")
	}

	t.Rows[row][idx] = value
}

func (t *Table) ToRows() Rows {
	rows := make(Rows, 0, len(t.Rows)+1)

	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	rows = append(rows, header)

	for _, r := range t.Rows {
		values := make([]interface{}, len(t.Header))
		for i := range t.Header {
			if i < len(r) {
				values[i] = r[i]
			} else {
				values[i] = ""
			}
		}

		rows = append(rows, values)
	}

	return rows
}
