package tabular

// Record is one data row of a Table with its cells addressable by column name.
type Record struct {
	table *Table
	Line  int
	cells []string
}

// Get returns the cell for the named column, or "" if the table has no such column.
func (r Record) Get(column string) string {
	value, _ := r.Lookup(column)
	return value
}

func (r Record) Lookup(column string) (string, bool) {
	index, exists := r.table.columns[column]
	if !exists {
		return "", false
	}

	return r.cells[index], true
}

// Each calls fn for every column of the row in header order.
func (r Record) Each(fn func(column string, value string)) {
	for i, column := range r.table.Header {
		fn(column, r.cells[i])
	}
}
