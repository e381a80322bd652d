package tabular

import "fmt"

// SchemaError is returned when a table cannot be trusted structurally: a
// required column (or the whole table) is missing, or a row has a different
// number of cells to the header. It aborts the run.
type SchemaError struct {
	Table  string
	Column string
	Line   int
	Want   int
	Got    int
}

func (e *SchemaError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("%s: missing required column %q", e.Table, e.Column)
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d has %d cells, header has %d", e.Table, e.Line, e.Got, e.Want)
	default:
		return fmt.Sprintf("%s: table not present in feed", e.Table)
	}
}

func (e *SchemaError) Kind() string {
	return "schema"
}
