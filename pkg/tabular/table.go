package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

const byteOrderMark = "\ufeff"

// Table is a fully materialised tabular source: a header and its data rows.
// Columns are addressed by name, never by position.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	columns map[string]int
}

// NewTable builds a table from an in-memory header and rows, checking that
// every row has exactly one cell per header column.
func NewTable(name string, header []string, rows [][]string) (*Table, error) {
	t := &Table{
		Name:    name,
		Header:  make([]string, len(header)),
		columns: make(map[string]int, len(header)),
	}

	for i, column := range header {
		column = strings.TrimSpace(strings.TrimPrefix(column, byteOrderMark))
		t.Header[i] = column

		if _, exists := t.columns[column]; !exists {
			t.columns[column] = i
		}
	}

	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &SchemaError{Table: name, Line: i + 2, Want: len(header), Got: len(row)}
		}
	}
	t.Rows = rows

	return t, nil
}

// Read consumes a CSV stream whose first record is the header.
// An empty stream yields a table with no columns and no rows.
func Read(name string, reader io.Reader) (*Table, error) {
	csvReader := gocsv.DefaultCSVReader(reader)

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return NewTable(name, []string{}, nil)
	}
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
			return nil, &SchemaError{Table: name, Line: parseErr.StartLine, Want: len(header), Got: len(row)}
		}
		if err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	return NewTable(name, header, rows)
}

// Column returns the position of the named column.
func (t *Table) Column(name string) (int, bool) {
	index, exists := t.columns[name]
	return index, exists
}

func (t *Table) HasColumn(name string) bool {
	_, exists := t.columns[name]
	return exists
}

// Require fails with a SchemaError naming the first absent column.
func (t *Table) Require(columns ...string) error {
	for _, column := range columns {
		if !t.HasColumn(column) {
			return &SchemaError{Table: t.Name, Column: column}
		}
	}

	return nil
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Record returns the i'th data row.
func (t *Table) Record(i int) Record {
	return Record{table: t, Line: i + 2, cells: t.Rows[i]}
}

// Records returns every data row in file order.
func (t *Table) Records() []Record {
	records := make([]Record, len(t.Rows))
	for i := range t.Rows {
		records[i] = t.Record(i)
	}

	return records
}

// Reader exposes the table as a gocsv.CSVReader so it can be decoded into
// tagged structs with gocsv.UnmarshalCSV.
func (t *Table) Reader() gocsv.CSVReader {
	return &tableReader{table: t, position: -1}
}

type tableReader struct {
	table    *Table
	position int
}

func (r *tableReader) Read() ([]string, error) {
	var row []string
	if r.position < 0 {
		row = r.table.Header
	} else if r.position < len(r.table.Rows) {
		row = r.table.Rows[r.position]
	} else {
		return nil, io.EOF
	}
	r.position++

	return row, nil
}

func (r *tableReader) ReadAll() ([][]string, error) {
	var all [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			return all, nil
		}
		all = append(all, row)
	}
}
