package tabular

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	t.Run("columns addressed by name", func(t *testing.T) {
		table, err := Read("routes", strings.NewReader("route_id,route_short_name\nR1,1\nR2,2\n"))
		require.NoError(t, err)

		assert.Equal(t, 2, table.Len())
		index, exists := table.Column("route_short_name")
		assert.True(t, exists)
		assert.Equal(t, 1, index)

		record := table.Record(1)
		assert.Equal(t, "R2", record.Get("route_id"))
		assert.Equal(t, 3, record.Line)

		_, exists = record.Lookup("route_color")
		assert.False(t, exists)
		assert.Equal(t, "", record.Get("route_color"))
	})

	t.Run("byte order mark stripped from header", func(t *testing.T) {
		table, err := Read("trips", strings.NewReader("\ufefftrip_id,route_id\nT1,R1\n"))
		require.NoError(t, err)

		assert.True(t, table.HasColumn("trip_id"))
		assert.Equal(t, "T1", table.Record(0).Get("trip_id"))
	})

	t.Run("wrong cell count is a schema error", func(t *testing.T) {
		_, err := Read("shapes", strings.NewReader("shape_id,shape_pt_lat\nS1,1.0\nS1,1.0,extra\n"))

		var schemaErr *SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "shapes", schemaErr.Table)
		assert.Equal(t, 3, schemaErr.Line)
		assert.Equal(t, 2, schemaErr.Want)
		assert.Equal(t, 3, schemaErr.Got)
	})

	t.Run("empty stream", func(t *testing.T) {
		table, err := Read("stops", strings.NewReader(""))
		require.NoError(t, err)

		assert.Equal(t, 0, table.Len())
		assert.Error(t, table.Require("stop_id"))
	})
}

func TestNewTable(t *testing.T) {
	t.Run("short row is a schema error", func(t *testing.T) {
		_, err := NewTable("trips", []string{"trip_id", "route_id"}, [][]string{{"T1", "R1"}, {"T2"}})

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, 3, schemaErr.Line)
	})

	t.Run("caller header left untouched", func(t *testing.T) {
		header := []string{"\ufefftrip_id", " route_id "}
		table, err := NewTable("trips", header, [][]string{{"T1", "R1"}})
		require.NoError(t, err)

		assert.Equal(t, []string{"\ufefftrip_id", " route_id "}, header)
		assert.Equal(t, []string{"trip_id", "route_id"}, table.Header)
		assert.Equal(t, "R1", table.Record(0).Get("route_id"))
	})
}

func TestRequire(t *testing.T) {
	table, err := NewTable("stop_times", []string{"trip_id", "stop_sequence"}, nil)
	require.NoError(t, err)

	assert.NoError(t, table.Require("trip_id", "stop_sequence"))

	err = table.Require("trip_id", "arrival_time", "departure_time")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "arrival_time", schemaErr.Column)
	assert.Contains(t, err.Error(), `missing required column "arrival_time"`)
}

func TestRecordEach(t *testing.T) {
	table, err := NewTable("routes", []string{"route_id", "route_long_name"}, [][]string{{"R1", "Crosstown"}})
	require.NoError(t, err)

	var columns, values []string
	table.Record(0).Each(func(column string, value string) {
		columns = append(columns, column)
		values = append(values, value)
	})

	assert.Equal(t, []string{"route_id", "route_long_name"}, columns)
	assert.Equal(t, []string{"R1", "Crosstown"}, values)
}

func TestTableReader(t *testing.T) {
	table, err := NewTable("trips", []string{"trip_id"}, [][]string{{"T1"}, {"T2"}})
	require.NoError(t, err)

	reader := table.Reader()
	header, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"trip_id"}, header)

	rest, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"T1"}, {"T2"}}, rest)

	_, err = reader.Read()
	assert.Equal(t, io.EOF, err)
}
