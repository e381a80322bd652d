package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/gtfs2geojson/pkg/tabular"
)

func table(t *testing.T, name string, header []string, rows ...[]string) *tabular.Table {
	t.Helper()

	built, err := tabular.NewTable(name, header, rows)
	require.NoError(t, err)

	return built
}

func roundTripTables(t *testing.T, trips ...[]string) Tables {
	return Tables{
		StopTimes: table(t, "stop_times", []string{"trip_id", "arrival_time", "departure_time", "stop_id", "stop_sequence"},
			[]string{"T1", "08:00:00", "08:00:00", "S1", "1"},
			[]string{"T1", "08:20:00", "08:20:00", "S2", "2"},
			[]string{"T2", "09:00:00", "09:00:00", "S1", "1"},
			[]string{"T2", "09:45:00", "09:45:00", "S2", "2"},
			[]string{"T3", "10:00:00", "10:00:00", "S1", "1"},
			[]string{"T3", "10:05:00", "10:05:00", "S2", "2"},
		),
		Shapes: table(t, "shapes", []string{"shape_id", "shape_pt_lat", "shape_pt_lon", "shape_pt_sequence"},
			[]string{"A", "-33.3", "151.3", "3"},
			[]string{"B", "-34.1", "150.1", "1"},
			[]string{"A", "-33.1", "151.1", "1"},
			[]string{"B", "-34.2", "150.2", "2"},
			[]string{"A", "-33.2", "151.2", "2"},
		),
		Trips:  table(t, "trips", []string{"route_id", "service_id", "trip_id", "shape_id"}, trips...),
		Routes: table(t, "routes", []string{"route_id", "route_short_name", "route_type"}, []string{"R1", "1", "3"}),
	}
}

func TestResolve(t *testing.T) {
	t.Run("most referenced shape represents the route", func(t *testing.T) {
		reporter := &CollectingReporter{}
		features, err := Resolve(roundTripTables(t,
			[]string{"R1", "WKDY", "T1", "A"},
			[]string{"R1", "WKDY", "T2", "B"},
			[]string{"R1", "WKDY", "T3", "A"},
		), reporter)
		require.NoError(t, err)

		require.Len(t, features, 1)
		feature := features[0]
		assert.Equal(t, "R1", feature.RouteID)
		assert.Equal(t, [][2]string{
			{"151.1", "-33.1"},
			{"151.2", "-33.2"},
			{"151.3", "-33.3"},
		}, coordinateStrings(&Shape{Coordinates: feature.Coordinates}))
		assert.Equal(t, 2, feature.Properties["shape_refs"])
		assert.Equal(t, "A", feature.Properties["shape_id"])
		assert.Equal(t, 1200.0, feature.Properties["duration_sec"])
		assert.Empty(t, reporter.Diagnostics())
	})

	t.Run("duration comes from the first trip only", func(t *testing.T) {
		first, err := Resolve(roundTripTables(t,
			[]string{"R1", "WKDY", "T1", "A"},
			[]string{"R1", "WKDY", "T2", "B"},
			[]string{"R1", "WKDY", "T3", "A"},
		), &CollectingReporter{})
		require.NoError(t, err)

		reordered, err := Resolve(roundTripTables(t,
			[]string{"R1", "WKDY", "T1", "A"},
			[]string{"R1", "WKDY", "T3", "A"},
			[]string{"R1", "WKDY", "T2", "B"},
		), &CollectingReporter{})
		require.NoError(t, err)

		assert.Equal(t, first[0].Properties["duration_sec"], reordered[0].Properties["duration_sec"])
		assert.Equal(t, "PT20M", reordered[0].Properties["duration"])
	})

	t.Run("schema errors abort the run", func(t *testing.T) {
		tables := roundTripTables(t, []string{"R1", "WKDY", "T1", "A"})
		tables.Trips = table(t, "trips", []string{"route_id", "trip_id"}, []string{"R1", "T1"})

		_, err := Resolve(tables, &CollectingReporter{})

		var schemaErr *tabular.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "trips", schemaErr.Table)
	})
}
