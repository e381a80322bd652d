package feed

import (
	"archive/zip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/gtfs2geojson/pkg/tabular"
)

var testFiles = map[string]string{
	"gtfs/routes.txt":     "route_id,route_short_name\nR1,1\n",
	"gtfs/Trips.txt":      "route_id,trip_id,shape_id\nR1,T1,A\n",
	"gtfs/shapes.txt":     "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\nA,1,2,1\n",
	"gtfs/stop_times.txt": "trip_id,arrival_time,departure_time,stop_sequence\nT1,08:00:00,08:00:00,1\n",
	"gtfs/agency.txt":     "agency_id,agency_name\nA,Agency\n",
}

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()

	archivePath := filepath.Join(t.TempDir(), "feed.zip")
	file, err := os.Create(archivePath)
	require.NoError(t, err)
	defer file.Close()

	writer := zip.NewWriter(file)
	for name, contents := range files {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return archivePath
}

func TestOpenZip(t *testing.T) {
	feed, err := Open(context.Background(), writeZip(t, testFiles), RouteTables...)
	require.NoError(t, err)

	assert.Len(t, feed.Tables, 4)

	trips, err := feed.Table(Trips)
	require.NoError(t, err)
	assert.Equal(t, "T1", trips.Record(0).Get("trip_id"))

	_, err = feed.Table(Stops)
	var schemaErr *tabular.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, Stops, schemaErr.Table)
}

func TestOpenDirectory(t *testing.T) {
	directory := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(directory, "stops.txt"), []byte("stop_id,stop_lat,stop_lon\nS1,1,2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(directory, "routes.txt"), []byte("route_id\nR1\n"), 0o644))

	feed, err := Open(context.Background(), directory, Stops)
	require.NoError(t, err)

	assert.Contains(t, feed.Tables, Stops)
	assert.NotContains(t, feed.Tables, Routes)
}

func TestOpenMalformedTable(t *testing.T) {
	_, err := Open(context.Background(), writeZip(t, map[string]string{
		"routes.txt": "route_id,route_short_name\nR1\n",
	}), Routes)

	var schemaErr *tabular.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, 2, schemaErr.Line)
}

func TestLoadFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "my-routes.csv")
	require.NoError(t, os.WriteFile(filePath, []byte("route_id\nR9\n"), 0o644))

	feed := New()
	require.NoError(t, feed.LoadFile(Routes, filePath))

	routes, err := feed.Table(Routes)
	require.NoError(t, err)
	assert.Equal(t, "R9", routes.Record(0).Get("route_id"))
}

func TestOpenURL(t *testing.T) {
	archive, err := os.ReadFile(writeZip(t, testFiles))
	require.NoError(t, err)

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/flaky.zip":
			if requests.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write(archive)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Run("retries server errors", func(t *testing.T) {
		feed, err := Open(context.Background(), server.URL+"/flaky.zip", Routes)
		require.NoError(t, err)

		assert.Contains(t, feed.Tables, Routes)
		assert.Equal(t, int32(2), requests.Load())
	})

	t.Run("client errors are permanent", func(t *testing.T) {
		_, err := Open(context.Background(), server.URL+"/missing.zip", Routes)
		assert.ErrorContains(t, err, "404")
	})
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "stop_times", tableName("STOP_TIMES.TXT"))
	assert.Equal(t, "", tableName("readme.md"))
	assert.True(t, isValidUrl("https://example.com/gtfs.zip"))
	assert.False(t, isValidUrl("/data/gtfs.zip"))
}
