package feed

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs2geojson/pkg/tabular"
)

const (
	Routes    = "routes"
	Trips     = "trips"
	Shapes    = "shapes"
	StopTimes = "stop_times"
	Stops     = "stops"
)

// RouteTables are the tables needed to build route features.
var RouteTables = []string{Routes, Trips, Shapes, StopTimes}

// Feed holds the materialised tables of a GTFS feed, keyed by table name
// without the .txt extension.
type Feed struct {
	Tables map[string]*tabular.Table
}

func New() *Feed {
	return &Feed{Tables: map[string]*tabular.Table{}}
}

// Open loads the wanted tables from a zip archive, a directory of .txt files
// or an http(s) URL pointing at a zip archive. Tables the feed does not
// contain are simply absent; Table reports them.
func Open(ctx context.Context, source string, wanted ...string) (*Feed, error) {
	if isValidUrl(source) {
		tempFile, err := download(ctx, source)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tempFile)

		source = tempFile
	}

	fileInfo, err := os.Stat(source)
	if err != nil {
		return nil, err
	}

	feed := New()
	if fileInfo.IsDir() {
		err = feed.loadDirectory(source, wanted)
	} else {
		err = feed.loadZip(source, wanted)
	}
	if err != nil {
		return nil, err
	}

	return feed, nil
}

// LoadFile reads a single table from a standalone file, replacing any table
// of the same name.
func (f *Feed) LoadFile(name string, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return f.load(name, filePath, file)
}

// Table returns the named table or a SchemaError if the feed lacks it.
func (f *Feed) Table(name string) (*tabular.Table, error) {
	table, exists := f.Tables[name]
	if !exists {
		return nil, &tabular.SchemaError{Table: name}
	}

	return table, nil
}

func (f *Feed) load(name string, fileName string, reader io.Reader) error {
	log.Info().Str("file", fileName).Msg("Loading file")

	table, err := tabular.Read(name, reader)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", fileName, err)
	}

	f.Tables[name] = table
	log.Debug().Str("table", name).Int("length", table.Len()).Msg("Loaded table")

	return nil
}

func (f *Feed) loadZip(archivePath string, wanted []string) error {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	for _, zipFile := range archive.File {
		fileName := zipFile.Name
		name := tableName(path.Base(fileName))

		if zipFile.FileInfo().IsDir() || !slices.Contains(wanted, name) {
			log.Debug().Str("file", fileName).Msg("Skipping gtfs file")
			continue
		}

		file, err := zipFile.Open()
		if err != nil {
			return err
		}

		err = f.load(name, fileName, file)
		file.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

func (f *Feed) loadDirectory(directory string, wanted []string) error {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := tableName(entry.Name())
		if entry.IsDir() || !slices.Contains(wanted, name) {
			continue
		}

		if err := f.LoadFile(name, filepath.Join(directory, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

func tableName(fileName string) string {
	fileName = strings.ToLower(fileName)
	if !strings.HasSuffix(fileName, ".txt") {
		return ""
	}

	return strings.TrimSuffix(fileName, ".txt")
}

func isValidUrl(toTest string) bool {
	u, err := url.Parse(toTest)
	if err != nil || u.Host == "" {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}
