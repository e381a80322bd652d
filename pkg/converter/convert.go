package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs2geojson/pkg/feed"
	"github.com/travigo/gtfs2geojson/pkg/geojsonwriter"
	"github.com/travigo/gtfs2geojson/pkg/resolver"
)

// Options describe one conversion. Source may be empty when every needed
// table is given in Files.
type Options struct {
	Source string
	Files  map[string]string
	Output string

	CRS    string
	Indent bool
}

// Summary counts what a route conversion produced.
type Summary struct {
	Routes      int
	Features    int
	Diagnostics map[string]int
}

func (o Options) loadFeed(ctx context.Context, tables ...string) (*feed.Feed, error) {
	gtfsFeed := feed.New()

	if o.Source != "" {
		var err error
		gtfsFeed, err = feed.Open(ctx, o.Source, tables...)
		if err != nil {
			return nil, err
		}
	}

	for _, name := range tables {
		filePath := o.Files[name]
		if filePath == "" {
			continue
		}

		if err := gtfsFeed.LoadFile(name, filePath); err != nil {
			return nil, err
		}
	}

	return gtfsFeed, nil
}

func (o Options) writer() *geojsonwriter.Writer {
	return &geojsonwriter.Writer{CRS: o.CRS, Indent: o.Indent}
}

// ConvertRoutes resolves one representative shape per route and writes the
// routes as a GeoJSON FeatureCollection.
func ConvertRoutes(ctx context.Context, options Options) (Summary, error) {
	gtfsFeed, err := options.loadFeed(ctx, feed.RouteTables...)
	if err != nil {
		return Summary{}, err
	}

	return convertRoutes(gtfsFeed, options)
}

func convertRoutes(gtfsFeed *feed.Feed, options Options) (Summary, error) {
	var tables resolver.Tables
	var err error
	if tables.Routes, err = gtfsFeed.Table(feed.Routes); err != nil {
		return Summary{}, err
	}
	if tables.Trips, err = gtfsFeed.Table(feed.Trips); err != nil {
		return Summary{}, err
	}
	if tables.Shapes, err = gtfsFeed.Table(feed.Shapes); err != nil {
		return Summary{}, err
	}
	if tables.StopTimes, err = gtfsFeed.Table(feed.StopTimes); err != nil {
		return Summary{}, err
	}

	log.Info().Int("length", tables.Routes.Len()).Msg("Starting Routes")

	reporter := &resolver.CollectingReporter{Next: resolver.LogReporter{}}
	features, err := resolver.Resolve(tables, reporter)
	if err != nil {
		return Summary{}, err
	}

	writer := options.writer()
	if err := writeOutput(options.Output, func(out io.Writer) error {
		return writer.Write(out, writer.RouteCollection(features))
	}); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Routes:      tables.Routes.Len(),
		Features:    len(features),
		Diagnostics: reporter.Counts(),
	}
	log.Info().
		Int("routes", summary.Routes).
		Int("features", summary.Features).
		Interface("diagnostics", summary.Diagnostics).
		Msg("Finished Routes")

	return summary, nil
}

// ConvertStops writes every stop as a GeoJSON point.
func ConvertStops(ctx context.Context, options Options) error {
	gtfsFeed, err := options.loadFeed(ctx, feed.Stops)
	if err != nil {
		return err
	}

	return convertStops(gtfsFeed, options)
}

func convertStops(gtfsFeed *feed.Feed, options Options) error {
	stops, err := gtfsFeed.Table(feed.Stops)
	if err != nil {
		return err
	}

	log.Info().Int("length", stops.Len()).Msg("Starting Stops")

	features, err := resolver.BuildStopFeatures(stops, resolver.LogReporter{})
	if err != nil {
		return err
	}

	writer := options.writer()
	if err := writeOutput(options.Output, func(out io.Writer) error {
		return writer.Write(out, writer.StopCollection(features))
	}); err != nil {
		return err
	}

	log.Info().Int("features", len(features)).Msg("Finished Stops")

	return nil
}

// writeOutput writes to the named file, or to stdout for "-".
func writeOutput(output string, write func(io.Writer) error) error {
	if output == "" || output == "-" {
		return write(os.Stdout)
	}

	if directory := filepath.Dir(output); directory != "." {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(output)
	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	return file.Close()
}
