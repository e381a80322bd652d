package converter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/gtfs2geojson/pkg/datasets"
	"github.com/travigo/gtfs2geojson/pkg/feed"
	"github.com/travigo/gtfs2geojson/pkg/geojsonwriter"
)

// ConvertDataset runs every conversion a registered dataset asks for.
func ConvertDataset(ctx context.Context, dataset datasets.DataSet, indent bool) error {
	logger := log.With().Str("dataset", dataset.Identifier).Logger()

	options := Options{
		Source: dataset.Source,
		CRS:    geojsonwriter.DefaultCRS,
		Indent: indent,
	}
	if dataset.CRS != nil {
		options.CRS = *dataset.CRS
	}

	if !dataset.SupportedObjects.Routes && !dataset.SupportedObjects.Stops {
		logger.Warn().Msg("Dataset supports no objects, nothing to convert")
		return nil
	}

	var tables []string
	if dataset.SupportedObjects.Routes {
		tables = append(tables, feed.RouteTables...)
	}
	if dataset.SupportedObjects.Stops {
		tables = append(tables, feed.Stops)
	}

	// One fetch serves every object type
	gtfsFeed, err := options.loadFeed(ctx, tables...)
	if err != nil {
		return fmt.Errorf("%s: %w", dataset.Identifier, err)
	}

	if dataset.SupportedObjects.Routes {
		options.Output = dataset.Output.Routes
		if _, err := convertRoutes(gtfsFeed, options); err != nil {
			return fmt.Errorf("%s routes: %w", dataset.Identifier, err)
		}
	}

	if dataset.SupportedObjects.Stops {
		options.Output = dataset.Output.Stops
		if err := convertStops(gtfsFeed, options); err != nil {
			return fmt.Errorf("%s stops: %w", dataset.Identifier, err)
		}
	}

	logger.Info().Msg("Converted dataset")

	return nil
}

// ConvertDatasets converts several datasets at once. A failing dataset does
// not stop the others; all failures are returned together.
func ConvertDatasets(ctx context.Context, all []datasets.DataSet, concurrency int, indent bool) error {
	if concurrency < 1 {
		concurrency = 1
	}

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(concurrency)

	for _, dataset := range all {
		p.Go(func(ctx context.Context) error {
			return ConvertDataset(ctx, dataset, indent)
		})
	}

	return p.Wait()
}
