package converter

import (
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs2geojson/pkg/datasets"
	"github.com/travigo/gtfs2geojson/pkg/feed"
	"github.com/travigo/gtfs2geojson/pkg/geojsonwriter"
	"github.com/urfave/cli/v2"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output GeoJSON file, - for stdout",
			Value:   "-",
		},
		&cli.StringFlag{
			Name:    "crs",
			Usage:   "Named CRS written on the collection, empty to leave it out",
			Value:   geojsonwriter.DefaultCRS,
			EnvVars: []string{"GTFS2GEOJSON_CRS"},
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Indent the output",
		},
	}
}

func feedFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "feed",
		Usage:   "GTFS zip archive, directory or http(s) URL",
		EnvVars: []string{"GTFS2GEOJSON_FEED"},
	}
}

func tableFlag(name string, table string) cli.Flag {
	return &cli.StringFlag{
		Name:  name,
		Usage: "Path to the agency's `" + table + ".txt` file, overriding the feed",
	}
}

func optionsFromContext(c *cli.Context, tableFlags map[string]string) Options {
	files := map[string]string{}
	for flag, table := range tableFlags {
		files[table] = c.String(flag)
	}

	return Options{
		Source: c.String("feed"),
		Files:  files,
		Output: c.String("output"),
		CRS:    c.String("crs"),
		Indent: c.Bool("pretty"),
	}
}

func RegisterCLI() *cli.Command {
	routeTableFlags := map[string]string{
		"routes":     feed.Routes,
		"trips":      feed.Trips,
		"shapes":     feed.Shapes,
		"stop-times": feed.StopTimes,
	}

	return &cli.Command{
		Name:  "convert",
		Usage: "Convert GTFS feeds into GeoJSON",
		Subcommands: []*cli.Command{
			{
				Name:  "routes",
				Usage: "Write one LineString per route using its most common shape",
				Flags: append([]cli.Flag{
					feedFlag(),
					tableFlag("routes", feed.Routes),
					tableFlag("trips", feed.Trips),
					tableFlag("shapes", feed.Shapes),
					tableFlag("stop-times", feed.StopTimes),
				}, outputFlags()...),
				Action: func(c *cli.Context) error {
					_, err := ConvertRoutes(c.Context, optionsFromContext(c, routeTableFlags))
					return err
				},
			},
			{
				Name:  "stops",
				Usage: "Write one Point per stop",
				Flags: append([]cli.Flag{
					feedFlag(),
					tableFlag("stops", feed.Stops),
				}, outputFlags()...),
				Action: func(c *cli.Context) error {
					return ConvertStops(c.Context, optionsFromContext(c, map[string]string{"stops": feed.Stops}))
				},
			},
			{
				Name:  "dataset",
				Usage: "Convert a registered dataset",
				Flags: []cli.Flag{
					datasetsDirFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "Print the dataset definition before converting",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Indent the output",
					},
				},
				Action: func(c *cli.Context) error {
					dataset, err := datasets.GetDataset(c.String("datasets-dir"), c.String("id"))
					if err != nil {
						return err
					}

					if c.Bool("dump") {
						pretty.Println(dataset)
					}

					return ConvertDataset(c.Context, dataset, c.Bool("pretty"))
				},
			},
			{
				Name:  "datasets",
				Usage: "Convert every registered dataset",
				Flags: []cli.Flag{
					datasetsDirFlag(),
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of datasets converted at once",
						Value: 4,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Indent the output",
					},
				},
				Action: func(c *cli.Context) error {
					registered, err := datasets.GetRegisteredDataSets(c.String("datasets-dir"))
					if err != nil {
						return err
					}

					log.Info().Int("length", len(registered)).Msg("Starting Datasets")

					return ConvertDatasets(c.Context, registered, c.Int("concurrency"), c.Bool("pretty"))
				},
			},
		},
	}
}

func datasetsDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "datasets-dir",
		Usage:   "Directory of dataset definition yaml files",
		Value:   "data/datasources/",
		EnvVars: []string{"GTFS2GEOJSON_DATASETS_DIR"},
	}
}
