package resolver

import (
	"github.com/shopspring/decimal"
	"github.com/travigo/gtfs2geojson/pkg/tabular"
)

type StopFeature struct {
	StopID     string
	Coordinate Coordinate
	Properties map[string]interface{}
}

// BuildStopFeatures turns every stop into a point carrying the stop's other
// columns as properties.
func BuildStopFeatures(stops *tabular.Table, reporter Reporter) ([]StopFeature, error) {
	if err := stops.Require("stop_id", "stop_lat", "stop_lon"); err != nil {
		return nil, err
	}

	features := make([]StopFeature, 0, stops.Len())

	for _, record := range stops.Records() {
		latitude, err := decimal.NewFromString(record.Get("stop_lat"))
		if err != nil {
			reporter.Report(&MalformedValue{Table: stops.Name, Line: record.Line, Column: "stop_lat", Value: record.Get("stop_lat")})
			continue
		}
		longitude, err := decimal.NewFromString(record.Get("stop_lon"))
		if err != nil {
			reporter.Report(&MalformedValue{Table: stops.Name, Line: record.Line, Column: "stop_lon", Value: record.Get("stop_lon")})
			continue
		}

		features = append(features, StopFeature{
			StopID:     record.Get("stop_id"),
			Coordinate: Coordinate{Longitude: longitude, Latitude: latitude},
			Properties: Attributes(record, "stop_lat", "stop_lon"),
		})
	}

	return features, nil
}
