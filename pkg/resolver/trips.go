package resolver

import (
	"github.com/gocarina/gocsv"
	"github.com/travigo/gtfs2geojson/pkg/tabular"
)

type Trip struct {
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	ID        string `csv:"trip_id"`
	Headsign  string `csv:"trip_headsign"`
	ShapeID   string `csv:"shape_id"`
}

// LoadTrips decodes the trips table in file order.
func LoadTrips(trips *tabular.Table) ([]Trip, error) {
	if err := trips.Require("route_id", "shape_id", "trip_id"); err != nil {
		return nil, err
	}

	var decoded []Trip
	if err := gocsv.UnmarshalCSV(trips.Reader(), &decoded); err != nil {
		return nil, err
	}

	return decoded, nil
}
