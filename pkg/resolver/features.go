package resolver

import (
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/gtfs2geojson/pkg/tabular"
)

// RouteFeature is one output record: a route's chosen polyline plus its
// attributes and the derived statistics.
type RouteFeature struct {
	RouteID     string
	ShapeID     string
	Coordinates []Coordinate
	Properties  map[string]interface{}
}

// Attributes keeps every non-empty cell of a row keyed by column name.
func Attributes(record tabular.Record, skip ...string) map[string]interface{} {
	attributes := map[string]interface{}{}

	record.Each(func(column string, value string) {
		if value == "" {
			return
		}
		for _, skipped := range skip {
			if skipped == column {
				return
			}
		}

		attributes[column] = value
	})

	return attributes
}

// BuildRouteFeatures joins the routes table with the resolved indices, one
// feature per route in file order. Routes without a usable shape are
// reported and left out.
func BuildRouteFeatures(routes *tabular.Table, index *VotingIndex, shapes *ShapeSet, spans map[string]*TripTimeSpan, reporter Reporter) ([]RouteFeature, error) {
	if err := routes.Require("route_id"); err != nil {
		return nil, err
	}

	features := make([]RouteFeature, 0, routes.Len())

	for _, record := range routes.Records() {
		routeID := record.Get("route_id")
		properties := Attributes(record)

		candidate, sampleTrip, ok := index.Selection(routeID)
		if !ok {
			reporter.Report(&MissingShapeForRoute{RouteID: routeID})
			continue
		}

		shape, exists := shapes.Shapes[candidate.ShapeID]
		if !exists || len(shape.Coordinates) == 0 {
			reporter.Report(&GeometryError{RouteID: routeID, ShapeID: candidate.ShapeID})
			continue
		}

		properties["shape_id"] = candidate.ShapeID
		properties["shape_refs"] = candidate.References

		if length, ok := shapes.Length(candidate.ShapeID); ok {
			properties["shape_length"] = length
		}

		if duration, ok := spans[sampleTrip].Duration(); ok {
			properties["duration_sec"] = duration.Seconds()
			if duration >= 0 {
				properties["duration"] = isoDuration(int(duration.Seconds())).String()
			}
		}

		features = append(features, RouteFeature{
			RouteID:     routeID,
			ShapeID:     candidate.ShapeID,
			Coordinates: shape.Coordinates,
			Properties:  properties,
		})
	}

	return features, nil
}

func isoDuration(seconds int) iso8601.Duration {
	return iso8601.Duration{
		TH: seconds / 3600,
		TM: seconds % 3600 / 60,
		TS: seconds % 60,
	}
}
