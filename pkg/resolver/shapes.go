package resolver

import (
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/travigo/gtfs2geojson/pkg/tabular"
	"golang.org/x/exp/maps"
)

// Coordinate keeps the feed's decimal text exactly, longitude first.
type Coordinate struct {
	Longitude decimal.Decimal
	Latitude  decimal.Decimal
}

type Shape struct {
	ID          string
	Coordinates []Coordinate

	// MaxDistance is the largest shape_dist_traveled seen on any row of the
	// shape, not necessarily the last one. Nil when no row carried one.
	MaxDistance *decimal.Decimal
}

// ShapeSet is the assembled output of the shapes table. HasDistance records
// whether the table had a shape_dist_traveled column at all.
type ShapeSet struct {
	Shapes      map[string]*Shape
	HasDistance bool
}

// AssembleShapes orders the points of every shape by shape_pt_sequence. A
// repeated sequence within one shape is a feed error; the later row wins.
func AssembleShapes(shapes *tabular.Table, reporter Reporter) (*ShapeSet, error) {
	if err := shapes.Require("shape_id", "shape_pt_lat", "shape_pt_lon", "shape_pt_sequence"); err != nil {
		return nil, err
	}

	set := &ShapeSet{
		Shapes:      map[string]*Shape{},
		HasDistance: shapes.HasColumn("shape_dist_traveled"),
	}

	points := map[string]map[int]Coordinate{}
	maxDistances := map[string]decimal.Decimal{}

	for _, record := range shapes.Records() {
		shapeID := record.Get("shape_id")

		sequence, err := strconv.Atoi(record.Get("shape_pt_sequence"))
		if err != nil {
			reporter.Report(&MalformedValue{Table: shapes.Name, Line: record.Line, Column: "shape_pt_sequence", Value: record.Get("shape_pt_sequence")})
			continue
		}

		longitude, err := decimal.NewFromString(record.Get("shape_pt_lon"))
		if err != nil {
			reporter.Report(&MalformedValue{Table: shapes.Name, Line: record.Line, Column: "shape_pt_lon", Value: record.Get("shape_pt_lon")})
			continue
		}
		latitude, err := decimal.NewFromString(record.Get("shape_pt_lat"))
		if err != nil {
			reporter.Report(&MalformedValue{Table: shapes.Name, Line: record.Line, Column: "shape_pt_lat", Value: record.Get("shape_pt_lat")})
			continue
		}

		if value := record.Get("shape_dist_traveled"); value != "" {
			if distance, err := decimal.NewFromString(value); err == nil {
				if longest, seen := maxDistances[shapeID]; !seen || distance.GreaterThan(longest) {
					maxDistances[shapeID] = distance
				}
			} else {
				reporter.Report(&MalformedValue{Table: shapes.Name, Line: record.Line, Column: "shape_dist_traveled", Value: value})
			}
		}

		if _, exists := points[shapeID]; !exists {
			points[shapeID] = map[int]Coordinate{}
		}
		points[shapeID][sequence] = Coordinate{Longitude: longitude, Latitude: latitude}
	}

	for shapeID, shapeSequenceMap := range points {
		sequenceIDs := slices.Sorted(maps.Keys(shapeSequenceMap))

		shape := &Shape{
			ID:          shapeID,
			Coordinates: make([]Coordinate, 0, len(sequenceIDs)),
		}

		for _, sequenceID := range sequenceIDs {
			shape.Coordinates = append(shape.Coordinates, shapeSequenceMap[sequenceID])
		}
		if longest, seen := maxDistances[shapeID]; seen {
			shape.MaxDistance = &longest
		}

		set.Shapes[shapeID] = shape
	}

	return set, nil
}

// Length returns the feed declared length of the shape, only when the feed
// has a distance column and the shape carried at least one distance.
func (s *ShapeSet) Length(shapeID string) (decimal.Decimal, bool) {
	shape, exists := s.Shapes[shapeID]
	if !s.HasDistance || !exists || shape.MaxDistance == nil {
		return decimal.Decimal{}, false
	}

	return *shape.MaxDistance, true
}
