package resolver

import "fmt"

// MalformedTimeValue marks a stop_times row whose arrival or departure could
// not be parsed. The row is left out of the trip's span, nothing else.
type MalformedTimeValue struct {
	TripID string
	Line   int
	Column string
	Value  string
}

func (e *MalformedTimeValue) Error() string {
	return fmt.Sprintf("stop_times line %d: trip %s has malformed %s %q", e.Line, e.TripID, e.Column, e.Value)
}

func (e *MalformedTimeValue) Kind() string {
	return "malformed-time"
}

// MalformedValue marks any other row whose cell could not be parsed
// (a sequence number or a coordinate). The row is skipped.
type MalformedValue struct {
	Table  string
	Line   int
	Column string
	Value  string
}

func (e *MalformedValue) Error() string {
	return fmt.Sprintf("%s line %d: malformed %s %q", e.Table, e.Line, e.Column, e.Value)
}

func (e *MalformedValue) Kind() string {
	return "malformed-value"
}

// MissingShapeForRoute is reported for a route no trip gives a shape to.
type MissingShapeForRoute struct {
	RouteID string
}

func (e *MissingShapeForRoute) Error() string {
	return fmt.Sprintf("missing shape for route %s", e.RouteID)
}

func (e *MissingShapeForRoute) Kind() string {
	return "missing-shape"
}

// GeometryError is reported when the shape chosen for a route has no points
// in the shapes table.
type GeometryError struct {
	RouteID string
	ShapeID string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("route %s: chosen shape %s has no geometry", e.RouteID, e.ShapeID)
}

func (e *GeometryError) Kind() string {
	return "geometry"
}
