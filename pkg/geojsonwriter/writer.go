package geojsonwriter

import (
	"encoding/json"
	"io"

	geojson "github.com/paulmach/go.geojson"
	"github.com/shopspring/decimal"
	"github.com/travigo/gtfs2geojson/pkg/resolver"
)

// DefaultCRS names WGS84 with longitude first. The feed coordinates are
// assumed to be in it; nothing checks that they are.
const DefaultCRS = "urn:ogc:def:crs:OGC:1.3:CRS84"

type Writer struct {
	// CRS is written as a named crs member of the collection, omitted when empty.
	CRS    string
	Indent bool
}

func NewWriter() *Writer {
	return &Writer{CRS: DefaultCRS}
}

// Collection is a go.geojson FeatureCollection that remembers the decimal
// positions of each feature, so the written coordinates keep the text they
// were read with.
type Collection struct {
	*geojson.FeatureCollection

	positions []interface{}
}

func (c *Collection) add(feature *geojson.Feature, positions interface{}) {
	c.AddFeature(feature)
	c.positions = append(c.positions, positions)
}

type encodedCollection struct {
	Type        string                 `json:"type"`
	BoundingBox []float64              `json:"bbox,omitempty"`
	Features    []encodedFeature       `json:"features"`
	CRS         map[string]interface{} `json:"crs,omitempty"`
}

type encodedFeature struct {
	ID          interface{}            `json:"id,omitempty"`
	Type        string                 `json:"type"`
	BoundingBox []float64              `json:"bbox,omitempty"`
	Geometry    interface{}            `json:"geometry"`
	Properties  map[string]interface{} `json:"properties"`
}

type encodedGeometry struct {
	Type        geojson.GeometryType `json:"type"`
	Coordinates interface{}          `json:"coordinates"`
}

func (c Collection) MarshalJSON() ([]byte, error) {
	features := make([]encodedFeature, len(c.Features))

	for i, feature := range c.Features {
		var geometry interface{} = feature.Geometry
		// Features added straight to the embedded collection have no decimal positions
		if i < len(c.positions) && feature.Geometry != nil {
			geometry = encodedGeometry{Type: feature.Geometry.Type, Coordinates: c.positions[i]}
		}

		features[i] = encodedFeature{
			ID:          feature.ID,
			Type:        feature.Type,
			BoundingBox: feature.BoundingBox,
			Geometry:    geometry,
			Properties:  feature.Properties,
		}
	}

	return json.Marshal(encodedCollection{
		Type:        c.Type,
		BoundingBox: c.BoundingBox,
		Features:    features,
		CRS:         c.CRS,
	})
}

// RouteCollection encodes each route as a LineString feature identified by
// its route_id.
func (w *Writer) RouteCollection(features []resolver.RouteFeature) *Collection {
	collection := w.newCollection()

	for _, route := range features {
		coordinates := make([][]float64, len(route.Coordinates))
		positions := make([][]json.Number, len(route.Coordinates))
		for i, coordinate := range route.Coordinates {
			coordinates[i] = position(coordinate)
			positions[i] = exactPosition(coordinate)
		}

		feature := geojson.NewLineStringFeature(coordinates)
		feature.ID = route.RouteID
		feature.Properties = properties(route.Properties)

		collection.add(feature, positions)
	}

	return collection
}

// StopCollection encodes each stop as a Point feature identified by its stop_id.
func (w *Writer) StopCollection(features []resolver.StopFeature) *Collection {
	collection := w.newCollection()

	for _, stop := range features {
		feature := geojson.NewPointFeature(position(stop.Coordinate))
		feature.ID = stop.StopID
		feature.Properties = properties(stop.Properties)

		collection.add(feature, exactPosition(stop.Coordinate))
	}

	return collection
}

func (w *Writer) Write(out io.Writer, collection *Collection) error {
	encoder := json.NewEncoder(out)
	if w.Indent {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(collection)
}

func (w *Writer) newCollection() *Collection {
	collection := &Collection{FeatureCollection: geojson.NewFeatureCollection()}

	if w.CRS != "" {
		collection.CRS = map[string]interface{}{
			"type": "name",
			"properties": map[string]interface{}{
				"name": w.CRS,
			},
		}
	}

	return collection
}

func position(coordinate resolver.Coordinate) []float64 {
	return []float64{coordinate.Longitude.InexactFloat64(), coordinate.Latitude.InexactFloat64()}
}

func exactPosition(coordinate resolver.Coordinate) []json.Number {
	return []json.Number{exactNumber(coordinate.Longitude), exactNumber(coordinate.Latitude)}
}

// exactNumber writes a decimal with as many fractional digits as it was
// parsed with, trailing zeros included.
func exactNumber(number decimal.Decimal) json.Number {
	if exponent := number.Exponent(); exponent < 0 {
		return json.Number(number.StringFixed(-exponent))
	}

	return json.Number(number.String())
}

// properties copies the attribute map, writing decimals as JSON numbers with
// their exact text.
func properties(attributes map[string]interface{}) map[string]interface{} {
	converted := make(map[string]interface{}, len(attributes))

	for key, value := range attributes {
		if number, ok := value.(decimal.Decimal); ok {
			converted[key] = exactNumber(number)
			continue
		}
		converted[key] = value
	}

	return converted
}
