package models

// Geometry kinds for tagged features from the OSM staging layer.
const (
	GeomPoint   = "point"
	GeomLine    = "line"
	GeomPolygon = "polygon"
)

// TaggedFeature represents one raw OSM-derived object: a geometry plus an
// open-ended tag set. Classification assigns it to exactly one category or
// drops it.
type TaggedFeature struct {
	ID       int64             `json:"id" db:"id"`
	Country  string            `json:"country" db:"country"`
	GeomType string            `json:"geom_type" db:"geom_type"`
	// Coords holds the geometry vertices as (lat, lon) pairs. A point has one
	// vertex; a polygon repeats its first vertex last or not, both accepted.
	Coords []Coordinate      `json:"coords" db:"-"`
	Tags   map[string]string `json:"tags" db:"-"`
}

// Coordinate is a (lat, lon) pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Centroid returns the arithmetic centroid of the feature's vertices. It is
// the representative point used for cell assignment.
func (f *TaggedFeature) Centroid() Coordinate {
	if len(f.Coords) == 0 {
		return Coordinate{}
	}
	var sumLat, sumLon float64
	for _, c := range f.Coords {
		sumLat += c.Lat
		sumLon += c.Lon
	}
	n := float64(len(f.Coords))
	return Coordinate{Lat: sumLat / n, Lon: sumLon / n}
}
