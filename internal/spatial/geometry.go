package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// EarthRadiusMeters is the mean Earth radius used for all geodesic
// conversions.
const EarthRadiusMeters = 6371000.0

// PolylineLengthMeters returns the geodesic length of a vertex sequence in
// meters. Fewer than two vertices have zero length.
func PolylineLengthMeters(coords []models.Coordinate) float64 {
	var total float64
	for i := 1; i < len(coords); i++ {
		p1 := s2.LatLngFromDegrees(coords[i-1].Lat, coords[i-1].Lon)
		p2 := s2.LatLngFromDegrees(coords[i].Lat, coords[i].Lon)
		total += p1.Distance(p2).Radians() * EarthRadiusMeters
	}
	return total
}

// PolygonAreaM2 returns the geodesic area of a vertex ring in m². The ring
// may or may not repeat its first vertex; both forms are accepted. Fewer than
// three distinct vertices have zero area.
func PolygonAreaM2(coords []models.Coordinate) float64 {
	ring := coords
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return 0
	}

	points := make([]s2.Point, 0, len(ring))
	for _, c := range ring {
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)))
	}

	loop := s2.LoopFromPoints(points)
	// Normalize so the loop encloses the smaller of the two regions the ring
	// splits the sphere into; staging geometries carry no winding guarantee.
	loop.Normalize()
	return loop.Area() * EarthRadiusMeters * EarthRadiusMeters
}
