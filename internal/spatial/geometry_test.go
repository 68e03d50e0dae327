package spatial

import (
	"math"
	"testing"

	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

func TestPolylineLengthMeters(t *testing.T) {
	tests := []struct {
		name   string
		coords []models.Coordinate
		want   float64
		tol    float64
	}{
		{"empty", nil, 0, 0},
		{"single vertex", []models.Coordinate{{Lat: 40, Lon: -3}}, 0, 0},
		// One degree of latitude along a meridian.
		{"one degree meridian", []models.Coordinate{{Lat: 40, Lon: -3}, {Lat: 41, Lon: -3}}, 111195, 200},
		// Two half-degree segments should sum to the same length.
		{"split segments", []models.Coordinate{{Lat: 40, Lon: -3}, {Lat: 40.5, Lon: -3}, {Lat: 41, Lon: -3}}, 111195, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PolylineLengthMeters(tt.coords)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("PolylineLengthMeters = %f, want %f ± %f", got, tt.want, tt.tol)
			}
		})
	}
}

func TestPolygonAreaM2(t *testing.T) {
	// A 0.01° × 0.01° square near the equator is roughly 1.112 km on a side,
	// about 1.237 km².
	open := []models.Coordinate{
		{Lat: 0.0, Lon: 10.0},
		{Lat: 0.0, Lon: 10.01},
		{Lat: 0.01, Lon: 10.01},
		{Lat: 0.01, Lon: 10.0},
	}
	closed := append(append([]models.Coordinate{}, open...), open[0])

	wantM2 := 1.2364e6
	for _, tt := range []struct {
		name   string
		coords []models.Coordinate
	}{
		{"open ring", open},
		{"closed ring", closed},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := PolygonAreaM2(tt.coords)
			if math.Abs(got-wantM2)/wantM2 > 0.01 {
				t.Errorf("PolygonAreaM2 = %f, want about %f", got, wantM2)
			}
		})
	}
}

func TestPolygonAreaWindingInsensitive(t *testing.T) {
	cw := []models.Coordinate{
		{Lat: 0.0, Lon: 10.0},
		{Lat: 0.01, Lon: 10.0},
		{Lat: 0.01, Lon: 10.01},
		{Lat: 0.0, Lon: 10.01},
	}
	ccw := []models.Coordinate{
		{Lat: 0.0, Lon: 10.0},
		{Lat: 0.0, Lon: 10.01},
		{Lat: 0.01, Lon: 10.01},
		{Lat: 0.01, Lon: 10.0},
	}
	a1 := PolygonAreaM2(cw)
	a2 := PolygonAreaM2(ccw)
	if math.Abs(a1-a2)/a2 > 1e-9 {
		t.Errorf("winding changed area: %f vs %f", a1, a2)
	}
}

func TestPolygonAreaDegenerate(t *testing.T) {
	for _, coords := range [][]models.Coordinate{
		nil,
		{{Lat: 1, Lon: 1}},
		{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}},
		{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}, {Lat: 1, Lon: 1}},
	} {
		if got := PolygonAreaM2(coords); got != 0 {
			t.Errorf("PolygonAreaM2(%v) = %f, want 0", coords, got)
		}
	}
}
