package classify

import (
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
	"github.com/jengzang/hexmetrics-backend-go/internal/spatial"
)

// ClassifiedFeature is a raw tagged object after classification: exactly one
// category plus a geometry-derived magnitude.
type ClassifiedFeature struct {
	FeatureID int64
	Country   string
	Category  string
	Centroid  models.Coordinate

	// LengthM is the geodesic length for line geometries, 0 otherwise.
	LengthM float64
	// AreaM2 is the polygon area for polygon geometries, or the estimated
	// corridor area (length × category width) for line geometries. Points
	// contribute counts only and carry 0.
	AreaM2 float64
}

// Classifier assigns categories by evaluating an ordered rule list.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the given rule order.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify evaluates the rules in order against the feature's tags; the first
// match wins. Unmatched features are dropped (second return false), which is
// a data condition, not an error.
func (c *Classifier) Classify(f *models.TaggedFeature) (*ClassifiedFeature, bool) {
	for _, rule := range c.rules {
		if !rule.Match(f.Tags) {
			continue
		}

		out := &ClassifiedFeature{
			FeatureID: f.ID,
			Country:   f.Country,
			Category:  rule.Category,
			Centroid:  f.Centroid(),
		}

		switch f.GeomType {
		case models.GeomPolygon:
			out.AreaM2 = spatial.PolygonAreaM2(f.Coords)
		case models.GeomLine:
			out.LengthM = spatial.PolylineLengthMeters(f.Coords)
			out.AreaM2 = out.LengthM * rule.WidthM
		}

		return out, true
	}
	return nil, false
}
