package classify

import (
	"math"
	"testing"

	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

func pointFeature(tags map[string]string) *models.TaggedFeature {
	return &models.TaggedFeature{
		ID:       1,
		Country:  "ES",
		GeomType: models.GeomPoint,
		Coords:   []models.Coordinate{{Lat: 40.0, Lon: -3.0}},
		Tags:     tags,
	}
}

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		category string
	}{
		{"dam wins over waterway", map[string]string{"waterway": "dam"}, CatDam},
		{"weir is a dam", map[string]string{"waterway": "weir"}, CatDam},
		{"river is a waterway", map[string]string{"waterway": "river"}, CatWaterway},
		{"tree row wins over barrier", map[string]string{"natural": "tree_row", "barrier": "hedge"}, CatTreeRow},
		{"plain barrier", map[string]string{"barrier": "fence"}, CatBarrier},
		{"motorway is a major road", map[string]string{"highway": "motorway"}, CatMajorRoad},
		{"residential street is a road", map[string]string{"highway": "residential"}, CatRoad},
		{"tram is rail", map[string]string{"railway": "tram"}, CatRail},
		{"hydro plant", map[string]string{"power": "plant", "plant:source": "hydro"}, CatHydroPlant},
		{"solar plant via generator source", map[string]string{"power": "plant", "generator:source": "Solar"}, CatSolarPlant},
		{"untyped plant", map[string]string{"power": "plant"}, CatPowerPlant},
		{"generator counts as plant", map[string]string{"power": "generator"}, CatPowerPlant},
		{"substation", map[string]string{"power": "substation"}, CatPowerSubstation},
		{"reservoir wins over water", map[string]string{"landuse": "reservoir", "natural": "water"}, CatRetentionBasin},
		{"lake", map[string]string{"natural": "water", "water": "lake"}, CatWaterbody},
		{"wetland", map[string]string{"natural": "wetland"}, CatWetland},
		{"building", map[string]string{"building": "yes"}, CatBuilding},
		{"building no is not a building", map[string]string{"building": "no", "landuse": "industrial"}, CatIndustrial},
		{"retail is commercial", map[string]string{"landuse": "retail"}, CatCommercial},
		{"landfill", map[string]string{"landuse": "landfill"}, CatWasteSite},
		{"recycling amenity", map[string]string{"amenity": "recycling"}, CatWasteSite},
		{"park", map[string]string{"leisure": "park"}, CatParksGreen},
		{"vineyard is agri", map[string]string{"landuse": "vineyard"}, CatAgri},
		{"forest is managed", map[string]string{"landuse": "forest"}, CatManagedForest},
		{"wood is natural habitat", map[string]string{"natural": "wood"}, CatNaturalHabitat},
		{"nature reserve is protected", map[string]string{"leisure": "nature_reserve"}, CatProtected},
		{"military is restricted", map[string]string{"landuse": "military"}, CatRestricted},
		{"fuel station", map[string]string{"amenity": "fuel"}, CatFuelStation},
		{"parking", map[string]string{"amenity": "parking"}, CatParking},
		{"cemetery", map[string]string{"amenity": "grave_yard"}, CatCemetery},
	}

	c := NewClassifier(DefaultRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Classify(pointFeature(tt.tags))
			if !ok {
				t.Fatalf("Classify(%v) dropped, want %s", tt.tags, tt.category)
			}
			if got.Category != tt.category {
				t.Errorf("Classify(%v) = %s, want %s", tt.tags, got.Category, tt.category)
			}
		})
	}
}

func TestClassifyDropsUnmatched(t *testing.T) {
	c := NewClassifier(DefaultRules())
	for _, tags := range []map[string]string{
		{},
		{"name": "somewhere"},
		{"highway": ""},
		{"amenity": "cafe"},
	} {
		if got, ok := c.Classify(pointFeature(tags)); ok {
			t.Errorf("Classify(%v) = %s, want drop", tags, got.Category)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(DefaultRules())
	// Tags matching several rules at once: outcome must be stable across runs
	// because map iteration order never enters rule evaluation.
	tags := map[string]string{
		"waterway": "dam",
		"barrier":  "wall",
		"natural":  "water",
		"highway":  "service",
	}
	first, ok := c.Classify(pointFeature(tags))
	if !ok {
		t.Fatal("feature dropped")
	}
	for i := 0; i < 100; i++ {
		got, ok := c.Classify(pointFeature(tags))
		if !ok || got.Category != first.Category {
			t.Fatalf("run %d: category %s, want %s", i, got.Category, first.Category)
		}
	}
	if first.Category != CatDam {
		t.Errorf("category = %s, want %s", first.Category, CatDam)
	}
}

func TestClassifyLineMagnitudes(t *testing.T) {
	c := NewClassifier(DefaultRules())
	// One degree of latitude is about 111.2 km along a meridian.
	f := &models.TaggedFeature{
		ID:       7,
		Country:  "ES",
		GeomType: models.GeomLine,
		Coords:   []models.Coordinate{{Lat: 40.0, Lon: -3.0}, {Lat: 41.0, Lon: -3.0}},
		Tags:     map[string]string{"waterway": "river"},
	}
	got, ok := c.Classify(f)
	if !ok {
		t.Fatal("river dropped")
	}
	if math.Abs(got.LengthM-111195) > 200 {
		t.Errorf("LengthM = %f, want about 111195", got.LengthM)
	}
	// Corridor estimate: length times the 6 m waterway width.
	if math.Abs(got.AreaM2-got.LengthM*6) > 1e-6 {
		t.Errorf("AreaM2 = %f, want LengthM*6 = %f", got.AreaM2, got.LengthM*6)
	}
}

func TestClassifyPointHasZeroMagnitudes(t *testing.T) {
	c := NewClassifier(DefaultRules())
	got, ok := c.Classify(pointFeature(map[string]string{"power": "substation"}))
	if !ok {
		t.Fatal("substation dropped")
	}
	if got.LengthM != 0 || got.AreaM2 != 0 {
		t.Errorf("point magnitudes = (%f, %f), want (0, 0)", got.LengthM, got.AreaM2)
	}
}

func TestAreaBucket(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{CatMajorRoad, CatRoad},
		{CatRoad, CatRoad},
		{CatDam, ""},
		{CatTreeRow, ""},
		{CatBarrier, ""},
		{CatPowerLine, ""},
		{CatFuelStation, ""},
		{CatWaterbody, CatWaterbody},
		{CatIndustrial, CatIndustrial},
	}
	for _, tt := range tests {
		if got := AreaBucket(tt.category); got != tt.want {
			t.Errorf("AreaBucket(%s) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestCountBuckets(t *testing.T) {
	tests := []struct {
		category string
		want     []string
	}{
		{CatMajorRoad, []string{CatMajorRoad, CatRoad}},
		{CatHydroPlant, []string{CatHydroPlant, CatPowerPlant}},
		{CatWindPlant, []string{CatWindPlant, CatPowerPlant}},
		{CatIndustrial, []string{"industrial_area"}},
		{CatBuilding, []string{CatBuilding}},
		{CatResidential, nil},
		{CatAgri, nil},
	}
	for _, tt := range tests {
		got := CountBuckets(tt.category)
		if len(got) != len(tt.want) {
			t.Errorf("CountBuckets(%s) = %v, want %v", tt.category, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("CountBuckets(%s) = %v, want %v", tt.category, got, tt.want)
				break
			}
		}
	}
}

// Every count bucket a rule can emit must name a real output column.
func TestCountBucketsStayInColumnSet(t *testing.T) {
	columns := make(map[string]bool, len(CountCategories))
	for _, c := range CountCategories {
		columns[c] = true
	}
	for _, rule := range DefaultRules() {
		for _, bucket := range CountBuckets(rule.Category) {
			if !columns[bucket] {
				t.Errorf("rule %s emits count bucket %s with no output column", rule.Category, bucket)
			}
		}
	}
}

// Every area bucket a rule can emit must name a real output column.
func TestAreaBucketsStayInColumnSet(t *testing.T) {
	columns := make(map[string]bool, len(AreaCategories))
	for _, c := range AreaCategories {
		columns[c] = true
	}
	for _, rule := range DefaultRules() {
		bucket := AreaBucket(rule.Category)
		if bucket != "" && !columns[bucket] {
			t.Errorf("rule %s emits area bucket %s with no output column", rule.Category, bucket)
		}
	}
}
