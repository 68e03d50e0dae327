package pipeline

import (
	"math"
	"testing"

	"github.com/jengzang/hexmetrics-backend-go/internal/classify"
	"github.com/jengzang/hexmetrics-backend-go/internal/config"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

func TestProcessCellMetricsDensity(t *testing.T) {
	engine := config.DefaultEngine()
	p := NewPostProcessor(engine)

	rows := []models.CellMetricsRow{
		{H3Index: "cellA", OccurrenceCount: 50},
		{H3Index: "cellB", OccurrenceCount: 0},
	}
	if err := p.ProcessCellMetrics(rows, 9); err != nil {
		t.Fatal(err)
	}

	km2 := engine.HexAreaM2[9] / 1e6
	want := 50 / km2
	if math.Abs(rows[0].OccurrencesKm2-want) > 1e-9 {
		t.Errorf("OccurrencesKm2 = %f, want %f", rows[0].OccurrencesKm2, want)
	}
	if rows[1].OccurrencesKm2 != 0 {
		t.Errorf("empty cell density = %f, want 0", rows[1].OccurrencesKm2)
	}
}

func TestProcessCellMetricsUnknownResolution(t *testing.T) {
	p := NewPostProcessor(config.DefaultEngine())
	if err := p.ProcessCellMetrics(nil, 3); err == nil {
		t.Error("expected error for resolution with no area constant")
	}
}

func TestProcessFeatureMetrics(t *testing.T) {
	engine := config.DefaultEngine()
	p := NewPostProcessor(engine)
	area := engine.HexAreaM2[8]

	row := models.NewFeatureMetricsRow("ES", 8, "cellA")
	row.AreaM2[classify.CatBuilding] = 1000
	row.AreaM2[classify.CatIndustrial] = 2000
	row.AreaM2[classify.CatParksGreen] = 500
	row.AreaM2[classify.CatWasteSite] = 250
	row.AreaM2[classify.CatResidential] = 4000
	row.AreaM2[classify.CatRoad] = 300
	row.AreaM2[classify.CatWaterbody] = 9000
	row.TotalFeatures = 12

	if err := p.ProcessFeatureMetrics([]*models.FeatureMetricsRow{row}, 8); err != nil {
		t.Fatal(err)
	}

	// The human footprint is exactly the sum of its four components.
	wantHuman := 1000.0 + 2000 + 500 + 250
	if row.HumanFootprintAreaM2 != wantHuman {
		t.Errorf("HumanFootprintAreaM2 = %f, want %f", row.HumanFootprintAreaM2, wantHuman)
	}
	// The urban footprint adds the residential/commercial/parking/road/
	// cemetery/construction areas on top. Waterbody never enters either.
	wantUrban := wantHuman + 4000 + 300
	if row.UrbanFootprintAreaM2 != wantUrban {
		t.Errorf("UrbanFootprintAreaM2 = %f, want %f", row.UrbanFootprintAreaM2, wantUrban)
	}

	if got, want := row.HumanFootprintAreaPct, wantHuman/area*100; math.Abs(got-want) > 1e-9 {
		t.Errorf("HumanFootprintAreaPct = %f, want %f", got, want)
	}
	if got, want := row.AreaPct[classify.CatWaterbody], 9000/area*100; math.Abs(got-want) > 1e-9 {
		t.Errorf("waterbody pct = %f, want %f", got, want)
	}
	if got, want := row.FeatureDensityKm2, 12/(area/1e6); math.Abs(got-want) > 1e-9 {
		t.Errorf("FeatureDensityKm2 = %f, want %f", got, want)
	}
}

func TestProcessFeatureMetricsPctCanExceed100(t *testing.T) {
	engine := config.DefaultEngine()
	p := NewPostProcessor(engine)
	area := engine.HexAreaM2[9]

	// Overlapping component categories may sum past the cell area; the
	// percentage is reported as-is, not clamped.
	row := models.NewFeatureMetricsRow("ES", 9, "cellA")
	row.AreaM2[classify.CatBuilding] = area * 0.7
	row.AreaM2[classify.CatResidential] = area * 0.8

	if err := p.ProcessFeatureMetrics([]*models.FeatureMetricsRow{row}, 9); err != nil {
		t.Fatal(err)
	}
	if row.UrbanFootprintAreaPct <= 100 {
		t.Errorf("UrbanFootprintAreaPct = %f, want > 100", row.UrbanFootprintAreaPct)
	}
}
