package pipeline

import (
	"fmt"

	"github.com/jengzang/hexmetrics-backend-go/internal/classify"
	"github.com/jengzang/hexmetrics-backend-go/internal/config"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// PostProcessor computes the metrics that depend on already-aggregated
// metrics: percentage-of-cell-area, fixed composite sums, and per-area
// densities. It runs strictly after aggregation and reads only the row it is
// filling, so it is trivially parallel per cell.
type PostProcessor struct {
	engine config.EngineConfig
}

// NewPostProcessor creates a post-processor with the given constant tables.
func NewPostProcessor(engine config.EngineConfig) *PostProcessor {
	return &PostProcessor{engine: engine}
}

// hexAreaM2 looks up the physical cell area constant for a resolution. A
// missing entry is a structural configuration failure, not a data condition.
func (p *PostProcessor) hexAreaM2(resolution int) (float64, error) {
	area, ok := p.engine.HexAreaM2[resolution]
	if !ok || area <= 0 {
		return 0, fmt.Errorf("no hex area constant for resolution %d", resolution)
	}
	return area, nil
}

// ProcessCellMetrics fills the density metric on biodiversity rows.
func (p *PostProcessor) ProcessCellMetrics(rows []models.CellMetricsRow, resolution int) error {
	area, err := p.hexAreaM2(resolution)
	if err != nil {
		return err
	}
	km2 := area / 1e6
	for i := range rows {
		rows[i].OccurrencesKm2 = float64(rows[i].OccurrenceCount) / km2
	}
	return nil
}

// ProcessFeatureMetrics fills percentage, composite and density metrics on
// land-feature rows. Composite sums are fixed linear combinations of base
// area sums in the same row; they are never inputs to each other.
func (p *PostProcessor) ProcessFeatureMetrics(rows []*models.FeatureMetricsRow, resolution int) error {
	area, err := p.hexAreaM2(resolution)
	if err != nil {
		return err
	}
	km2 := area / 1e6

	for _, row := range rows {
		for cat, m2 := range row.AreaM2 {
			row.AreaPct[cat] = m2 / area * 100
		}

		var human float64
		for _, cat := range classify.HumanFootprintComponents {
			human += row.AreaM2[cat]
		}
		urban := human
		for _, cat := range classify.UrbanFootprintExtras {
			urban += row.AreaM2[cat]
		}

		row.HumanFootprintAreaM2 = human
		row.HumanFootprintAreaPct = human / area * 100
		row.UrbanFootprintAreaM2 = urban
		// Components overlap on the ground, so this may exceed 100; accepted.
		row.UrbanFootprintAreaPct = urban / area * 100

		row.FeatureDensityKm2 = float64(row.TotalFeatures) / km2
	}
	return nil
}
