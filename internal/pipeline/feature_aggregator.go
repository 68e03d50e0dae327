package pipeline

import (
	"sort"

	"github.com/jengzang/hexmetrics-backend-go/internal/classify"
	"github.com/jengzang/hexmetrics-backend-go/internal/config"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// FeatureAggregator reduces grouped land-feature rows into one metrics row
// per cell for one (country, resolution) pair.
type FeatureAggregator struct {
	engine config.EngineConfig
}

// NewFeatureAggregator creates a feature aggregator with the given constant
// tables.
func NewFeatureAggregator(engine config.EngineConfig) *FeatureAggregator {
	return &FeatureAggregator{engine: engine}
}

// AggregateCells produces one FeatureMetricsRow per distinct cell present in
// the grouped rows. Area sums and counts go into category buckets; the
// percentage, composite and density columns are filled by the post-processor.
func (a *FeatureAggregator) AggregateCells(country string, resolution int, rows []FeatureCellRow) []*models.FeatureMetricsRow {
	cells := make(map[string]*models.FeatureMetricsRow)

	for _, row := range rows {
		out, ok := cells[row.H3Index]
		if !ok {
			out = models.NewFeatureMetricsRow(country, resolution, row.H3Index)
			cells[row.H3Index] = out
		}

		f := row.Feature
		out.TotalFeatures++

		if bucket := classify.AreaBucket(f.Category); bucket != "" {
			out.AreaM2[bucket] += f.AreaM2
		}
		for _, c := range classify.CountBuckets(f.Category) {
			out.Counts[c]++
		}
	}

	result := make([]*models.FeatureMetricsRow, 0, len(cells))
	for _, row := range cells {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].H3Index < result[j].H3Index })
	return result
}
