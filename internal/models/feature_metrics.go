package models

// FeatureMetricsRow is one output row of the land-feature aggregation: all
// metrics for one (country, resolution, cell). Per-category sums live in maps
// keyed by category name; the repository flattens them into the wide
// osm_hex_features columns.
type FeatureMetricsRow struct {
	Country      string `json:"country" db:"country"`
	H3Resolution int    `json:"h3_resolution" db:"h3_resolution"`
	H3Index      string `json:"h3_index" db:"h3_index"`

	// AreaM2 and AreaPct are keyed by area category (building, road, ...).
	// Categories with no contribution in the cell are absent from the maps
	// and stored as 0 in the wide table.
	AreaM2  map[string]float64 `json:"area_m2"`
	AreaPct map[string]float64 `json:"area_pct"`

	// Counts is keyed by count category (building, major_road, dam, ...).
	Counts map[string]int64 `json:"counts"`

	HumanFootprintAreaM2  float64 `json:"human_footprint_area_m2"`
	HumanFootprintAreaPct float64 `json:"human_footprint_area_pct"`
	UrbanFootprintAreaM2  float64 `json:"urban_footprint_area_m2"`
	UrbanFootprintAreaPct float64 `json:"urban_footprint_area_pct"`

	FeatureDensityKm2 float64 `json:"feature_density_km2"`

	// TotalFeatures is the number of classified features grouped into the
	// cell at this resolution. Input to the density metric; not persisted.
	TotalFeatures int64 `json:"-"`
}

// NewFeatureMetricsRow returns a row with initialized maps.
func NewFeatureMetricsRow(country string, resolution int, h3Index string) *FeatureMetricsRow {
	return &FeatureMetricsRow{
		Country:      country,
		H3Resolution: resolution,
		H3Index:      h3Index,
		AreaM2:       make(map[string]float64),
		AreaPct:      make(map[string]float64),
		Counts:       make(map[string]int64),
	}
}
