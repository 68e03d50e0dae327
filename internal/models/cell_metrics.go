package models

import "database/sql"

// CellMetricsRow is one output row of the biodiversity aggregation: all
// metrics for one (country, year, resolution, cell). Diversity columns and
// the DQI are NULL where undefined (never zero-filled), matching the
// NaN-means-absent convention of the downstream consumers.
type CellMetricsRow struct {
	Country      string `json:"country" db:"country"`
	Year         int    `json:"year" db:"year"`
	H3Resolution int    `json:"h3_resolution" db:"h3_resolution"`
	H3Index      string `json:"h3_index" db:"h3_index"`

	OccurrenceCount     int64 `json:"occurrence_count" db:"occurrence_count"`
	SpeciesRichnessCell int64 `json:"species_richness_cell" db:"species_richness_cell"`

	ShannonH        sql.NullFloat64 `json:"shannon_H" db:"shannon_H"`
	Simpson1MinusD  sql.NullFloat64 `json:"simpson_1_minus_D" db:"simpson_1_minus_D"`
	NThreatened     int64           `json:"n_threatened_species" db:"n_threatened_species"`
	NInvasive       int64           `json:"n_invasive_species" db:"n_invasive_species"`
	ThreatScore     int64           `json:"threat_score_weighted" db:"threat_score_weighted"`
	DQI             sql.NullFloat64 `json:"dqi" db:"dqi"`
	OccurrencesKm2  float64         `json:"occurrences_per_km2" db:"occurrences_per_km2"`
}

// CellTrend summarizes the change between the first and last year of metrics
// available for one cell.
type CellTrend struct {
	SpeciesRichnessChange int64   `json:"species_richness_change"`
	ThreatenedChange      int64   `json:"threatened_change"`
	DQIChange             float64 `json:"dqi_change"`
}
