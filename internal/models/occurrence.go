package models

import "database/sql"

// Occurrence represents one validated species occurrence record from the
// staging layer. Immutable once read; the engine never writes back to staging.
type Occurrence struct {
	ID          int64  `json:"id" db:"id"`
	Country     string `json:"country" db:"country"`
	Year        int    `json:"year" db:"year"`
	TaxonKey    int64  `json:"taxon_key" db:"taxon_key"`
	SpeciesName string `json:"species_name" db:"species_name"`

	// Coordinates are nullable at the staging layer; the validator rejects
	// records where either is NULL.
	Latitude  sql.NullFloat64 `json:"latitude" db:"latitude"`
	Longitude sql.NullFloat64 `json:"longitude" db:"longitude"`

	// Optional quality attributes
	CoordUncertaintyM sql.NullFloat64 `json:"coord_uncertainty_m" db:"coord_uncertainty_m"`
	DatasetKey        sql.NullString  `json:"dataset_key" db:"dataset_key"`

	// Optional status flags
	IUCNCategory sql.NullString `json:"iucn_category" db:"iucn_category"`
	IsInvasive   bool           `json:"is_invasive" db:"is_invasive"`
}

// ColumnPresence records which optional staging columns carry any data at all
// for one partition. A column that is NULL for the entire partition excludes
// its data-quality sub-score from the composite, which is different from a
// per-row NULL (that counts against the sub-score's share).
type ColumnPresence struct {
	HasUncertainty bool
	HasStatus      bool
}
