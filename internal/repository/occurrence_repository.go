package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// OccurrenceRepository reads the occurrence staging table. The engine never
// writes to staging.
type OccurrenceRepository struct {
	db *sql.DB
}

// NewOccurrenceRepository creates a new occurrence repository
func NewOccurrenceRepository(db *sql.DB) *OccurrenceRepository {
	return &OccurrenceRepository{db: db}
}

// ListByPartition retrieves all occurrence records for one (country, year)
// partition.
func (r *OccurrenceRepository) ListByPartition(ctx context.Context, country string, year int) ([]models.Occurrence, error) {
	query := `SELECT id, country, year, taxon_key, species_name,
		latitude, longitude, coord_uncertainty_m, dataset_key,
		iucn_category, is_invasive
		FROM occurrences
		WHERE country = ? AND year = ?
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, country, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query occurrences for %s/%d: %w", country, year, err)
	}
	defer rows.Close()

	var out []models.Occurrence
	for rows.Next() {
		var o models.Occurrence
		var invasive int
		err := rows.Scan(
			&o.ID, &o.Country, &o.Year, &o.TaxonKey, &o.SpeciesName,
			&o.Latitude, &o.Longitude, &o.CoordUncertaintyM, &o.DatasetKey,
			&o.IUCNCategory, &invasive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan occurrence: %w", err)
		}
		o.IsInvasive = invasive != 0
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate occurrences: %w", err)
	}

	return out, nil
}

// ColumnPresence reports which optional columns carry any value at all for
// the partition. A column that is NULL throughout is treated as absent, which
// excludes its data-quality sub-score from the composite.
func (r *OccurrenceRepository) ColumnPresence(ctx context.Context, country string, year int) (models.ColumnPresence, error) {
	query := `SELECT
		COUNT(coord_uncertainty_m) > 0,
		COUNT(iucn_category) > 0
		FROM occurrences
		WHERE country = ? AND year = ?`

	var p models.ColumnPresence
	err := r.db.QueryRowContext(ctx, query, country, year).Scan(&p.HasUncertainty, &p.HasStatus)
	if err != nil {
		return p, fmt.Errorf("failed to probe column presence for %s/%d: %w", country, year, err)
	}
	return p, nil
}

// ListPartitions returns the distinct (country, year) pairs present in
// staging.
func (r *OccurrenceRepository) ListPartitions(ctx context.Context) ([]models.Partition, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT country, year FROM occurrences ORDER BY country, year`)
	if err != nil {
		return nil, fmt.Errorf("failed to query partitions: %w", err)
	}
	defer rows.Close()

	var out []models.Partition
	for rows.Next() {
		var p models.Partition
		if err := rows.Scan(&p.Country, &p.Year); err != nil {
			return nil, fmt.Errorf("failed to scan partition: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
