package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/hexmetrics-backend-go/internal/database"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// CellMetricsRepository owns the gbif_cell_metrics output table.
type CellMetricsRepository struct {
	db *sql.DB
}

// NewCellMetricsRepository creates a new cell metrics repository
func NewCellMetricsRepository(db *sql.DB) *CellMetricsRepository {
	return &CellMetricsRepository{db: db}
}

const cellMetricsColumns = `country, year, h3_resolution, h3_index,
	occurrence_count, species_richness_cell, shannon_H, simpson_1_minus_D,
	n_threatened_species, n_invasive_species, threat_score_weighted, dqi,
	occurrences_per_km2`

// ReplacePartition atomically overwrites the output for one
// (country, year, resolution) partition: delete everything, insert the new
// rows, commit. A rerun replaces, never merges.
func (r *CellMetricsRepository) ReplacePartition(ctx context.Context, country string, year, resolution int, cells []models.CellMetricsRow) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM gbif_cell_metrics WHERE country = ? AND year = ? AND h3_resolution = ?`,
			country, year, resolution)
		if err != nil {
			return fmt.Errorf("failed to clear partition %s/%d/r%d: %w", country, year, resolution, err)
		}

		if len(cells) == 0 {
			return nil
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO gbif_cell_metrics (`+cellMetricsColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, c := range cells {
			_, err := stmt.ExecContext(ctx,
				c.Country, c.Year, c.H3Resolution, c.H3Index,
				c.OccurrenceCount, c.SpeciesRichnessCell, c.ShannonH, c.Simpson1MinusD,
				c.NThreatened, c.NInvasive, c.ThreatScore, c.DQI,
				c.OccurrencesKm2,
			)
			if err != nil {
				return fmt.Errorf("failed to insert cell %s: %w", c.H3Index, err)
			}
		}
		return nil
	})
}

func scanCellMetricsRow(rows *sql.Rows) (models.CellMetricsRow, error) {
	var c models.CellMetricsRow
	err := rows.Scan(
		&c.Country, &c.Year, &c.H3Resolution, &c.H3Index,
		&c.OccurrenceCount, &c.SpeciesRichnessCell, &c.ShannonH, &c.Simpson1MinusD,
		&c.NThreatened, &c.NInvasive, &c.ThreatScore, &c.DQI,
		&c.OccurrencesKm2,
	)
	return c, err
}

// List retrieves cell metrics rows matching the filter, richest cells first.
func (r *CellMetricsRepository) List(ctx context.Context, filter models.CellFilter) ([]models.CellMetricsRow, error) {
	query := `SELECT ` + cellMetricsColumns + ` FROM gbif_cell_metrics`

	var conditions []string
	var args []interface{}

	if filter.Country != "" {
		conditions = append(conditions, "country = ?")
		args = append(args, filter.Country)
	}
	if filter.Year > 0 {
		conditions = append(conditions, "year = ?")
		args = append(args, filter.Year)
	}
	if filter.Resolution > 0 {
		conditions = append(conditions, "h3_resolution = ?")
		args = append(args, filter.Resolution)
	}
	if filter.MinRichness > 0 {
		conditions = append(conditions, "species_richness_cell >= ?")
		args = append(args, filter.MinRichness)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY species_richness_cell DESC, h3_index"

	limit := filter.Limit
	if limit <= 0 || limit > 20000 {
		limit = 20000
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cell metrics: %w", err)
	}
	defer rows.Close()

	var out []models.CellMetricsRow
	for rows.Next() {
		c, err := scanCellMetricsRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cell metrics: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCellYears retrieves all yearly metrics rows for one cell, ordered by
// year. Used for the per-cell trend summary.
func (r *CellMetricsRepository) GetCellYears(ctx context.Context, country, h3Index string, resolution int) ([]models.CellMetricsRow, error) {
	query := `SELECT ` + cellMetricsColumns + ` FROM gbif_cell_metrics
		WHERE country = ? AND h3_index = ? AND h3_resolution = ?
		ORDER BY year`

	rows, err := r.db.QueryContext(ctx, query, country, h3Index, resolution)
	if err != nil {
		return nil, fmt.Errorf("failed to query cell %s: %w", h3Index, err)
	}
	defer rows.Close()

	var out []models.CellMetricsRow
	for rows.Next() {
		c, err := scanCellMetricsRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cell metrics: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListPartitions returns the distinct (country, year, resolution) partitions
// present in the output table.
func (r *CellMetricsRepository) ListPartitions(ctx context.Context) ([]map[string]interface{}, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT country, year, h3_resolution, COUNT(*) FROM gbif_cell_metrics
		GROUP BY country, year, h3_resolution
		ORDER BY country, year, h3_resolution`)
	if err != nil {
		return nil, fmt.Errorf("failed to query output partitions: %w", err)
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var country string
		var year, resolution, cells int
		if err := rows.Scan(&country, &year, &resolution, &cells); err != nil {
			return nil, fmt.Errorf("failed to scan partition summary: %w", err)
		}
		out = append(out, map[string]interface{}{
			"country":       country,
			"year":          year,
			"h3_resolution": resolution,
			"cell_count":    cells,
		})
	}
	return out, rows.Err()
}
