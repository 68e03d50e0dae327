package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/hexmetrics-backend-go/internal/classify"
	"github.com/jengzang/hexmetrics-backend-go/internal/database"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// OSMFeaturesRepository owns the osm_hex_features output table. The wide
// per-category columns are generated from the category registries so the
// column set and the classifier can never drift apart.
type OSMFeaturesRepository struct {
	db *sql.DB
}

// NewOSMFeaturesRepository creates a new OSM features repository
func NewOSMFeaturesRepository(db *sql.DB) *OSMFeaturesRepository {
	return &OSMFeaturesRepository{db: db}
}

// featureColumns returns the insert column list in a fixed order: keys,
// per-category areas, per-category counts, composites, density.
func featureColumns() []string {
	cols := []string{"country", "h3_resolution", "h3_index"}
	for _, c := range classify.AreaCategories {
		cols = append(cols, c+"_area_m2", c+"_area_pct")
	}
	for _, c := range classify.CountCategories {
		cols = append(cols, c+"_count")
	}
	cols = append(cols,
		"human_footprint_area_m2", "human_footprint_area_pct",
		"urban_footprint_area_m2", "urban_footprint_area_pct",
		"feature_density_km2",
	)
	return cols
}

// featureValues flattens a metrics row into the featureColumns order.
func featureValues(row *models.FeatureMetricsRow) []interface{} {
	vals := []interface{}{row.Country, row.H3Resolution, row.H3Index}
	for _, c := range classify.AreaCategories {
		vals = append(vals, row.AreaM2[c], row.AreaPct[c])
	}
	for _, c := range classify.CountCategories {
		vals = append(vals, row.Counts[c])
	}
	vals = append(vals,
		row.HumanFootprintAreaM2, row.HumanFootprintAreaPct,
		row.UrbanFootprintAreaM2, row.UrbanFootprintAreaPct,
		row.FeatureDensityKm2,
	)
	return vals
}

// ReplacePartition atomically overwrites the output for one
// (country, resolution) partition.
func (r *OSMFeaturesRepository) ReplacePartition(ctx context.Context, country string, resolution int, rows []*models.FeatureMetricsRow) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM osm_hex_features WHERE country = ? AND h3_resolution = ?`,
			country, resolution)
		if err != nil {
			return fmt.Errorf("failed to clear partition %s/r%d: %w", country, resolution, err)
		}

		if len(rows) == 0 {
			return nil
		}

		cols := featureColumns()
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
		stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
			"INSERT INTO osm_hex_features (%s) VALUES (%s)",
			strings.Join(cols, ", "), placeholders))
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if _, err := stmt.ExecContext(ctx, featureValues(row)...); err != nil {
				return fmt.Errorf("failed to insert cell %s: %w", row.H3Index, err)
			}
		}
		return nil
	})
}

// GetByCell retrieves the full feature metrics row for one cell as a
// column-name -> value map, mirroring the wide-row reads the downstream
// consumers do. Returns nil (no error) when the cell has no row.
func (r *OSMFeaturesRepository) GetByCell(ctx context.Context, country, h3Index string, resolution int) (map[string]interface{}, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT * FROM osm_hex_features WHERE country = ? AND h3_index = ? AND h3_resolution = ?`,
		country, h3Index, resolution)
	if err != nil {
		return nil, fmt.Errorf("failed to query osm features for %s: %w", h3Index, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	values := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("failed to scan osm features row: %w", err)
	}

	out := make(map[string]interface{}, len(cols))
	for i, col := range cols {
		out[col] = values[i]
	}
	return out, nil
}

// ReadPartition loads one (country, resolution) partition back into metric
// rows. Used by tests and the idempotence check.
func (r *OSMFeaturesRepository) ReadPartition(ctx context.Context, country string, resolution int) ([]*models.FeatureMetricsRow, error) {
	cols := featureColumns()
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM osm_hex_features WHERE country = ? AND h3_resolution = ? ORDER BY h3_index",
		strings.Join(cols, ", ")), country, resolution)
	if err != nil {
		return nil, fmt.Errorf("failed to query partition %s/r%d: %w", country, resolution, err)
	}
	defer rows.Close()

	var out []*models.FeatureMetricsRow
	for rows.Next() {
		row := models.NewFeatureMetricsRow("", 0, "")
		ptrs := []interface{}{&row.Country, &row.H3Resolution, &row.H3Index}
		areaVals := make([]float64, len(classify.AreaCategories)*2)
		for i := range areaVals {
			ptrs = append(ptrs, &areaVals[i])
		}
		countVals := make([]int64, len(classify.CountCategories))
		for i := range countVals {
			ptrs = append(ptrs, &countVals[i])
		}
		ptrs = append(ptrs,
			&row.HumanFootprintAreaM2, &row.HumanFootprintAreaPct,
			&row.UrbanFootprintAreaM2, &row.UrbanFootprintAreaPct,
			&row.FeatureDensityKm2,
		)

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan feature metrics: %w", err)
		}

		for i, c := range classify.AreaCategories {
			if areaVals[i*2] != 0 {
				row.AreaM2[c] = areaVals[i*2]
			}
			if areaVals[i*2+1] != 0 {
				row.AreaPct[c] = areaVals[i*2+1]
			}
		}
		for i, c := range classify.CountCategories {
			if countVals[i] != 0 {
				row.Counts[c] = countVals[i]
			}
		}

		out = append(out, row)
	}
	return out, rows.Err()
}
