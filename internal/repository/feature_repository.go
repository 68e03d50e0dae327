package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// FeatureRepository reads the OSM element staging table.
type FeatureRepository struct {
	db *sql.DB
}

// NewFeatureRepository creates a new feature repository
func NewFeatureRepository(db *sql.DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

// ListByCountry retrieves all raw tagged features for one country partition.
// Geometry vertices are stored as a JSON array of [lat, lon] pairs and the
// tag set as a JSON object.
func (r *FeatureRepository) ListByCountry(ctx context.Context, country string) ([]models.TaggedFeature, error) {
	query := `SELECT id, country, geom_type, coords_json, tags_json
		FROM osm_elements
		WHERE country = ?
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, country)
	if err != nil {
		return nil, fmt.Errorf("failed to query osm elements for %s: %w", country, err)
	}
	defer rows.Close()

	var out []models.TaggedFeature
	for rows.Next() {
		var f models.TaggedFeature
		var coordsJSON, tagsJSON string
		if err := rows.Scan(&f.ID, &f.Country, &f.GeomType, &coordsJSON, &tagsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan osm element: %w", err)
		}

		var pairs [][2]float64
		if err := json.Unmarshal([]byte(coordsJSON), &pairs); err != nil {
			return nil, fmt.Errorf("failed to decode coords for element %d: %w", f.ID, err)
		}
		f.Coords = make([]models.Coordinate, 0, len(pairs))
		for _, p := range pairs {
			f.Coords = append(f.Coords, models.Coordinate{Lat: p[0], Lon: p[1]})
		}

		if err := json.Unmarshal([]byte(tagsJSON), &f.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for element %d: %w", f.ID, err)
		}

		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate osm elements: %w", err)
	}

	return out, nil
}

// ListCountries returns the distinct countries present in staging.
func (r *FeatureRepository) ListCountries(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT country FROM osm_elements ORDER BY country`)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
