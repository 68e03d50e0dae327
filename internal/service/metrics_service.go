package service

import (
	"context"
	"database/sql"
	"math"

	"github.com/jengzang/hexmetrics-backend-go/internal/hexgrid"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
	"github.com/jengzang/hexmetrics-backend-go/internal/repository"
)

// MetricsService serves read queries over the produced cell tables.
type MetricsService struct {
	cells *repository.CellMetricsRepository
	osm   *repository.OSMFeaturesRepository
	runs  *repository.RunRepository
}

// NewMetricsService creates a new metrics service
func NewMetricsService(db *sql.DB) *MetricsService {
	return &MetricsService{
		cells: repository.NewCellMetricsRepository(db),
		osm:   repository.NewOSMFeaturesRepository(db),
		runs:  repository.NewRunRepository(db),
	}
}

// QueryCells returns cell metrics rows matching the filter.
func (s *MetricsService) QueryCells(ctx context.Context, filter models.CellFilter) ([]models.CellMetricsRow, error) {
	return s.cells.List(ctx, filter)
}

// CellHistory returns all yearly metric rows for one cell plus a trend
// summary when at least two years are present.
func (s *MetricsService) CellHistory(ctx context.Context, country, h3Index string, resolution int) ([]models.CellMetricsRow, *models.CellTrend, error) {
	rows, err := s.cells.GetCellYears(ctx, country, h3Index, resolution)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return rows, nil, nil
	}

	first, last := rows[0], rows[len(rows)-1]
	trend := &models.CellTrend{
		SpeciesRichnessChange: last.SpeciesRichnessCell - first.SpeciesRichnessCell,
		ThreatenedChange:      last.NThreatened - first.NThreatened,
		DQIChange:             round4(last.DQI.Float64 - first.DQI.Float64),
	}
	return rows, trend, nil
}

// OSMContext returns the land-feature metrics row for one cell as a column
// map, or nil when the cell has no data.
func (s *MetricsService) OSMContext(ctx context.Context, country, h3Index string, resolution int) (map[string]interface{}, error) {
	return s.osm.GetByCell(ctx, country, h3Index, resolution)
}

// Neighbors returns the H3 indexes within k grid steps of a cell.
func (s *MetricsService) Neighbors(h3Index string, k int) ([]string, error) {
	if k < 1 {
		k = 1
	}
	return hexgrid.Neighbors(h3Index, k)
}

// Partitions lists the (country, year, resolution) partitions available in
// the output table.
func (s *MetricsService) Partitions(ctx context.Context) ([]map[string]interface{}, error) {
	return s.cells.ListPartitions(ctx)
}

// GetRun returns one aggregation run, or nil when not found.
func (s *MetricsService) GetRun(ctx context.Context, id int64) (*models.AggregationRun, error) {
	return s.runs.Get(ctx, id)
}

// ListRuns returns recent aggregation runs.
func (s *MetricsService) ListRuns(ctx context.Context, limit int) ([]models.AggregationRun, error) {
	return s.runs.List(ctx, limit)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
