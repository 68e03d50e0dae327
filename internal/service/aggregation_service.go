package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/jengzang/hexmetrics-backend-go/internal/classify"
	"github.com/jengzang/hexmetrics-backend-go/internal/config"
	"github.com/jengzang/hexmetrics-backend-go/internal/hexgrid"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
	"github.com/jengzang/hexmetrics-backend-go/internal/pipeline"
	"github.com/jengzang/hexmetrics-backend-go/internal/repository"
)

// Aggregation domains
const (
	DomainBiodiversity = "biodiversity"
	DomainLandFeature  = "landfeature"
)

// AggregationService runs the full pipeline (validate -> index -> [classify]
// -> group -> aggregate -> post-process -> write) for partitions of either
// domain. Partitions are independent; the service holds no mutable state
// between them.
type AggregationService struct {
	engine     config.EngineConfig
	indexer    *hexgrid.Indexer
	classifier *classify.Classifier

	occurrences *repository.OccurrenceRepository
	features    *repository.FeatureRepository
	cellMetrics *repository.CellMetricsRepository
	osmFeatures *repository.OSMFeaturesRepository
	runs        *repository.RunRepository

	aggregator  *pipeline.Aggregator
	featureAgg  *pipeline.FeatureAggregator
	postProcess *pipeline.PostProcessor
	workers     int
}

// NewAggregationService wires the pipeline stages against one database.
func NewAggregationService(db *sql.DB, engine config.EngineConfig, workers int) (*AggregationService, error) {
	indexer, err := hexgrid.NewIndexer(engine.Resolutions)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer: %w", err)
	}

	return &AggregationService{
		engine:      engine,
		indexer:     indexer,
		classifier:  classify.NewClassifier(classify.DefaultRules()),
		occurrences: repository.NewOccurrenceRepository(db),
		features:    repository.NewFeatureRepository(db),
		cellMetrics: repository.NewCellMetricsRepository(db),
		osmFeatures: repository.NewOSMFeaturesRepository(db),
		runs:        repository.NewRunRepository(db),
		aggregator:  pipeline.NewAggregator(engine),
		featureAgg:  pipeline.NewFeatureAggregator(engine),
		postProcess: pipeline.NewPostProcessor(engine),
		workers:     workers,
	}, nil
}

// ListBiodiversityPartitions returns the staged (country, year) partitions.
func (s *AggregationService) ListBiodiversityPartitions(ctx context.Context) ([]models.Partition, error) {
	return s.occurrences.ListPartitions(ctx)
}

// ListFeaturePartitions returns the staged country partitions.
func (s *AggregationService) ListFeaturePartitions(ctx context.Context) ([]models.Partition, error) {
	countries, err := s.features.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Partition, 0, len(countries))
	for _, c := range countries {
		out = append(out, models.Partition{Country: c})
	}
	return out, nil
}

// RunBiodiversityPartition processes one (country, year) partition
// end-to-end. Rejected records are dropped and counted in the diagnostics;
// an indexing failure after validation is a defect and fails the partition.
func (s *AggregationService) RunBiodiversityPartition(ctx context.Context, p models.Partition) (*models.PartitionDiagnostics, error) {
	occs, err := s.occurrences.ListByPartition(ctx, p.Country, p.Year)
	if err != nil {
		return nil, err
	}
	presence, err := s.occurrences.ColumnPresence(ctx, p.Country, p.Year)
	if err != nil {
		return nil, err
	}

	diag := &models.PartitionDiagnostics{Country: p.Country, Year: p.Year, TotalRecords: len(occs)}

	grouped := make(map[int][]pipeline.OccurrenceCellRow)
	for i := range occs {
		occ := &occs[i]

		var lat, lon *float64
		if occ.Latitude.Valid {
			lat = &occ.Latitude.Float64
		}
		if occ.Longitude.Valid {
			lon = &occ.Longitude.Float64
		}
		if _, ok := hexgrid.ValidateCoordinate(lat, lon); !ok {
			diag.Rejected++
			continue
		}
		diag.ValidRecords++

		assignment, err := s.indexer.Assign(*lat, *lon)
		if err != nil {
			return nil, fmt.Errorf("partition %s/%d: record %d: %w", p.Country, p.Year, occ.ID, err)
		}

		for _, row := range pipeline.ExplodeOccurrence(occ, assignment, s.indexer.Resolutions()) {
			grouped[row.Resolution] = append(grouped[row.Resolution], row)
		}
	}

	for _, resolution := range s.indexer.Resolutions() {
		cells := s.aggregator.AggregateCells(p.Country, p.Year, resolution, grouped[resolution], presence)
		if err := s.postProcess.ProcessCellMetrics(cells, resolution); err != nil {
			return nil, fmt.Errorf("partition %s/%d: %w", p.Country, p.Year, err)
		}
		// Written even when empty: a rerun must replace stale output.
		if err := s.cellMetrics.ReplacePartition(ctx, p.Country, p.Year, resolution, cells); err != nil {
			return nil, fmt.Errorf("partition %s/%d: %w", p.Country, p.Year, err)
		}
		diag.CellsWritten += len(cells)
	}

	log.Printf("[Aggregation] %s/%d: %d records, %d rejected, %d cells",
		p.Country, p.Year, diag.TotalRecords, diag.Rejected, diag.CellsWritten)
	return diag, nil
}

// RunFeaturePartition processes one country's land features end-to-end.
// Unclassified objects are dropped and counted in the diagnostics.
func (s *AggregationService) RunFeaturePartition(ctx context.Context, p models.Partition) (*models.PartitionDiagnostics, error) {
	feats, err := s.features.ListByCountry(ctx, p.Country)
	if err != nil {
		return nil, err
	}

	diag := &models.PartitionDiagnostics{Country: p.Country, TotalRecords: len(feats)}

	grouped := make(map[int][]pipeline.FeatureCellRow)
	for i := range feats {
		f := &feats[i]

		classified, ok := s.classifier.Classify(f)
		if !ok {
			diag.Unclassified++
			continue
		}

		centroid := classified.Centroid
		if _, ok := hexgrid.ValidateCoordinate(&centroid.Lat, &centroid.Lon); !ok {
			diag.Rejected++
			continue
		}
		diag.ValidRecords++

		assignment, err := s.indexer.Assign(centroid.Lat, centroid.Lon)
		if err != nil {
			return nil, fmt.Errorf("partition %s: element %d: %w", p.Country, f.ID, err)
		}

		for _, row := range pipeline.ExplodeFeature(classified, assignment, s.indexer.Resolutions()) {
			grouped[row.Resolution] = append(grouped[row.Resolution], row)
		}
	}

	for _, resolution := range s.indexer.Resolutions() {
		rows := s.featureAgg.AggregateCells(p.Country, resolution, grouped[resolution])
		if err := s.postProcess.ProcessFeatureMetrics(rows, resolution); err != nil {
			return nil, fmt.Errorf("partition %s: %w", p.Country, err)
		}
		if err := s.osmFeatures.ReplacePartition(ctx, p.Country, resolution, rows); err != nil {
			return nil, fmt.Errorf("partition %s: %w", p.Country, err)
		}
		diag.CellsWritten += len(rows)
	}

	log.Printf("[Aggregation] %s features: %d objects, %d unclassified, %d rejected, %d cells",
		p.Country, diag.TotalRecords, diag.Unclassified, diag.Rejected, diag.CellsWritten)
	return diag, nil
}

// Run executes the pipeline for all given partitions of a domain on the
// worker pool, recording progress in the run bookkeeping table. Returns the
// run id.
func (s *AggregationService) Run(ctx context.Context, domain string, partitions []models.Partition) (int64, error) {
	task, err := s.taskFor(domain)
	if err != nil {
		return 0, err
	}

	runID, err := s.runs.Create(ctx, domain, len(partitions))
	if err != nil {
		return 0, err
	}
	if err := s.runs.MarkRunning(ctx, runID); err != nil {
		return 0, err
	}

	var mu sync.Mutex
	var diags []*models.PartitionDiagnostics
	failures := pipeline.NewRunner(s.workers).Run(ctx, partitions, func(ctx context.Context, p models.Partition) error {
		diag, err := task(ctx, p)
		if err != nil {
			return err
		}
		mu.Lock()
		diags = append(diags, diag)
		mu.Unlock()
		return nil
	})

	summary, _ := json.Marshal(diags)
	completed := len(partitions) - len(failures)

	if len(failures) == len(partitions) && len(partitions) > 0 {
		if err := s.runs.MarkFailed(ctx, runID, failures[0].Err.Error()); err != nil {
			return runID, err
		}
		return runID, fmt.Errorf("all %d partitions failed, first error: %w", len(partitions), failures[0].Err)
	}

	if err := s.runs.MarkCompleted(ctx, runID, completed, len(failures), string(summary)); err != nil {
		return runID, err
	}
	return runID, nil
}

func (s *AggregationService) taskFor(domain string) (func(context.Context, models.Partition) (*models.PartitionDiagnostics, error), error) {
	switch domain {
	case DomainBiodiversity:
		return s.RunBiodiversityPartition, nil
	case DomainLandFeature:
		return s.RunFeaturePartition, nil
	default:
		return nil, fmt.Errorf("unknown aggregation domain %q", domain)
	}
}
