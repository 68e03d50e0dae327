package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jengzang/hexmetrics-backend-go/internal/config"
	"github.com/jengzang/hexmetrics-backend-go/internal/database"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
	"github.com/jengzang/hexmetrics-backend-go/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.NewMigrationManager(db, "../../migrations").Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedOccurrence(t *testing.T, db *sql.DB, country string, year int, taxon int64, lat, lon interface{}, iucn interface{}) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO occurrences
		(country, year, taxon_key, species_name, latitude, longitude, iucn_category)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		country, year, taxon, "sp", lat, lon, iucn)
	if err != nil {
		t.Fatal(err)
	}
}

func seedElement(t *testing.T, db *sql.DB, country, geomType, coordsJSON, tagsJSON string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO osm_elements (country, geom_type, coords_json, tags_json)
		VALUES (?, ?, ?, ?)`, country, geomType, coordsJSON, tagsJSON)
	if err != nil {
		t.Fatal(err)
	}
}

func TestRunBiodiversityPartition(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewAggregationService(db, config.DefaultEngine(), 2)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	// Three records at the same point (species 100 twice, species 200 once),
	// one NULL coordinate and one (0,0) sentinel to reject.
	seedOccurrence(t, db, "ES", 2022, 100, 40.4168, -3.7038, "EN")
	seedOccurrence(t, db, "ES", 2022, 100, 40.4168, -3.7038, nil)
	seedOccurrence(t, db, "ES", 2022, 200, 40.4168, -3.7038, nil)
	seedOccurrence(t, db, "ES", 2022, 300, nil, nil, nil)
	seedOccurrence(t, db, "ES", 2022, 400, 0.0, 0.0, nil)

	diag, err := svc.RunBiodiversityPartition(ctx, models.Partition{Country: "ES", Year: 2022})
	if err != nil {
		t.Fatal(err)
	}

	if diag.TotalRecords != 5 || diag.ValidRecords != 3 || diag.Rejected != 2 {
		t.Errorf("diag = %+v, want 5 total, 3 valid, 2 rejected", diag)
	}
	// One occupied cell per resolution.
	if diag.CellsWritten != 4 {
		t.Errorf("CellsWritten = %d, want 4", diag.CellsWritten)
	}

	cells := repository.NewCellMetricsRepository(db)
	for _, resolution := range []int{9, 8, 7, 6} {
		got, err := cells.List(ctx, models.CellFilter{Country: "ES", Year: 2022, Resolution: resolution})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("resolution %d: %d cells, want 1", resolution, len(got))
		}
		row := got[0]
		if row.OccurrenceCount != 3 || row.SpeciesRichnessCell != 2 {
			t.Errorf("resolution %d: count/richness = %d/%d, want 3/2", resolution, row.OccurrenceCount, row.SpeciesRichnessCell)
		}
		if row.NThreatened != 1 || row.ThreatScore != 4 {
			t.Errorf("resolution %d: threatened/score = %d/%d, want 1/4", resolution, row.NThreatened, row.ThreatScore)
		}
		if row.OccurrencesKm2 <= 0 {
			t.Errorf("resolution %d: density not filled", resolution)
		}
	}
}

func TestRunBiodiversityPartitionRerunReplaces(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewAggregationService(db, config.DefaultEngine(), 1)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	p := models.Partition{Country: "ES", Year: 2022}

	seedOccurrence(t, db, "ES", 2022, 100, 40.4168, -3.7038, nil)
	if _, err := svc.RunBiodiversityPartition(ctx, p); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RunBiodiversityPartition(ctx, p); err != nil {
		t.Fatal(err)
	}

	cells := repository.NewCellMetricsRepository(db)
	got, err := cells.List(ctx, models.CellFilter{Country: "ES"})
	if err != nil {
		t.Fatal(err)
	}
	// Still one row per resolution, not doubled.
	if len(got) != 4 {
		t.Errorf("len(got) = %d after rerun, want 4", len(got))
	}
}

func TestRunFeaturePartition(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewAggregationService(db, config.DefaultEngine(), 1)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	// A building polygon, a dam node, and an untagged node that drops.
	seedElement(t, db, "ES", models.GeomPolygon,
		`[[40.4168,-3.7038],[40.4169,-3.7038],[40.4169,-3.7037],[40.4168,-3.7037]]`,
		`{"building":"yes"}`)
	seedElement(t, db, "ES", models.GeomPoint,
		`[[40.4168,-3.7038]]`, `{"waterway":"dam"}`)
	seedElement(t, db, "ES", models.GeomPoint,
		`[[40.4168,-3.7038]]`, `{"name":"nothing"}`)

	diag, err := svc.RunFeaturePartition(ctx, models.Partition{Country: "ES"})
	if err != nil {
		t.Fatal(err)
	}
	if diag.TotalRecords != 3 || diag.ValidRecords != 2 || diag.Unclassified != 1 {
		t.Errorf("diag = %+v, want 3 total, 2 valid, 1 unclassified", diag)
	}

	osm := repository.NewOSMFeaturesRepository(db)
	for _, resolution := range []int{9, 6} {
		rows, err := osm.ReadPartition(ctx, "ES", resolution)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 {
			t.Fatalf("resolution %d: %d cells, want 1", resolution, len(rows))
		}
		row := rows[0]
		if row.Counts["building"] != 1 || row.Counts["dam"] != 1 {
			t.Errorf("resolution %d: counts = %v, want building and dam", resolution, row.Counts)
		}
		if row.AreaM2["building"] <= 0 {
			t.Errorf("resolution %d: building area not aggregated", resolution)
		}
		if row.HumanFootprintAreaM2 != row.AreaM2["building"] {
			t.Errorf("resolution %d: human footprint = %f, want building area %f",
				resolution, row.HumanFootprintAreaM2, row.AreaM2["building"])
		}
	}
}

func TestRunRecordsBookkeeping(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewAggregationService(db, config.DefaultEngine(), 2)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	seedOccurrence(t, db, "ES", 2022, 100, 40.4168, -3.7038, nil)
	seedOccurrence(t, db, "PT", 2022, 200, 38.7223, -9.1393, nil)

	runID, err := svc.Run(ctx, DomainBiodiversity, []models.Partition{
		{Country: "ES", Year: 2022},
		{Country: "PT", Year: 2022},
	})
	if err != nil {
		t.Fatal(err)
	}

	run, err := repository.NewRunRepository(db).Get(ctx, runID)
	if err != nil {
		t.Fatal(err)
	}
	if run == nil {
		t.Fatal("run not recorded")
	}
	if run.Status != models.RunCompleted || run.Completed != 2 || run.Failed != 0 {
		t.Errorf("run = %+v, want completed 2/0", run)
	}
	if !run.Summary.Valid || run.Summary.String == "" {
		t.Error("run summary not recorded")
	}
}

func TestRunUnknownDomain(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewAggregationService(db, config.DefaultEngine(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Run(context.Background(), "weather", nil); err == nil {
		t.Error("expected error for unknown domain")
	}
}
