package pipeline

import (
	"github.com/jengzang/hexmetrics-backend-go/internal/classify"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// OccurrenceCellRow is one row of the long-form grouped table: an occurrence
// attached to one (resolution, cell) pair of its assignment.
type OccurrenceCellRow struct {
	Resolution int
	H3Index    string
	Occ        *models.Occurrence
}

// FeatureCellRow is the land-feature counterpart of OccurrenceCellRow.
type FeatureCellRow struct {
	Resolution int
	H3Index    string
	Feature    *classify.ClassifiedFeature
}

// ExplodeOccurrence fans one occurrence out into one grouped row per
// configured resolution. A record with N resolutions yields exactly N rows,
// each referencing the same underlying occurrence.
func ExplodeOccurrence(occ *models.Occurrence, assignment models.CellAssignment, resolutions []int) []OccurrenceCellRow {
	rows := make([]OccurrenceCellRow, 0, len(resolutions))
	for _, r := range resolutions {
		idx, ok := assignment.Cell(r)
		if !ok {
			continue
		}
		rows = append(rows, OccurrenceCellRow{Resolution: r, H3Index: idx, Occ: occ})
	}
	return rows
}

// ExplodeFeature fans one classified feature out into one grouped row per
// configured resolution.
func ExplodeFeature(f *classify.ClassifiedFeature, assignment models.CellAssignment, resolutions []int) []FeatureCellRow {
	rows := make([]FeatureCellRow, 0, len(resolutions))
	for _, r := range resolutions {
		idx, ok := assignment.Cell(r)
		if !ok {
			continue
		}
		rows = append(rows, FeatureCellRow{Resolution: r, H3Index: idx, Feature: f})
	}
	return rows
}
