package pipeline

import (
	"database/sql"
	"sort"

	"github.com/jengzang/hexmetrics-backend-go/internal/config"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
	"github.com/jengzang/hexmetrics-backend-go/internal/stats"
)

// Aggregator reduces grouped occurrence rows into one metrics row per cell
// for one (partition, resolution) pair.
type Aggregator struct {
	engine config.EngineConfig
}

// NewAggregator creates an aggregator with the given constant tables.
func NewAggregator(engine config.EngineConfig) *Aggregator {
	return &Aggregator{engine: engine}
}

// cellAccumulator collects per-cell state during the single pass over the
// grouped rows. Diversity indices are computed on the pre-reduced
// species-count table, never on raw rows.
type cellAccumulator struct {
	occurrenceCount int64
	speciesCounts   map[int64]int64 // taxon key -> observation count
	maxSeverity     map[int64]int   // taxon key -> worst severity weight seen
	invasive        map[int64]bool

	resolvedTaxon  int64 // rows with a resolvable taxon key
	uncertaintyBad int64 // rows with uncertainty > cutoff, or missing per-row
	resolvedStatus int64 // rows with a resolved IUCN category
}

// AggregateCells produces one CellMetricsRow per distinct cell present in the
// grouped rows for a single (country, year, resolution). Cells with zero rows
// never appear; an empty input produces an empty output, which is a valid
// terminal state.
func (a *Aggregator) AggregateCells(country string, year, resolution int, rows []OccurrenceCellRow, presence models.ColumnPresence) []models.CellMetricsRow {
	cells := make(map[string]*cellAccumulator)

	for _, row := range rows {
		acc, ok := cells[row.H3Index]
		if !ok {
			acc = &cellAccumulator{
				speciesCounts: make(map[int64]int64),
				maxSeverity:   make(map[int64]int),
				invasive:      make(map[int64]bool),
			}
			cells[row.H3Index] = acc
		}

		occ := row.Occ
		acc.occurrenceCount++

		if occ.TaxonKey > 0 {
			acc.resolvedTaxon++
			acc.speciesCounts[occ.TaxonKey]++

			if occ.IUCNCategory.Valid {
				w := a.engine.SeverityWeight(occ.IUCNCategory.String)
				if w > acc.maxSeverity[occ.TaxonKey] {
					acc.maxSeverity[occ.TaxonKey] = w
				}
			}
			if occ.IsInvasive {
				acc.invasive[occ.TaxonKey] = true
			}
		}

		// Per-row missing values count against their sub-score; the
		// sub-scores themselves are only included when the partition carries
		// the column at all (see presence handling below).
		if !occ.CoordUncertaintyM.Valid || occ.CoordUncertaintyM.Float64 > a.engine.UncertaintyCutoffM {
			acc.uncertaintyBad++
		}
		if occ.IUCNCategory.Valid && occ.IUCNCategory.String != "" {
			acc.resolvedStatus++
		}
	}

	out := make([]models.CellMetricsRow, 0, len(cells))
	for h3Index, acc := range cells {
		row := models.CellMetricsRow{
			Country:             country,
			Year:                year,
			H3Resolution:        resolution,
			H3Index:             h3Index,
			OccurrenceCount:     acc.occurrenceCount,
			SpeciesRichnessCell: int64(len(acc.speciesCounts)),
		}

		if len(acc.speciesCounts) > 0 {
			counts := make([]float64, 0, len(acc.speciesCounts))
			for _, c := range acc.speciesCounts {
				counts = append(counts, float64(c))
			}
			row.ShannonH = sql.NullFloat64{Float64: stats.ShannonIndex(counts), Valid: true}
			row.Simpson1MinusD = sql.NullFloat64{Float64: stats.SimpsonIndex(counts), Valid: true}
		}

		// A species observed many times contributes its weight once.
		for _, w := range acc.maxSeverity {
			row.ThreatScore += int64(w)
			if w >= a.engine.ThreatenedMinWeight {
				row.NThreatened++
			}
		}
		row.NInvasive = int64(len(acc.invasive))

		row.DQI = a.dataQuality(acc, presence)

		out = append(out, row)
	}

	// Deterministic output order: reruns on unchanged input must produce
	// identical tables.
	sort.Slice(out, func(i, j int) bool { return out[i].H3Index < out[j].H3Index })
	return out
}

// dataQuality computes the composite DQI as the mean of the sub-scores that
// are computable for this partition. A sub-score whose source column is
// absent for the whole partition is excluded from the mean entirely, not
// treated as zero.
func (a *Aggregator) dataQuality(acc *cellAccumulator, presence models.ColumnPresence) sql.NullFloat64 {
	if acc.occurrenceCount == 0 {
		return sql.NullFloat64{}
	}
	total := float64(acc.occurrenceCount)

	scores := []float64{
		float64(acc.resolvedTaxon) / total, // c1: resolvable identifier share
	}
	if presence.HasUncertainty {
		scores = append(scores, 1-float64(acc.uncertaintyBad)/total) // c2
	}
	if presence.HasStatus {
		scores = append(scores, float64(acc.resolvedStatus)/total) // c3
	}

	return sql.NullFloat64{Float64: stats.Mean(scores), Valid: true}
}
