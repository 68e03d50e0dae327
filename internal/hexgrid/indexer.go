package hexgrid

import (
	"fmt"

	h3 "github.com/uber/h3-go/v4"

	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// Indexer assigns coordinates to H3 cells at a fixed list of resolutions.
// The finest cell is computed directly from the coordinate; every coarser
// cell is derived as the parent of the next-finer cell, which makes the
// ancestor relation exact by construction.
type Indexer struct {
	resolutions []int // finest first, strictly decreasing
}

// NewIndexer creates an indexer for the given resolutions (finest to
// coarsest).
func NewIndexer(resolutions []int) (*Indexer, error) {
	if len(resolutions) == 0 {
		return nil, fmt.Errorf("no resolutions configured")
	}
	for i, r := range resolutions {
		if r < 0 || r > 15 {
			return nil, fmt.Errorf("resolution %d out of H3 range", r)
		}
		if i > 0 && r >= resolutions[i-1] {
			return nil, fmt.Errorf("resolutions must be strictly finest to coarsest, got %v", resolutions)
		}
	}
	rs := make([]int, len(resolutions))
	copy(rs, resolutions)
	return &Indexer{resolutions: rs}, nil
}

// Resolutions returns the configured resolutions, finest first.
func (ix *Indexer) Resolutions() []int {
	rs := make([]int, len(ix.resolutions))
	copy(rs, ix.resolutions)
	return rs
}

// Assign maps a validated coordinate to one cell per configured resolution.
// An error here means the coordinate escaped validation and is a defect, not
// a data condition; callers must surface it, not swallow it.
func (ix *Indexer) Assign(lat, lon float64) (models.CellAssignment, error) {
	finest := ix.resolutions[0]
	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lon), finest)
	if err != nil {
		return nil, fmt.Errorf("failed to index coordinate (%f, %f) at resolution %d: %w", lat, lon, finest, err)
	}

	assignment := make(models.CellAssignment, len(ix.resolutions))
	assignment[finest] = cell.String()

	for _, r := range ix.resolutions[1:] {
		cell, err = cell.Parent(r)
		if err != nil {
			return nil, fmt.Errorf("failed to derive parent cell at resolution %d: %w", r, err)
		}
		assignment[r] = cell.String()
	}

	return assignment, nil
}

// Neighbors returns the cell indexes within k grid steps of the given cell,
// including the cell itself.
func Neighbors(h3Index string, k int) ([]string, error) {
	cell := h3.Cell(h3.IndexFromString(h3Index))
	if !cell.IsValid() {
		return nil, fmt.Errorf("invalid H3 index %q", h3Index)
	}
	disk, err := cell.GridDisk(k)
	if err != nil {
		return nil, fmt.Errorf("failed to compute grid disk for %s: %w", h3Index, err)
	}
	out := make([]string, 0, len(disk))
	for _, c := range disk {
		out = append(out, c.String())
	}
	return out, nil
}

// CellResolution returns the resolution of an H3 index string.
func CellResolution(h3Index string) (int, error) {
	cell := h3.Cell(h3.IndexFromString(h3Index))
	if !cell.IsValid() {
		return 0, fmt.Errorf("invalid H3 index %q", h3Index)
	}
	return cell.Resolution(), nil
}
