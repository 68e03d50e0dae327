package models

// CellAssignment maps resolution -> H3 cell index for one record's
// coordinate. Computed once by the indexer, never mutated. The cell at a
// coarser resolution is always the parent of the cell at the next finer
// resolution for the same coordinate.
type CellAssignment map[int]string

// Cell returns the cell index at the given resolution and whether one exists.
func (a CellAssignment) Cell(resolution int) (string, bool) {
	idx, ok := a[resolution]
	return idx, ok
}
