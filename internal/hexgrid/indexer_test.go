package hexgrid

import (
	"math/rand"
	"testing"

	h3 "github.com/uber/h3-go/v4"
)

func TestNewIndexerRejectsBadResolutions(t *testing.T) {
	tests := []struct {
		name        string
		resolutions []int
	}{
		{"empty", nil},
		{"not descending", []int{6, 7, 8, 9}},
		{"duplicate", []int{9, 9, 8}},
		{"out of range", []int{16, 9}},
		{"negative", []int{9, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewIndexer(tt.resolutions); err == nil {
				t.Errorf("NewIndexer(%v) succeeded, want error", tt.resolutions)
			}
		})
	}
}

func TestAssignCoversAllResolutions(t *testing.T) {
	ix, err := NewIndexer([]int{9, 8, 7, 6})
	if err != nil {
		t.Fatal(err)
	}

	assignment, err := ix.Assign(40.4168, -3.7038)
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range []int{9, 8, 7, 6} {
		idx, ok := assignment.Cell(r)
		if !ok {
			t.Fatalf("no cell at resolution %d", r)
		}
		got, err := CellResolution(idx)
		if err != nil {
			t.Fatal(err)
		}
		if got != r {
			t.Errorf("cell %s has resolution %d, want %d", idx, got, r)
		}
	}
}

// TestAncestorInvariant checks over random coordinates that every coarser
// cell in the assignment is the exact H3 parent of the next finer cell.
func TestAncestorInvariant(t *testing.T) {
	ix, err := NewIndexer([]int{9, 8, 7, 6})
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		lat := rng.Float64()*180 - 90
		lon := rng.Float64()*360 - 180
		if lat == 0 && lon == 0 {
			continue
		}

		assignment, err := ix.Assign(lat, lon)
		if err != nil {
			t.Fatalf("Assign(%f, %f): %v", lat, lon, err)
		}

		resolutions := []int{9, 8, 7, 6}
		for j := 1; j < len(resolutions); j++ {
			finer, _ := assignment.Cell(resolutions[j-1])
			coarser, _ := assignment.Cell(resolutions[j])

			cell := h3.Cell(h3.IndexFromString(finer))
			parent, err := cell.Parent(resolutions[j])
			if err != nil {
				t.Fatal(err)
			}
			if parent.String() != coarser {
				t.Fatalf("coordinate (%f, %f): cell %s parent at res %d is %s, assignment says %s",
					lat, lon, finer, resolutions[j], parent.String(), coarser)
			}
		}
	}
}

func TestAssignDeterministic(t *testing.T) {
	ix, err := NewIndexer([]int{9, 8, 7, 6})
	if err != nil {
		t.Fatal(err)
	}

	a1, err := ix.Assign(41.3874, 2.1686)
	if err != nil {
		t.Fatal(err)
	}
	a2, err := ix.Assign(41.3874, 2.1686)
	if err != nil {
		t.Fatal(err)
	}

	for r, idx := range a1 {
		if a2[r] != idx {
			t.Errorf("resolution %d: %s != %s on rerun", r, idx, a2[r])
		}
	}
}

func TestNeighbors(t *testing.T) {
	ix, err := NewIndexer([]int{7})
	if err != nil {
		t.Fatal(err)
	}
	assignment, err := ix.Assign(40.4168, -3.7038)
	if err != nil {
		t.Fatal(err)
	}
	center, _ := assignment.Cell(7)

	neighbors, err := Neighbors(center, 1)
	if err != nil {
		t.Fatal(err)
	}
	// A k=1 disk around a hexagon holds the center plus six neighbors.
	if len(neighbors) != 7 {
		t.Errorf("len(neighbors) = %d, want 7", len(neighbors))
	}

	found := false
	for _, n := range neighbors {
		if n == center {
			found = true
		}
	}
	if !found {
		t.Error("grid disk does not contain the center cell")
	}

	if _, err := Neighbors("not-a-cell", 1); err == nil {
		t.Error("Neighbors accepted an invalid index")
	}
}
