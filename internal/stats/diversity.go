package stats

import (
	"math"
)

// ShannonIndex calculates the Shannon diversity index H = -Σ p_i·ln(p_i)
// in nats over a set of per-species observation counts. Returns 0 for a
// single species. Callers must not pass an all-zero or empty slice; the
// index is undefined for empty cells and should be omitted there.
func ShannonIndex(counts []float64) float64 {
	total := Sum(counts)
	if total == 0 {
		return 0
	}

	var h float64
	for _, c := range counts {
		if c > 0 {
			p := c / total
			h -= p * math.Log(p)
		}
	}
	return h
}

// SimpsonIndex calculates the Gini–Simpson diversity index 1 - Σ p_i² over a
// set of per-species observation counts. Ranges over [0, 1); 0 for a single
// species.
func SimpsonIndex(counts []float64) float64 {
	total := Sum(counts)
	if total == 0 {
		return 0
	}

	var sumSquares float64
	for _, c := range counts {
		if c > 0 {
			p := c / total
			sumSquares += p * p
		}
	}
	return 1 - sumSquares
}
