package config

// EngineConfig holds the immutable constant tables the aggregation engine is
// constructed with. It is passed in explicitly rather than read from globals
// so that tests can substitute their own tables.
type EngineConfig struct {
	// Resolutions lists the target H3 resolutions, finest to coarsest.
	// The finest resolution is indexed directly from the coordinate; every
	// coarser cell is derived as the parent of the next-finer cell.
	Resolutions []int

	// HexAreaM2 maps resolution -> average cell area in m². Percentage and
	// density metrics are computed against these constants, never against a
	// per-cell area computed at runtime.
	HexAreaM2 map[int]float64

	// SeverityWeights maps IUCN category codes to threat weights. Categories
	// not present weigh 0.
	SeverityWeights map[string]int

	// ThreatenedMinWeight is the minimum severity weight for a species to be
	// counted as threatened (VU and worse).
	ThreatenedMinWeight int

	// UncertaintyCutoffM is the coordinate-uncertainty threshold (meters)
	// used by the data-quality composite.
	UncertaintyCutoffM float64
}

// DefaultEngine returns the production constant tables.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		Resolutions: []int{9, 8, 7, 6},
		HexAreaM2: map[int]float64{
			6: 36129062.164,
			7: 5161293.360,
			8: 737327.598,
			9: 105332.513,
		},
		SeverityWeights: map[string]int{
			"CR": 5,
			"EN": 4,
			"VU": 3,
			"NT": 2,
		},
		ThreatenedMinWeight: 3,
		UncertaintyCutoffM:  10000,
	}
}

// SeverityWeight returns the threat weight for an IUCN category code.
func (e EngineConfig) SeverityWeight(iucn string) int {
	return e.SeverityWeights[iucn]
}
