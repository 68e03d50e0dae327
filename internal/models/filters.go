package models

// CellFilter narrows cell-metrics queries.
type CellFilter struct {
	Country     string
	Year        int
	Resolution  int
	MinRichness int64
	Limit       int
}

// Partition identifies one independently-processed unit of work. Year is 0
// for the land-feature domain, which partitions by country only.
type Partition struct {
	Country string `json:"country"`
	Year    int    `json:"year,omitempty"`
}
