package models

import "database/sql"

// Run statuses
const (
	RunPending   = "pending"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// AggregationRun tracks one invocation of the aggregation pipeline over a set
// of partitions.
type AggregationRun struct {
	ID         int64          `json:"id" db:"id"`
	Domain     string         `json:"domain" db:"domain"` // "biodiversity" or "landfeature"
	Status     string         `json:"status" db:"status"`
	Partitions int            `json:"partitions" db:"partitions"`
	Completed  int            `json:"completed" db:"completed"`
	Failed     int            `json:"failed" db:"failed"`
	Summary    sql.NullString `json:"summary" db:"summary"`
	Error      sql.NullString `json:"error" db:"error"`
	CreatedAt  string         `json:"created_at" db:"created_at"`
	StartedAt  sql.NullString `json:"started_at" db:"started_at"`
	FinishedAt sql.NullString `json:"finished_at" db:"finished_at"`
}

// PartitionDiagnostics counts per-record outcomes for one partition pass.
// Rejected and unmatched records are data conditions, not errors; they are
// reported here and nowhere else.
type PartitionDiagnostics struct {
	Country      string `json:"country"`
	Year         int    `json:"year,omitempty"`
	TotalRecords int    `json:"total_records"`
	ValidRecords int    `json:"valid_records"`
	Rejected     int    `json:"rejected"`
	Unclassified int    `json:"unclassified,omitempty"`
	CellsWritten int    `json:"cells_written"`
}
