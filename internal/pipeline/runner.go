package pipeline

import (
	"context"
	"log"
	"sync"

	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// TaskFunc processes one partition end-to-end. It must be a pure function of
// the partition: no shared mutable state with other partitions, idempotent
// replace-on-write at the storage boundary.
type TaskFunc func(ctx context.Context, p models.Partition) error

// PartitionError pairs a failed partition with its error, so failures are
// always reported with the partition key attached.
type PartitionError struct {
	Partition models.Partition
	Err       error
}

// Runner executes partition tasks on a bounded worker pool. Partitions never
// coordinate beyond the work queue; one partition's failure does not stop the
// others.
type Runner struct {
	workers int
}

// NewRunner creates a runner with the given worker count.
func NewRunner(workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{workers: workers}
}

// Run processes all partitions and returns the failures. A canceled context
// stops the feed; in-flight partitions finish or fail on their own I/O.
func (r *Runner) Run(ctx context.Context, partitions []models.Partition, fn TaskFunc) []PartitionError {
	tasks := make(chan models.Partition)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var failures []PartitionError

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range tasks {
				if err := fn(ctx, p); err != nil {
					log.Printf("[Runner] partition %s/%d failed: %v", p.Country, p.Year, err)
					mu.Lock()
					failures = append(failures, PartitionError{Partition: p, Err: err})
					mu.Unlock()
				}
			}
		}()
	}

	for i, p := range partitions {
		select {
		case <-ctx.Done():
			// Abandoning is safe: a half-finished partition has simply not
			// written its output yet.
			log.Printf("[Runner] context canceled, %d partitions not scheduled", len(partitions)-i)
		case tasks <- p:
			continue
		}
		break
	}
	close(tasks)
	wg.Wait()

	return failures
}
