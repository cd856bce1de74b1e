package workflow

import (
	"github.com/google/uuid"

	"github.com/odmkit/webodm-client/internal/model"
)

// ItemOutcome records the result of one unit of work in a batch: one task
// for restart/cancel/remove, one task+asset pair for downloads.
type ItemOutcome struct {
	TaskID   model.TaskID
	TaskName string
	Asset    string
	Path     string
	Err      error
}

// Succeeded reports whether the item completed without error.
func (o ItemOutcome) Succeeded() bool { return o.Err == nil }

// BatchReport tallies a batch operation. Batches are best-effort for all
// items: the report always covers every attempted item, and
// SucceededCount()+FailedCount() == Total().
type BatchReport struct {
	// OperationID labels one batch run in logs and progress output.
	OperationID string

	Items []ItemOutcome

	// Skipped lists tasks excluded before any request was issued, e.g.
	// completed tasks dropped from a cancel batch.
	Skipped []model.Task
}

func newBatchReport() *BatchReport {
	return &BatchReport{OperationID: uuid.NewString()}
}

func (r *BatchReport) add(outcome ItemOutcome) {
	r.Items = append(r.Items, outcome)
}

// Total returns the number of attempted items.
func (r *BatchReport) Total() int { return len(r.Items) }

// SucceededCount returns the number of items that completed.
func (r *BatchReport) SucceededCount() int {
	n := 0
	for _, item := range r.Items {
		if item.Succeeded() {
			n++
		}
	}
	return n
}

// FailedCount returns the number of items that failed.
func (r *BatchReport) FailedCount() int {
	return r.Total() - r.SucceededCount()
}

// Failures returns the failed items.
func (r *BatchReport) Failures() []ItemOutcome {
	var failed []ItemOutcome
	for _, item := range r.Items {
		if !item.Succeeded() {
			failed = append(failed, item)
		}
	}
	return failed
}
