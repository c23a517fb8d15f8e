package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Status is the outcome of one collection in a run.
type Status string

const (
	StatusMigrated Status = "migrated"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// CollectionResult records what happened to one collection.
type CollectionResult struct {
	Name   string `json:"name"`
	Status Status `json:"status"`

	// Replaced is set when the collection already existed at the
	// destination and was recreated.
	Replaced bool `json:"replaced,omitempty"`

	SourceCount      uint64        `json:"source_count"`
	DestinationCount uint64        `json:"destination_count"`
	Batches          int           `json:"batches"`
	Duration         time.Duration `json:"duration"`
	Error            string        `json:"error,omitempty"`
}

// Report is the summary of one migration run.
type Report struct {
	RunID           string             `json:"run_id"`
	StartedAt       time.Time          `json:"started_at"`
	FinishedAt      time.Time          `json:"finished_at"`
	CollisionAction string             `json:"collision_action"`
	BatchSize       int                `json:"batch_size"`
	Collections     []CollectionResult `json:"collections"`

	// Error is the error the run ended with, if any.
	Error string `json:"error,omitempty"`
}

// New starts a report with a fresh run id.
func New(collisionAction string, batchSize int) *Report {
	return &Report{
		RunID:           uuid.NewString(),
		StartedAt:       time.Now().UTC(),
		CollisionAction: collisionAction,
		BatchSize:       batchSize,
	}
}

func (r *Report) Add(result CollectionResult) {
	r.Collections = append(r.Collections, result)
}

// Finish stamps the end time and the run error.
func (r *Report) Finish(err error) {
	r.FinishedAt = time.Now().UTC()
	if err != nil {
		r.Error = err.Error()
	}
}

// Count returns how many collections ended with the given status.
func (r *Report) Count(status Status) int {
	return lo.CountBy(r.Collections, func(c CollectionResult) bool {
		return c.Status == status
	})
}

// Failed reports whether the run ended with an error or any collection failed.
func (r *Report) Failed() bool {
	return r.Error != "" || r.Count(StatusFailed) > 0
}

// Names returns the collection names with the given status, in report order.
func (r *Report) Names(status Status) []string {
	return lo.FilterMap(r.Collections, func(c CollectionResult, _ int) (string, bool) {
		return c.Name, c.Status == status
	})
}

// Fields flattens the report summary into log fields.
func (r *Report) Fields() map[string]interface{} {
	return map[string]interface{}{
		"run_id":           r.RunID,
		"collision_action": r.CollisionAction,
		"batch_size":       r.BatchSize,
		"migrated":         r.Count(StatusMigrated),
		"skipped":          r.Count(StatusSkipped),
		"failed":           r.Count(StatusFailed),
		"duration":         r.FinishedAt.Sub(r.StartedAt).String(),
		"error":            r.Error,
	}
}
