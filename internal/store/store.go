// Package store defines the persistence interface for the run archive.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when no run matches the requested ID.
var ErrNotFound = errors.New("run not found")

// Run is one archived engine invocation: the inputs' shape, the headline
// numbers, and the full report as JSON.
type Run struct {
	ID              string          `json:"id"`
	ComputedAt      time.Time       `json:"computed_at"`
	NowUTC          time.Time       `json:"now_utc"`
	IssueCount      int             `json:"issue_count"`
	EpicCount       int             `json:"epic_count"`
	MilestoneCount  int             `json:"milestone_count"`
	ComplianceRate  int             `json:"compliance_rate"`
	ShapeErrorCount int             `json:"shape_error_count"`
	Report          json.RawMessage `json:"report,omitempty"`
}

// Store defines the persistence interface for archived runs.
type Store interface {
	// SaveRun persists a run row.
	SaveRun(ctx context.Context, run *Run) error
	// GetRun fetches one run, including the report body.
	GetRun(ctx context.Context, id string) (*Run, error)
	// ListRuns returns run rows newest first, without report bodies.
	ListRuns(ctx context.Context, limit, offset int) ([]*Run, error)
	// LatestRun fetches the most recent run, including the report body.
	LatestRun(ctx context.Context) (*Run, error)
	// PruneRuns deletes all but the newest keep runs and reports how many
	// rows were removed.
	PruneRuns(ctx context.Context, keep int) (int, error)

	// Lifecycle
	Close() error
}
