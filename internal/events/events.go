// Package events publishes report lifecycle notifications. Publishing is
// best-effort: callers log failures and keep going.
package events

import (
	"context"
	"time"
)

// Event topic constants
const (
	TopicSnapshotLoaded = "gauge.snapshot.loaded"
	TopicReportComputed = "gauge.report.computed"
	TopicRunArchived    = "gauge.run.archived"
)

// SnapshotLoaded is emitted after a snapshot document is decoded.
type SnapshotLoaded struct {
	Source          string `json:"source"`
	IssueCount      int    `json:"issue_count"`
	EpicCount       int    `json:"epic_count"`
	MilestoneCount  int    `json:"milestone_count"`
	ShapeErrorCount int    `json:"shape_error_count"`
}

// ReportComputed is emitted after the engine produces a report.
type ReportComputed struct {
	RunID          string    `json:"run_id"`
	IssueCount     int       `json:"issue_count"`
	ComplianceRate int       `json:"compliance_rate"`
	NowUTC         time.Time `json:"now_utc"`
	DurationMS     int64     `json:"duration_ms"`
}

// RunArchived is emitted after a run row is persisted.
type RunArchived struct {
	RunID string `json:"run_id"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
