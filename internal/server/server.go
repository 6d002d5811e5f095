// Package server exposes the report engine over HTTP: snapshot ingestion,
// report sections, CSV projections, and the run archive.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/alfredjeanlab/gauge/internal/engine"
	"github.com/alfredjeanlab/gauge/internal/events"
	"github.com/alfredjeanlab/gauge/internal/idgen"
	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
	"github.com/alfredjeanlab/gauge/internal/snapshot"
	"github.com/alfredjeanlab/gauge/internal/store"
)

// ReportServer holds the latest computed report and serves it over HTTP.
// The store is optional; when nil, runs are not archived.
type ReportServer struct {
	store     store.Store
	publisher events.Publisher
	rules     *rules.Effective
	logger    *slog.Logger

	mu      sync.RWMutex
	current *model.Report
	runID   string
}

// RunSummary is the response body for a snapshot submission.
type RunSummary struct {
	RunID           string    `json:"runId"`
	IssueCount      int       `json:"issueCount"`
	EpicCount       int       `json:"epicCount"`
	MilestoneCount  int       `json:"milestoneCount"`
	ComplianceRate  int       `json:"complianceRate"`
	ShapeErrorCount int       `json:"shapeErrorCount"`
	NowUTC          time.Time `json:"nowUtc"`
}

// New returns a ReportServer. store may be nil to disable the run archive.
func New(s store.Store, p events.Publisher, cfg *rules.Effective, logger *slog.Logger) *ReportServer {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	if cfg == nil {
		cfg = rules.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServer{
		store:     s,
		publisher: p,
		rules:     cfg,
		logger:    logger,
	}
}

// Ingest decodes a snapshot document, recomputes the report, and swaps it
// in as the current one. Event publishing and run archival are
// best-effort; their failures are logged and never surfaced.
func (s *ReportServer) Ingest(ctx context.Context, data []byte, source string, now time.Time) (*RunSummary, error) {
	snap, err := snapshot.Decode(data)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.TopicSnapshotLoaded, events.SnapshotLoaded{
		Source:          source,
		IssueCount:      len(snap.Issues),
		EpicCount:       len(snap.Epics),
		MilestoneCount:  len(snap.Milestones),
		ShapeErrorCount: len(snap.ShapeErrors),
	}); err != nil {
		s.logger.Warn("failed to publish event", "topic", events.TopicSnapshotLoaded, "error", err)
	}

	started := time.Now()
	report := engine.Compute(snap, s.rules, now)

	runID, err := idgen.Generate()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = report
	s.runID = runID
	s.mu.Unlock()

	if err := s.publisher.Publish(ctx, events.TopicReportComputed, events.ReportComputed{
		RunID:          runID,
		IssueCount:     report.Stats.TotalIssues,
		ComplianceRate: report.Stats.ComplianceRate,
		NowUTC:         report.NowUTC,
		DurationMS:     time.Since(started).Milliseconds(),
	}); err != nil {
		s.logger.Warn("failed to publish event", "topic", events.TopicReportComputed, "error", err)
	}

	s.archive(ctx, runID, snap, report)

	return &RunSummary{
		RunID:           runID,
		IssueCount:      len(snap.Issues),
		EpicCount:       len(snap.Epics),
		MilestoneCount:  len(snap.Milestones),
		ComplianceRate:  report.Stats.ComplianceRate,
		ShapeErrorCount: len(snap.ShapeErrors),
		NowUTC:          report.NowUTC,
	}, nil
}

// archive persists the run when a store is configured.
func (s *ReportServer) archive(ctx context.Context, runID string, snap *model.Snapshot, report *model.Report) {
	if s.store == nil {
		return
	}

	body, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn("failed to marshal report for archive", "run_id", runID, "error", err)
		return
	}
	run := &store.Run{
		ID:              runID,
		ComputedAt:      time.Now().UTC(),
		NowUTC:          report.NowUTC,
		IssueCount:      len(snap.Issues),
		EpicCount:       len(snap.Epics),
		MilestoneCount:  len(snap.Milestones),
		ComplianceRate:  report.Stats.ComplianceRate,
		ShapeErrorCount: len(snap.ShapeErrors),
		Report:          body,
	}
	if err := s.store.SaveRun(ctx, run); err != nil {
		s.logger.Warn("failed to archive run", "run_id", runID, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, events.TopicRunArchived, events.RunArchived{RunID: runID}); err != nil {
		s.logger.Warn("failed to publish event", "topic", events.TopicRunArchived, "error", err)
	}
}

// Report returns the current report, or nil before the first ingestion.
func (s *ReportServer) Report() *model.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
