// Package snapshot loads and decodes tracker exports into the engine's
// input model. Decoding is tolerant: a malformed record becomes a shape
// error and the rest of the snapshot survives.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/alfredjeanlab/gauge/internal/model"
)

// wire is the top-level snapshot document. Entities stay raw so one bad
// record cannot fail the whole decode.
type wire struct {
	Issues     []json.RawMessage `json:"issues"`
	Epics      []json.RawMessage `json:"epics"`
	Milestones []json.RawMessage `json:"milestones"`
}

// Decode parses a snapshot document. The input is either an object with
// issues/epics/milestones arrays or a bare array of issues. Records that
// fail to decode or validate are excluded and reported as shape errors;
// tolerated data-quality problems become warnings.
func Decode(data []byte) (*model.Snapshot, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty snapshot input")
	}

	var doc wire
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc.Issues); err != nil {
			return nil, fmt.Errorf("parse snapshot: %w", err)
		}
	} else if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	snap := &model.Snapshot{}
	for n, raw := range doc.Issues {
		issue, warnings, err := decodeIssue(raw)
		if err != nil {
			snap.ShapeErrors = append(snap.ShapeErrors, shapeError("issue", n, raw, err))
			continue
		}
		if fields := model.ValidateIssue(issue); len(fields) > 0 {
			snap.ShapeErrors = append(snap.ShapeErrors, model.ShapeError{
				Entity: "issue", Index: n, ID: issue.ID, Fields: fields,
			})
			continue
		}
		snap.Issues = append(snap.Issues, *issue)
		snap.Warnings = append(snap.Warnings, warnings...)
	}
	for n, raw := range doc.Epics {
		var epic model.Epic
		if err := json.Unmarshal(raw, &epic); err != nil {
			snap.ShapeErrors = append(snap.ShapeErrors, shapeError("epic", n, raw, err))
			continue
		}
		if fields := model.ValidateEpic(&epic); len(fields) > 0 {
			snap.ShapeErrors = append(snap.ShapeErrors, model.ShapeError{
				Entity: "epic", Index: n, ID: epic.ID, Fields: fields,
			})
			continue
		}
		snap.Epics = append(snap.Epics, epic)
	}
	for n, raw := range doc.Milestones {
		var ms model.Milestone
		if err := json.Unmarshal(raw, &ms); err != nil {
			snap.ShapeErrors = append(snap.ShapeErrors, shapeError("milestone", n, raw, err))
			continue
		}
		if fields := model.ValidateMilestone(&ms); len(fields) > 0 {
			snap.ShapeErrors = append(snap.ShapeErrors, model.ShapeError{
				Entity: "milestone", Index: n, ID: ms.ID, Fields: fields,
			})
			continue
		}
		snap.Milestones = append(snap.Milestones, ms)
	}

	return snap, nil
}

// issueAlias strips Issue's methods so the wire struct can embed it
// without recursing into custom unmarshaling.
type issueAlias model.Issue

// decodeIssue unmarshals one issue record. The due_date field is shadowed
// so an unparseable value degrades to a warning instead of rejecting the
// record; a closed_at before created_at is dropped the same way.
func decodeIssue(raw json.RawMessage) (*model.Issue, []model.Warning, error) {
	var issue model.Issue
	shadow := struct {
		*issueAlias
		DueDate json.RawMessage `json:"due_date"`
	}{issueAlias: (*issueAlias)(&issue)}

	if err := json.Unmarshal(raw, &shadow); err != nil {
		return nil, nil, err
	}

	var warnings []model.Warning
	if len(shadow.DueDate) > 0 && !bytes.Equal(shadow.DueDate, []byte("null")) {
		var s string
		if err := json.Unmarshal(shadow.DueDate, &s); err != nil {
			warnings = append(warnings, model.Warning{
				IssueID: issue.ID, Field: "due_date",
				Message: fmt.Sprintf("not a string: %s", shadow.DueDate),
			})
		} else if s != "" {
			d, err := model.ParseDate(s)
			if err != nil {
				warnings = append(warnings, model.Warning{
					IssueID: issue.ID, Field: "due_date",
					Message: fmt.Sprintf("unparseable date %q", s),
				})
			} else {
				issue.DueDate = &d
			}
		}
	}

	if issue.ClosedAt != nil && issue.ClosedAt.Before(issue.CreatedAt) {
		warnings = append(warnings, model.Warning{
			IssueID: issue.ID, Field: "closed_at",
			Message: fmt.Sprintf("precedes created_at (%s < %s)",
				issue.ClosedAt.Format("2006-01-02"), issue.CreatedAt.Format("2006-01-02")),
		})
		issue.ClosedAt = nil
	}
	if !issue.UpdatedAt.IsZero() && issue.UpdatedAt.Before(issue.CreatedAt) {
		warnings = append(warnings, model.Warning{
			IssueID: issue.ID, Field: "updated_at",
			Message: "precedes created_at",
		})
		issue.UpdatedAt = issue.CreatedAt
	}

	return &issue, warnings, nil
}

// shapeError builds the decode-failure variant, salvaging the record ID
// when the raw document still carries one.
func shapeError(entity string, index int, raw json.RawMessage, err error) model.ShapeError {
	var probe struct {
		ID int `json:"id"`
	}
	_ = json.Unmarshal(raw, &probe)
	return model.ShapeError{Entity: entity, Index: index, ID: probe.ID, Cause: err.Error()}
}
