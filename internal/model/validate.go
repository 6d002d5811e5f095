package model

import (
	"fmt"
	"strings"
)

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ShapeError reports that a snapshot record violates the input schema.
// The offending record is excluded from downstream reports.
type ShapeError struct {
	Entity string       `json:"entity"` // "issue", "epic", or "milestone"
	Index  int          `json:"index"`  // position in the input sequence
	ID     int          `json:"id,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
	Cause  string       `json:"cause,omitempty"` // decode error when Fields is empty
}

// Error formats the shape error as a semicolon-separated list of field messages.
func (e *ShapeError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s[%d]: %s", e.Entity, e.Index, e.Cause)
	}
	parts := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%s[%d]: %s", e.Entity, e.Index, strings.Join(parts, "; "))
}

// Warning flags a tolerated data-quality problem on an entity; the field in
// question is treated as absent.
type Warning struct {
	IssueID int    `json:"issueId"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateIssue checks an issue against the snapshot schema constraints
// that JSON decoding alone cannot enforce. It returns field errors, or nil
// when the issue is well formed.
func ValidateIssue(i *Issue) []FieldError {
	var errs []FieldError

	if i.IID <= 0 {
		errs = append(errs, FieldError{Field: "iid", Message: fmt.Sprintf("must be positive, got %d", i.IID)})
	}
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "is required"})
	}
	if !i.State.IsValid() {
		errs = append(errs, FieldError{Field: "state", Message: fmt.Sprintf("invalid value %q", i.State)})
	}
	if i.Weight != nil && *i.Weight < 0 {
		errs = append(errs, FieldError{Field: "weight", Message: fmt.Sprintf("must be nonnegative, got %d", *i.Weight)})
	}
	if i.CreatedAt.IsZero() {
		errs = append(errs, FieldError{Field: "created_at", Message: "is required"})
	}
	for n, l := range i.Links {
		if !l.Relation.IsValid() {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("links[%d].relation", n),
				Message: fmt.Sprintf("invalid value %q", l.Relation),
			})
		}
	}

	return errs
}

// ValidateEpic checks an epic against the snapshot schema constraints.
func ValidateEpic(e *Epic) []FieldError {
	var errs []FieldError

	if e.ID <= 0 {
		errs = append(errs, FieldError{Field: "id", Message: fmt.Sprintf("must be positive, got %d", e.ID)})
	}
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "is required"})
	}

	return errs
}

// ValidateMilestone checks a milestone against the snapshot schema constraints.
func ValidateMilestone(m *Milestone) []FieldError {
	var errs []FieldError

	if m.ID <= 0 {
		errs = append(errs, FieldError{Field: "id", Message: fmt.Sprintf("must be positive, got %d", m.ID)})
	}
	if strings.TrimSpace(m.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "is required"})
	}

	return errs
}
