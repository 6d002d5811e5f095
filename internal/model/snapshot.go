// Package model defines the snapshot input schema and the report bundle
// produced by the analytics engine.
package model

import (
	"fmt"
	"strings"
	"time"
)

// IssueState represents the lifecycle state of an issue.
// The wire value "opened" denotes an open issue.
type IssueState string

const (
	StateOpened IssueState = "opened"
	StateClosed IssueState = "closed"
)

// String returns the string representation of the state.
func (s IssueState) String() string {
	return string(s)
}

// IsValid checks whether the state is a known value.
func (s IssueState) IsValid() bool {
	switch s {
	case StateOpened, StateClosed:
		return true
	}
	return false
}

// IsOpen reports whether the state denotes an open issue.
func (s IssueState) IsOpen() bool {
	return s == StateOpened
}

// LinkRelation categorizes a link between two issues.
type LinkRelation string

const (
	RelationBlocks    LinkRelation = "blocks"
	RelationBlockedBy LinkRelation = "blocked_by"
	RelationRelatesTo LinkRelation = "relates_to"
)

// String returns the string representation of the relation.
func (r LinkRelation) String() string {
	return string(r)
}

// IsValid checks whether the relation is a known value.
func (r LinkRelation) IsValid() bool {
	switch r {
	case RelationBlocks, RelationBlockedBy, RelationRelatesTo:
		return true
	}
	return false
}

// Date is a calendar date without a time component. It unmarshals from
// "2006-01-02" and, for tolerance, from a full RFC 3339 timestamp.
type Date struct {
	time.Time
}

// ParseDate parses an ISO calendar date or RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date{t.UTC()}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date{t.UTC()}, nil
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// UnmarshalJSON decodes a JSON string into a Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes the Date as a "2006-01-02" JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// User identifies an author or assignee.
type User struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Key returns the stable identity for the user: the username when present,
// otherwise the display name.
func (u User) Key() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Name
}

// Display returns the human-readable name, falling back to the username.
func (u User) Display() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Link is a directional relation from the carrying issue to another issue.
type Link struct {
	TargetIID int          `json:"target_iid"`
	Relation  LinkRelation `json:"relation"`
}

// EpicRef is the epic reference embedded in an issue.
type EpicRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// MilestoneRef is the milestone reference embedded in an issue.
type MilestoneRef struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	DueDate *Date  `json:"due_date,omitempty"`
}

// Issue is a unit of work extracted from the tracking platform.
type Issue struct {
	ID          int           `json:"id"`
	IID         int           `json:"iid"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	State       IssueState    `json:"state"`
	Author      *User         `json:"author,omitempty"`
	Assignees   []User        `json:"assignees,omitempty"`
	Labels      []string      `json:"labels,omitempty"`
	Epic        *EpicRef      `json:"epic,omitempty"`
	Milestone   *MilestoneRef `json:"milestone,omitempty"`
	Weight      *int          `json:"weight,omitempty"`
	DueDate     *Date         `json:"due_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ClosedAt    *time.Time    `json:"closed_at,omitempty"`
	WebURL      string        `json:"web_url,omitempty"`
	Links       []Link        `json:"links,omitempty"`
}

// IsClosed reports whether the issue is closed.
func (i *Issue) IsClosed() bool {
	return i.State == StateClosed
}

// Epic is a container grouping related issues.
type Epic struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Labels    []string `json:"labels,omitempty"`
	StartDate *Date    `json:"start_date,omitempty"`
	DueDate   *Date    `json:"due_date,omitempty"`
	ParentID  *int     `json:"parent_id,omitempty"`
	WebURL    string   `json:"web_url,omitempty"`
}

// Milestone is a dated grouping of issues.
type Milestone struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	State   string `json:"state,omitempty"`
	DueDate *Date  `json:"due_date,omitempty"`
}

// Snapshot is the engine's input: ordered sequences of entities plus the
// shape errors and warnings collected while decoding them.
type Snapshot struct {
	Issues      []Issue      `json:"issues"`
	Epics       []Epic       `json:"epics,omitempty"`
	Milestones  []Milestone  `json:"milestones,omitempty"`
	ShapeErrors []ShapeError `json:"shape_errors,omitempty"`
	Warnings    []Warning    `json:"warnings,omitempty"`
}
