package model

import "time"

// Severity ranks the impact of a violation or dependency edge.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid checks whether the severity is a known value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Rank orders severities for comparison; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// InitiativeStatus is the derived lifecycle state of an initiative.
type InitiativeStatus string

const (
	InitiativeNotStarted InitiativeStatus = "not-started"
	InitiativeInProgress InitiativeStatus = "in-progress"
	InitiativeAtRisk     InitiativeStatus = "at-risk"
	InitiativeBlocked    InitiativeStatus = "blocked"
	InitiativeComplete   InitiativeStatus = "complete"
)

// String returns the string representation of the status.
func (s InitiativeStatus) String() string {
	return string(s)
}

// CapacityStatus classifies a team's capacity score.
type CapacityStatus string

const (
	CapacityHealthy    CapacityStatus = "healthy"
	CapacityAtCapacity CapacityStatus = "at-capacity"
	CapacityOverloaded CapacityStatus = "overloaded"
)

// String returns the string representation of the status.
func (s CapacityStatus) String() string {
	return string(s)
}

// ForecastStatus compares a projected completion date against a due date.
type ForecastStatus string

const (
	ForecastOnTrack ForecastStatus = "on-track"
	ForecastWarning ForecastStatus = "warning"
	ForecastAtRisk  ForecastStatus = "at-risk"
	ForecastNoData  ForecastStatus = "no-data"
)

// String returns the string representation of the status.
func (s ForecastStatus) String() string {
	return string(s)
}

// IssueRef identifies an issue inside report entries.
type IssueRef struct {
	ID     int        `json:"id"`
	IID    int        `json:"iid"`
	Title  string     `json:"title"`
	State  IssueState `json:"state"`
	WebURL string     `json:"webUrl,omitempty"`
}

// Violation records a criterion failure on a specific issue.
type Violation struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	DaysOpen int      `json:"daysOpen,omitempty"`
}

// StaleStatus classifies an open issue's age against the configured
// thresholds. DaysOpen is undefined (zero) for closed issues.
type StaleStatus struct {
	IsStale  bool   `json:"isStale"`
	DaysOpen int    `json:"daysOpen"`
	Severity string `json:"severity,omitempty"` // "warning" or "critical"
}

// ComplianceResult is the per-issue outcome of the quality-criteria pass.
type ComplianceResult struct {
	Issue           IssueRef    `json:"issue"`
	Author          string      `json:"author,omitempty"`
	Assignees       []string    `json:"assignees,omitempty"`
	Epic            string      `json:"epic,omitempty"`
	Milestone       string      `json:"milestone,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	Violations      []Violation `json:"violations"`
	Passed          []string    `json:"passed"`
	ComplianceScore int         `json:"complianceScore"`
	IsCompliant     bool        `json:"isCompliant"`
	StaleStatus     StaleStatus `json:"staleStatus"`
	Warnings        []string    `json:"warnings,omitempty"`
}

// SeverityBuckets counts issues by their highest-severity violation.
type SeverityBuckets struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// StaleBuckets counts stale issues by severity.
type StaleBuckets struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Total    int `json:"total"`
}

// Stats holds snapshot-wide compliance aggregates.
type Stats struct {
	TotalIssues           int             `json:"totalIssues"`
	CompliantIssues       int             `json:"compliantIssues"`
	ComplianceRate        int             `json:"complianceRate"`
	ViolationsByCriterion map[string]int  `json:"violationsByCriterion"`
	SeverityBuckets       SeverityBuckets `json:"severityBuckets"`
	Stale                 StaleBuckets    `json:"stale"`
}

// CriterionCount pairs a criterion key with an occurrence count.
type CriterionCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// AuthorViolations rolls up violations attributed to one assignee.
// Violations fan out to every assignee of an issue; IssueCount stays
// deduplicated so consumers can avoid double counting.
type AuthorViolations struct {
	Author      string           `json:"author"`
	Total       int              `json:"total"`
	High        int              `json:"high"`
	Medium      int              `json:"medium"`
	Low         int              `json:"low"`
	ByCriterion []CriterionCount `json:"byCriterion"`
	IssueCount  int              `json:"issueCount"`
	Issues      []IssueRef       `json:"issues"`
}

// ChecklistItem is one entry of a definition-of-done template.
type ChecklistItem struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Checked  bool   `json:"checked"`
}

// DoDResult is the per-issue definition-of-done audit.
type DoDResult struct {
	Issue                IssueRef        `json:"issue"`
	IssueType            string          `json:"issueType"`
	Template             string          `json:"template"`
	ChecklistItems       []ChecklistItem `json:"checklistItems"`
	MissingItems         []string        `json:"missingItems"`
	CheckedItems         []string        `json:"checkedItems"`
	CompliancePercentage int             `json:"compliancePercentage"`
}

// Initiative is a cross-epic grouping identified by an initiative label.
type Initiative struct {
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	EpicIDs     []int            `json:"epicIds,omitempty"`
	IssueIDs    []int            `json:"issueIds,omitempty"`
	IssueCount  int              `json:"issueCount"`
	OpenCount   int              `json:"openCount"`
	ClosedCount int              `json:"closedCount"`
	Progress    int              `json:"progress"`
	Status      InitiativeStatus `json:"status"`
	Priority    string           `json:"priority,omitempty"`
	DueDate     *Date            `json:"dueDate,omitempty"`
}

// Team is derived from team labels on issues.
type Team struct {
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	Members    []string `json:"members"`
	IssueCount int      `json:"issueCount"`
}

// TeamCapacity scores a team's load.
type TeamCapacity struct {
	Slug                  string         `json:"slug"`
	MemberCount           int            `json:"memberCount"`
	OpenIssueCount        int            `json:"openIssueCount"`
	ActiveInitiativeCount int            `json:"activeInitiativeCount"`
	CompletionRate        int            `json:"completionRate"`
	CapacityScore         int            `json:"capacityScore"`
	Status                CapacityStatus `json:"status"`
}

// InitiativeAttribution lists the teams contributing to an initiative.
type InitiativeAttribution struct {
	Initiative string   `json:"initiative"`
	Teams      []string `json:"teams"`
	IssueCount int      `json:"issueCount"`
	Progress   int      `json:"progress"`
}

// AssigneeContention scores one assignee's load across initiatives.
type AssigneeContention struct {
	Assignee          string   `json:"assignee"`
	InitiativeCount   int      `json:"initiativeCount"`
	TotalIssues       int      `json:"totalIssues"`
	HighPriorityCount int      `json:"highPriorityCount"`
	Teams             []string `json:"teams"`
	ContentionLevel   int      `json:"contentionLevel"`
}

// DependencyPair is one blocked-by relationship underlying an edge.
type DependencyPair struct {
	FromIssue int          `json:"fromIssue"` // iid of the blocked issue
	ToIssue   int          `json:"toIssue"`   // iid of the blocking issue
	Relation  LinkRelation `json:"relation"`
}

// DependencyEdge records that initiative From is blocked by initiative To.
type DependencyEdge struct {
	From      string           `json:"from"`
	To        string           `json:"to"`
	Links     []DependencyPair `json:"links"`
	Count     int              `json:"count"`
	OpenCount int              `json:"openCount"`
	Severity  Severity         `json:"severity"`
}

// BlockingRoot is an initiative that blocks at least one other initiative
// through open dependencies.
type BlockingRoot struct {
	Slug          string   `json:"slug"`
	Severity      Severity `json:"severity"`
	CascadeImpact []string `json:"cascadeImpact"`
	CascadeCount  int      `json:"cascadeCount"`
	Ambiguous     bool     `json:"ambiguous,omitempty"`
}

// DependencyMatrix is a square table of open blocked-by counts. Cells hold
// the open count as a string, or "—" when no edge exists.
type DependencyMatrix struct {
	Initiatives []string   `json:"initiatives"`
	Cells       [][]string `json:"cells"`
}

// Velocity is the closure rate observed in the trailing window.
type Velocity struct {
	WeeklyAverage float64 `json:"weeklyAverage"`
	SampleSize    int     `json:"sampleSize"`
}

// Variance is the optimistic/pessimistic completion band in weeks.
type Variance struct {
	OptimisticWeeks  float64 `json:"optimisticWeeks"`
	PessimisticWeeks float64 `json:"pessimisticWeeks"`
}

// DueComparison relates the forecast date to the initiative's due date.
type DueComparison struct {
	HasDueDate  bool           `json:"hasDueDate"`
	HasForecast bool           `json:"hasForecast"`
	WeeksGap    int            `json:"weeksGap"`
	IsLate      bool           `json:"isLate"`
	Status      ForecastStatus `json:"status"`
}

// Forecast projects an initiative's completion from trailing velocity.
type Forecast struct {
	Initiative      string        `json:"initiative"`
	RemainingIssues int           `json:"remainingIssues"`
	Velocity        Velocity      `json:"velocity"`
	ForecastDate    *time.Time    `json:"forecastDate,omitempty"`
	Variance        Variance      `json:"variance"`
	Confidence      int           `json:"confidence"`
	Comparison      DueComparison `json:"comparison"`
}

// Report is the full bundle returned by one engine invocation.
type Report struct {
	ComplianceResults      []ComplianceResult      `json:"complianceResults"`
	Stats                  Stats                   `json:"stats"`
	AuthorRollup           []AuthorViolations      `json:"authorRollup"`
	DoDResults             []DoDResult             `json:"dodResults"`
	Initiatives            []Initiative            `json:"initiatives"`
	Teams                  []Team                  `json:"teams"`
	TeamCapacity           []TeamCapacity          `json:"teamCapacity"`
	InitiativeAttributions []InitiativeAttribution `json:"initiativeAttributions"`
	Contention             []AssigneeContention    `json:"contention"`
	Dependencies           []DependencyEdge        `json:"dependencies"`
	DependencyMatrix       DependencyMatrix        `json:"dependencyMatrix"`
	BlockingRoots          []BlockingRoot          `json:"blockingRoots"`
	Forecasts              []Forecast              `json:"forecasts"`
	ShapeErrors            []ShapeError            `json:"shapeErrors"`
	NowUTC                 time.Time               `json:"nowUtc"`
}
