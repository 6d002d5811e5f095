// Package report projects the engine's bundle into tabular form for
// terminal rendering and CSV sinks. Column orders are compatibility
// contracts; changing them breaks downstream consumers.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alfredjeanlab/gauge/internal/engine"
	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

// Table is a named header-plus-rows projection.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Table names accepted by the export surfaces.
const (
	TableNonCompliant = "non-compliant"
	TableDoD          = "dod"
	TableAuthors      = "authors"
	TableAttribution  = "attribution"
	TableCapacity     = "capacity"
	TableContention   = "contention"
	TableDependencies = "dependencies"
	TableForecasts    = "forecasts"
)

// Names lists every table name in export order.
func Names() []string {
	return []string{
		TableNonCompliant, TableDoD, TableAuthors, TableAttribution,
		TableCapacity, TableContention, TableDependencies, TableForecasts,
	}
}

// Build returns the named table, or an error for an unknown name.
func Build(name string, r *model.Report, cfg *rules.Effective) (*Table, error) {
	switch name {
	case TableNonCompliant:
		return NonCompliantTable(r, cfg), nil
	case TableDoD:
		return DoDTable(r), nil
	case TableAuthors:
		return AuthorTable(r), nil
	case TableAttribution:
		return AttributionTable(r), nil
	case TableCapacity:
		return CapacityTable(r), nil
	case TableContention:
		return ContentionTable(r), nil
	case TableDependencies:
		return DependencyTable(r), nil
	case TableForecasts:
		return ForecastTable(r), nil
	}
	return nil, fmt.Errorf("unknown table %q", name)
}

// NonCompliantTable lists non-compliant issues sorted worst first, with a
// YES/NO column per enabled criterion in canonical order.
func NonCompliantTable(r *model.Report, cfg *rules.Effective) *Table {
	header := []string{"Issue ID", "Title", "State", "Compliance Score", "Violations"}
	for _, c := range cfg.Criteria {
		header = append(header, c.Name)
	}
	header = append(header, "Created At", "Updated At", "Author", "Current Assignees", "Epic", "Milestone", "URL")

	t := &Table{Name: TableNonCompliant, Header: header}
	for _, res := range engine.NonCompliant(r.ComplianceResults) {
		violated := make(map[string]bool, len(res.Violations))
		names := make([]string, 0, len(res.Violations))
		for _, v := range res.Violations {
			violated[v.Key] = true
			names = append(names, v.Name)
		}

		row := []string{
			strconv.Itoa(res.Issue.IID),
			res.Issue.Title,
			res.Issue.State.String(),
			strconv.Itoa(res.ComplianceScore),
			strings.Join(names, "; "),
		}
		for _, c := range cfg.Criteria {
			if violated[c.Key] {
				row = append(row, "NO")
			} else {
				row = append(row, "YES")
			}
		}
		row = append(row,
			res.CreatedAt.Format("2006-01-02"),
			res.UpdatedAt.Format("2006-01-02"),
			res.Author,
			strings.Join(res.Assignees, ", "),
			res.Epic,
			res.Milestone,
			res.Issue.WebURL,
		)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// DoDTable lists issues with an incomplete definition-of-done checklist.
func DoDTable(r *model.Report) *Table {
	t := &Table{
		Name:   TableDoD,
		Header: []string{"Issue ID", "Title", "Type", "Template", "Compliance %", "Missing Items", "URL"},
	}
	for _, res := range r.DoDResults {
		if res.CompliancePercentage == 100 {
			continue
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(res.Issue.IID),
			res.Issue.Title,
			res.IssueType,
			res.Template,
			strconv.Itoa(res.CompliancePercentage),
			strings.Join(res.MissingItems, "; "),
			res.Issue.WebURL,
		})
	}
	return t
}

// AuthorTable is the per-assignee violation rollup.
func AuthorTable(r *model.Report) *Table {
	t := &Table{
		Name:   TableAuthors,
		Header: []string{"Author", "Total Violations", "High", "Medium", "Low", "Issues"},
	}
	for _, a := range r.AuthorRollup {
		t.Rows = append(t.Rows, []string{
			a.Author,
			strconv.Itoa(a.Total),
			strconv.Itoa(a.High),
			strconv.Itoa(a.Medium),
			strconv.Itoa(a.Low),
			strconv.Itoa(a.IssueCount),
		})
	}
	return t
}

// AttributionTable maps initiatives to their contributing teams.
func AttributionTable(r *model.Report) *Table {
	t := &Table{
		Name:   TableAttribution,
		Header: []string{"Initiative", "Teams", "Issue Count", "Progress %"},
	}
	for _, a := range r.InitiativeAttributions {
		t.Rows = append(t.Rows, []string{
			a.Initiative,
			strings.Join(a.Teams, ", "),
			strconv.Itoa(a.IssueCount),
			strconv.Itoa(a.Progress),
		})
	}
	return t
}

// CapacityTable scores each team's load.
func CapacityTable(r *model.Report) *Table {
	t := &Table{
		Name: TableCapacity,
		Header: []string{"Team", "Members", "Open Issues", "Active Initiatives",
			"Completion Rate %", "Capacity Score", "Status"},
	}
	for _, c := range r.TeamCapacity {
		t.Rows = append(t.Rows, []string{
			c.Slug,
			strconv.Itoa(c.MemberCount),
			strconv.Itoa(c.OpenIssueCount),
			strconv.Itoa(c.ActiveInitiativeCount),
			strconv.Itoa(c.CompletionRate),
			strconv.Itoa(c.CapacityScore),
			c.Status.String(),
		})
	}
	return t
}

// ContentionTable scores per-assignee load across initiatives.
func ContentionTable(r *model.Report) *Table {
	t := &Table{
		Name:   TableContention,
		Header: []string{"Assignee", "Initiatives", "Open Issues", "High Priority", "Teams", "Contention"},
	}
	for _, c := range r.Contention {
		t.Rows = append(t.Rows, []string{
			c.Assignee,
			strconv.Itoa(c.InitiativeCount),
			strconv.Itoa(c.TotalIssues),
			strconv.Itoa(c.HighPriorityCount),
			strings.Join(c.Teams, ", "),
			strconv.Itoa(c.ContentionLevel),
		})
	}
	return t
}

// DependencyTable lists the cross-initiative blocked-by edges.
func DependencyTable(r *model.Report) *Table {
	t := &Table{
		Name:   TableDependencies,
		Header: []string{"From", "To", "Links", "Open Links", "Severity"},
	}
	for _, e := range r.Dependencies {
		t.Rows = append(t.Rows, []string{
			e.From,
			e.To,
			strconv.Itoa(e.Count),
			strconv.Itoa(e.OpenCount),
			e.Severity.String(),
		})
	}
	return t
}

// ForecastTable projects velocity forecasts. Columns without data stay
// empty rather than carrying sentinel values.
func ForecastTable(r *model.Report) *Table {
	dueBySlug := make(map[string]*model.Date, len(r.Initiatives))
	for n := range r.Initiatives {
		dueBySlug[r.Initiatives[n].Slug] = r.Initiatives[n].DueDate
	}

	t := &Table{
		Name: TableForecasts,
		Header: []string{"Initiative", "Remaining", "Weekly Velocity", "Samples",
			"Forecast Date", "Optimistic Weeks", "Pessimistic Weeks", "Confidence",
			"Due Date", "Gap (weeks)", "Status"},
	}
	for _, fc := range r.Forecasts {
		forecastDate, velocity, optimistic, pessimistic, confidence, gap := "", "", "", "", "", ""
		if fc.Comparison.HasForecast {
			velocity = formatFloat(fc.Velocity.WeeklyAverage)
			optimistic = formatFloat(fc.Variance.OptimisticWeeks)
			pessimistic = formatFloat(fc.Variance.PessimisticWeeks)
			confidence = strconv.Itoa(fc.Confidence)
		}
		if fc.ForecastDate != nil {
			forecastDate = fc.ForecastDate.Format("2006-01-02")
		}
		due := ""
		if d := dueBySlug[fc.Initiative]; d != nil {
			due = d.Format("2006-01-02")
		}
		if fc.Comparison.HasForecast && fc.Comparison.HasDueDate {
			gap = strconv.Itoa(fc.Comparison.WeeksGap)
		}
		t.Rows = append(t.Rows, []string{
			fc.Initiative,
			strconv.Itoa(fc.RemainingIssues),
			velocity,
			strconv.Itoa(fc.Velocity.SampleSize),
			forecastDate,
			optimistic,
			pessimistic,
			confidence,
			due,
			gap,
			fc.Comparison.Status.String(),
		})
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
