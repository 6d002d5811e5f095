package engine

import (
	"time"

	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

func issueRef(i *model.Issue) model.IssueRef {
	return model.IssueRef{
		ID:     i.ID,
		IID:    i.IID,
		Title:  i.Title,
		State:  i.State,
		WebURL: i.WebURL,
	}
}

// evaluateIssue runs every enabled criterion against one issue. The keys
// in Passed and Violations partition the enabled criteria.
func evaluateIssue(i *model.Issue, cfg *rules.Effective, now time.Time, warnings []string) model.ComplianceResult {
	stale := staleStatus(i, cfg, now)
	in := rules.EvalInput{Issue: i, Stale: stale, Cfg: cfg}

	res := model.ComplianceResult{
		Issue:       issueRef(i),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
		StaleStatus: stale,
		Warnings:    warnings,
		Passed:      []string{},
		Violations:  []model.Violation{},
	}
	if i.Author != nil {
		res.Author = i.Author.Display()
	}
	for _, a := range i.Assignees {
		res.Assignees = append(res.Assignees, a.Display())
	}
	if i.Epic != nil {
		res.Epic = i.Epic.Title
	}
	if i.Milestone != nil {
		res.Milestone = i.Milestone.Title
	}

	for _, c := range cfg.Criteria {
		if c.Check(in) {
			res.Passed = append(res.Passed, c.Key)
			continue
		}
		v := model.Violation{Key: c.Key, Name: c.Name, Severity: c.Severity}
		if c.Key == rules.KeyStale {
			v.DaysOpen = stale.DaysOpen
		}
		res.Violations = append(res.Violations, v)
	}

	// The denominator is always the count of enabled criteria, never the
	// size of the static registry.
	total := len(cfg.Criteria)
	if total == 0 {
		res.ComplianceScore = 100
		res.IsCompliant = true
		return res
	}
	res.ComplianceScore = roundPct(len(res.Passed), total)
	res.IsCompliant = len(res.Violations) == 0
	return res
}

// evaluateAll evaluates every issue in snapshot order.
func evaluateAll(issues []model.Issue, cfg *rules.Effective, now time.Time, warnings map[int][]string) []model.ComplianceResult {
	results := make([]model.ComplianceResult, 0, len(issues))
	for n := range issues {
		i := &issues[n]
		results = append(results, evaluateIssue(i, cfg, now, warnings[i.ID]))
	}
	return results
}
