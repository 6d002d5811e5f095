package engine

import (
	"sort"

	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

// unassignedBucket absorbs violations from issues with no assignees.
const unassignedBucket = "Unassigned"

// buildStats computes the snapshot-wide compliance aggregates.
func buildStats(results []model.ComplianceResult, cfg *rules.Effective) model.Stats {
	stats := model.Stats{
		TotalIssues:           len(results),
		ViolationsByCriterion: make(map[string]int),
	}
	for _, c := range cfg.Criteria {
		stats.ViolationsByCriterion[c.Key] = 0
	}

	for _, r := range results {
		if r.IsCompliant {
			stats.CompliantIssues++
		}

		highest := model.Severity("")
		for _, v := range r.Violations {
			stats.ViolationsByCriterion[v.Key]++
			if v.Severity.Rank() > highest.Rank() {
				highest = v.Severity
			}
		}
		switch highest {
		case model.SeverityHigh:
			stats.SeverityBuckets.High++
		case model.SeverityMedium:
			stats.SeverityBuckets.Medium++
		case model.SeverityLow:
			stats.SeverityBuckets.Low++
		}

		if r.StaleStatus.IsStale {
			stats.Stale.Total++
			switch r.StaleStatus.Severity {
			case "critical":
				stats.Stale.Critical++
			case "warning":
				stats.Stale.Warning++
			}
		}
	}

	stats.ComplianceRate = roundPct(stats.CompliantIssues, stats.TotalIssues)
	return stats
}

// buildAuthorRollup fans each non-compliant issue's violations out to every
// assignee (or the Unassigned bucket). IssueCount stays deduplicated.
func buildAuthorRollup(results []model.ComplianceResult) []model.AuthorViolations {
	byAuthor := make(map[string]*model.AuthorViolations)

	bucket := func(name string) *model.AuthorViolations {
		if a, ok := byAuthor[name]; ok {
			return a
		}
		a := &model.AuthorViolations{Author: name}
		byAuthor[name] = a
		return a
	}

	for _, r := range results {
		if len(r.Violations) == 0 {
			continue
		}

		names := r.Assignees
		if len(names) == 0 {
			names = []string{unassignedBucket}
		}

		for _, name := range names {
			a := bucket(name)
			a.IssueCount++
			a.Issues = append(a.Issues, r.Issue)
			for _, v := range r.Violations {
				a.Total++
				switch v.Severity {
				case model.SeverityHigh:
					a.High++
				case model.SeverityMedium:
					a.Medium++
				case model.SeverityLow:
					a.Low++
				}
				incrCriterion(a, v.Key)
			}
		}
	}

	rollup := make([]model.AuthorViolations, 0, len(byAuthor))
	for _, a := range byAuthor {
		sort.Slice(a.ByCriterion, func(x, y int) bool {
			cx, cy := a.ByCriterion[x], a.ByCriterion[y]
			if cx.Count != cy.Count {
				return cx.Count > cy.Count
			}
			return rules.CanonicalOrder[cx.Key] < rules.CanonicalOrder[cy.Key]
		})
		sort.Slice(a.Issues, func(x, y int) bool {
			return a.Issues[x].IID < a.Issues[y].IID
		})
		rollup = append(rollup, *a)
	}

	sort.Slice(rollup, func(x, y int) bool {
		if rollup[x].Total != rollup[y].Total {
			return rollup[x].Total > rollup[y].Total
		}
		return rollup[x].Author < rollup[y].Author
	})
	return rollup
}

func incrCriterion(a *model.AuthorViolations, key string) {
	for n := range a.ByCriterion {
		if a.ByCriterion[n].Key == key {
			a.ByCriterion[n].Count++
			return
		}
	}
	a.ByCriterion = append(a.ByCriterion, model.CriterionCount{Key: key, Count: 1})
}

// sortNonCompliant orders non-compliant results by score ascending, then
// creation time ascending. Compliant results are excluded.
func sortNonCompliant(results []model.ComplianceResult) []model.ComplianceResult {
	var out []model.ComplianceResult
	for _, r := range results {
		if !r.IsCompliant {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(x, y int) bool {
		if out[x].ComplianceScore != out[y].ComplianceScore {
			return out[x].ComplianceScore < out[y].ComplianceScore
		}
		return out[x].CreatedAt.Before(out[y].CreatedAt)
	})
	return out
}
