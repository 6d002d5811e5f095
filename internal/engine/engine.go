package engine

import (
	"fmt"
	"time"

	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

// Compute runs the full analytics pipeline over a snapshot. It is a pure
// function of (snapshot, config, now): identical inputs produce identical
// reports. The clock is captured once so every layer sees the same instant.
func Compute(snap *model.Snapshot, cfg *rules.Effective, now time.Time) *model.Report {
	now = now.UTC()

	warnings := make(map[int][]string)
	for _, w := range snap.Warnings {
		warnings[w.IssueID] = append(warnings[w.IssueID], fmt.Sprintf("%s: %s", w.Field, w.Message))
	}

	results := evaluateAll(snap.Issues, cfg, now, warnings)
	stats := buildStats(results, cfg)
	rollup := buildAuthorRollup(results)
	dod := evaluateAllDoD(snap.Issues)

	groups := buildInitiativeGroups(snap)
	forecasts, forecastBySlug := buildForecasts(groups, cfg, now)
	initiatives := buildInitiatives(groups, forecastBySlug, cfg, now)
	teams, capacity, attributions := buildTeamReports(snap, groups)
	contention := buildContention(snap, groups)
	edges, roots, matrix := buildDependencyGraph(snap, groups)

	return &model.Report{
		ComplianceResults:      results,
		Stats:                  stats,
		AuthorRollup:           rollup,
		DoDResults:             dod,
		Initiatives:            initiatives,
		Teams:                  teams,
		TeamCapacity:           capacity,
		InitiativeAttributions: attributions,
		Contention:             contention,
		Dependencies:           edges,
		DependencyMatrix:       matrix,
		BlockingRoots:          roots,
		Forecasts:              forecasts,
		ShapeErrors:            snap.ShapeErrors,
		NowUTC:                 now,
	}
}

// NonCompliant returns the non-compliant results sorted by score
// ascending, then creation time. Presentation layers and CSV sinks rely
// on this order.
func NonCompliant(results []model.ComplianceResult) []model.ComplianceResult {
	return sortNonCompliant(results)
}
