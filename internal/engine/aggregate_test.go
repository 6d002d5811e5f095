package engine

import (
	"testing"
	"time"

	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

func TestBuildStats_Buckets(t *testing.T) {
	snap := &model.Snapshot{
		Issues: []model.Issue{
			testIssue(1, nil), // compliant
			testIssue(2, func(i *model.Issue) { i.Assignees = nil }),                    // high
			testIssue(3, func(i *model.Issue) { i.Weight = nil }),                       // medium
			testIssue(4, func(i *model.Issue) { i.Labels = []string{"bug", "p2", ""} }), // still compliant
			testIssue(5, func(i *model.Issue) {
				i.CreatedAt = testNow.Add(-90 * 24 * time.Hour) // critical stale, high
			}),
		},
	}
	cfg := rules.Default()
	report := Compute(snap, cfg, testNow)
	stats := report.Stats

	if stats.TotalIssues != 5 || stats.CompliantIssues != 2 {
		t.Errorf("totals = %d/%d, want 5 issues, 2 compliant", stats.TotalIssues, stats.CompliantIssues)
	}
	if stats.ComplianceRate != 40 {
		t.Errorf("rate = %d, want 40", stats.ComplianceRate)
	}
	if stats.SeverityBuckets.High != 2 || stats.SeverityBuckets.Medium != 1 || stats.SeverityBuckets.Low != 0 {
		t.Errorf("severity buckets = %+v", stats.SeverityBuckets)
	}
	if stats.Stale.Total != 1 || stats.Stale.Critical != 1 || stats.Stale.Warning != 0 {
		t.Errorf("stale buckets = %+v", stats.Stale)
	}
	if stats.ViolationsByCriterion[rules.KeyAssignee] != 1 || stats.ViolationsByCriterion[rules.KeyWeight] != 1 {
		t.Errorf("by criterion = %v", stats.ViolationsByCriterion)
	}
	// Every enabled criterion appears even with zero violations.
	for _, c := range cfg.Criteria {
		if _, ok := stats.ViolationsByCriterion[c.Key]; !ok {
			t.Errorf("criterion %q missing from map", c.Key)
		}
	}
}

// Each violation is attributed to every assignee, but an issue counts once
// per bucket.
func TestAuthorRollup_FanOut(t *testing.T) {
	snap := &model.Snapshot{
		Issues: []model.Issue{
			testIssue(1, func(i *model.Issue) {
				i.Assignees = []model.User{
					{Name: "Ada Lovelace", Username: "ada"},
					{Name: "Grace Hopper", Username: "grace"},
				}
				i.Weight = nil
				i.Epic = nil
			}),
			testIssue(2, func(i *model.Issue) {
				i.Assignees = []model.User{{Name: "Ada Lovelace", Username: "ada"}}
				i.Weight = nil
			}),
		},
	}
	report := Compute(snap, rules.Default(), testNow)

	if len(report.AuthorRollup) != 2 {
		t.Fatalf("rollup = %+v, want two buckets", report.AuthorRollup)
	}

	// Ada: 2+1 violations across two issues; sorts first on total.
	ada := report.AuthorRollup[0]
	if ada.Author != "Ada Lovelace" || ada.Total != 3 || ada.IssueCount != 2 {
		t.Errorf("ada = %+v, want total 3 over 2 issues", ada)
	}
	if ada.Medium != 3 {
		t.Errorf("ada severities = high %d / medium %d / low %d, want all medium", ada.High, ada.Medium, ada.Low)
	}
	if len(ada.Issues) != 2 || ada.Issues[0].IID != 1 || ada.Issues[1].IID != 2 {
		t.Errorf("ada issues = %+v, want IIDs 1,2", ada.Issues)
	}

	grace := report.AuthorRollup[1]
	if grace.Author != "Grace Hopper" || grace.Total != 2 || grace.IssueCount != 1 {
		t.Errorf("grace = %+v, want total 2 over 1 issue", grace)
	}
}

func TestAuthorRollup_ByCriterionOrdering(t *testing.T) {
	snap := &model.Snapshot{
		Issues: []model.Issue{
			testIssue(1, func(i *model.Issue) { i.Weight = nil; i.Epic = nil }),
			testIssue(2, func(i *model.Issue) { i.Weight = nil }),
		},
	}
	report := Compute(snap, rules.Default(), testNow)

	bucket := report.AuthorRollup[0]
	if len(bucket.ByCriterion) != 2 {
		t.Fatalf("byCriterion = %+v, want weight and epic", bucket.ByCriterion)
	}
	// weight has the higher count; ties would fall back to canonical order.
	if bucket.ByCriterion[0].Key != rules.KeyWeight || bucket.ByCriterion[0].Count != 2 {
		t.Errorf("first = %+v, want weight x2", bucket.ByCriterion[0])
	}
	if bucket.ByCriterion[1].Key != rules.KeyEpic || bucket.ByCriterion[1].Count != 1 {
		t.Errorf("second = %+v, want epic x1", bucket.ByCriterion[1])
	}
}

func TestAuthorRollup_CompliantIssuesExcluded(t *testing.T) {
	snap := &model.Snapshot{Issues: []model.Issue{testIssue(1, nil)}}
	report := Compute(snap, rules.Default(), testNow)
	if len(report.AuthorRollup) != 0 {
		t.Errorf("rollup = %+v, want empty for a compliant snapshot", report.AuthorRollup)
	}
}

func TestSortNonCompliant_ScoreThenCreation(t *testing.T) {
	snap := &model.Snapshot{
		Issues: []model.Issue{
			testIssue(1, func(i *model.Issue) { i.Weight = nil }),
			testIssue(2, func(i *model.Issue) {
				i.Weight = nil
				i.Epic = nil
				i.CreatedAt = testNow.Add(-3 * 24 * time.Hour)
			}),
			testIssue(3, func(i *model.Issue) {
				i.Weight = nil
				i.Epic = nil
				i.CreatedAt = testNow.Add(-9 * 24 * time.Hour)
			}),
			testIssue(4, nil),
		},
	}
	report := Compute(snap, rules.Default(), testNow)
	out := NonCompliant(report.ComplianceResults)

	if len(out) != 3 {
		t.Fatalf("non-compliant = %d, want 3", len(out))
	}
	wantIIDs := []int{3, 2, 1} // lowest score first, older creation breaks the tie
	for n, r := range out {
		if r.Issue.IID != wantIIDs[n] {
			t.Fatalf("order = %v, want %v", iids(out), wantIIDs)
		}
	}
}

func iids(results []model.ComplianceResult) []int {
	out := make([]int, 0, len(results))
	for _, r := range results {
		out = append(out, r.Issue.IID)
	}
	return out
}
