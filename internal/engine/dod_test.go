package engine

import (
	"testing"

	"github.com/alfredjeanlab/gauge/internal/model"
)

func TestInferIssueType(t *testing.T) {
	for _, tc := range []struct {
		labels []string
		want   string
	}{
		{[]string{"bug"}, "bug"},
		{[]string{"type::bug"}, "bug"},
		{[]string{"feature"}, "feature"},
		{[]string{"enhancement"}, "feature"},
		{[]string{"feature", "bug"}, "bug"}, // bug wins
		{[]string{"type::chore"}, "task"},
		{nil, "task"},
	} {
		if got := inferIssueType(tc.labels); got != tc.want {
			t.Errorf("inferIssueType(%v) = %q, want %q", tc.labels, got, tc.want)
		}
	}
}

// Scenario: feature template with Acceptance Criteria and Tests required;
// one required item checked.
func TestEvaluateDoD_FeatureTemplate(t *testing.T) {
	issue := testIssue(1, func(i *model.Issue) {
		i.Labels = []string{"feature"}
		i.Description = "Work item\n\n- [x] Acceptance Criteria\n- [ ] Tests\n- [x] Docs\n"
	})

	res := evaluateDoD(&issue)
	if res.Template != "feature" {
		t.Fatalf("template = %q, want feature", res.Template)
	}
	if res.CompliancePercentage != 50 {
		t.Errorf("compliance = %d, want 50", res.CompliancePercentage)
	}
	if len(res.MissingItems) != 1 || res.MissingItems[0] != "Tests" {
		t.Errorf("missing = %v, want [Tests]", res.MissingItems)
	}
	wantChecked := map[string]bool{"Acceptance Criteria": true, "Docs": true}
	if len(res.CheckedItems) != 2 {
		t.Errorf("checked = %v, want 2 items", res.CheckedItems)
	}
	for _, c := range res.CheckedItems {
		if !wantChecked[c] {
			t.Errorf("unexpected checked item %q", c)
		}
	}
}

func TestEvaluateDoD_CaseAndWhitespaceTolerant(t *testing.T) {
	issue := testIssue(1, func(i *model.Issue) {
		i.Labels = []string{"feature"}
		i.Description = "  - [X]   acceptance   criteria verified\n* [x] unit TESTS added\n"
	})

	res := evaluateDoD(&issue)
	if res.CompliancePercentage != 100 {
		t.Errorf("compliance = %d, want 100: %+v", res.CompliancePercentage, res)
	}
	if len(res.MissingItems) != 0 {
		t.Errorf("missing = %v, want none", res.MissingItems)
	}
}

func TestEvaluateDoD_UncheckedLinesDoNotCount(t *testing.T) {
	issue := testIssue(1, func(i *model.Issue) {
		i.Labels = []string{"feature"}
		i.Description = "- [ ] Acceptance Criteria\n- [ ] Tests\n"
	})

	res := evaluateDoD(&issue)
	if res.CompliancePercentage != 0 {
		t.Errorf("compliance = %d, want 0", res.CompliancePercentage)
	}
	if len(res.MissingItems) != 2 {
		t.Errorf("missing = %v, want both required items", res.MissingItems)
	}
}

func TestEvaluateDoD_BugTemplate(t *testing.T) {
	issue := testIssue(1, func(i *model.Issue) {
		i.Labels = []string{"bug"}
		i.Description = "- [x] Steps to Reproduce\n- [x] Root Cause\n- [x] Fix Verified\n"
	})

	res := evaluateDoD(&issue)
	if res.Template != "bug" {
		t.Fatalf("template = %q, want bug", res.Template)
	}
	if res.CompliancePercentage != 100 {
		t.Errorf("compliance = %d, want 100", res.CompliancePercentage)
	}
	// Optional regression-test item missing does not reduce the score.
	for _, m := range res.MissingItems {
		if m == "Regression Test" {
			t.Error("optional item reported as missing")
		}
	}
}

func TestEvaluateDoD_EmptyDescription(t *testing.T) {
	issue := testIssue(1, func(i *model.Issue) {
		i.Labels = nil
		i.Description = ""
	})
	res := evaluateDoD(&issue)
	if res.Template != "task" {
		t.Errorf("template = %q, want task", res.Template)
	}
	if res.CompliancePercentage != 0 {
		t.Errorf("compliance = %d, want 0", res.CompliancePercentage)
	}
}
