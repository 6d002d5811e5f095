package engine

import (
	"regexp"
	"strings"

	"github.com/alfredjeanlab/gauge/internal/model"
)

// Definition-of-done templates, keyed by inferred issue type. "task" is
// the default when no type label matches.
var dodTemplates = map[string][]model.ChecklistItem{
	"bug": {
		{ID: "repro", Label: "Steps to Reproduce", Required: true},
		{ID: "root-cause", Label: "Root Cause", Required: true},
		{ID: "fix-verified", Label: "Fix Verified", Required: true},
		{ID: "regression-test", Label: "Regression Test", Required: false},
	},
	"feature": {
		{ID: "acceptance", Label: "Acceptance Criteria", Required: true},
		{ID: "tests", Label: "Tests", Required: true},
		{ID: "docs", Label: "Docs", Required: false},
	},
	"task": {
		{ID: "description", Label: "Description", Required: true},
		{ID: "acceptance", Label: "Acceptance Criteria", Required: false},
	},
}

// inferIssueType derives the DoD template key from labels. Bug markers take
// precedence over feature markers; anything else falls back to task.
func inferIssueType(labels []string) string {
	typ := "task"
	for _, label := range labels {
		l := strings.ToLower(label)
		if strings.Contains(l, "bug") {
			return "bug"
		}
		if strings.Contains(l, "feature") || strings.Contains(l, "enhancement") {
			typ = "feature"
		}
	}
	return typ
}

// checklistLine matches "- [ ] text" and "- [x] text" task-list entries.
var checklistLine = regexp.MustCompile(`(?m)^\s*[-*]\s*\[([ xX])\]\s*(.+?)\s*$`)

// normalize lowercases and collapses runs of whitespace for tolerant
// checklist matching.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// evaluateDoD audits one issue's description against its DoD template.
func evaluateDoD(i *model.Issue) model.DoDResult {
	typ := inferIssueType(i.Labels)
	template := dodTemplates[typ]

	// Collect checked checklist lines from the description.
	var checkedLines []string
	for _, m := range checklistLine.FindAllStringSubmatch(i.Description, -1) {
		if m[1] == " " {
			continue
		}
		checkedLines = append(checkedLines, normalize(m[2]))
	}

	res := model.DoDResult{
		Issue:          issueRef(i),
		IssueType:      typ,
		Template:       typ,
		ChecklistItems: make([]model.ChecklistItem, 0, len(template)),
		MissingItems:   []string{},
		CheckedItems:   []string{},
	}

	required, checkedRequired := 0, 0
	for _, item := range template {
		want := normalize(item.Label)
		for _, line := range checkedLines {
			if strings.Contains(line, want) {
				item.Checked = true
				break
			}
		}
		res.ChecklistItems = append(res.ChecklistItems, item)

		if item.Checked {
			res.CheckedItems = append(res.CheckedItems, item.Label)
		}
		if item.Required {
			required++
			if item.Checked {
				checkedRequired++
			} else {
				res.MissingItems = append(res.MissingItems, item.Label)
			}
		}
	}

	if required == 0 {
		res.CompliancePercentage = 100
	} else {
		res.CompliancePercentage = roundPct(checkedRequired, required)
	}
	return res
}

// evaluateAllDoD audits every issue in snapshot order.
func evaluateAllDoD(issues []model.Issue) []model.DoDResult {
	results := make([]model.DoDResult, 0, len(issues))
	for n := range issues {
		results = append(results, evaluateDoD(&issues[n]))
	}
	return results
}
