package rules

import (
	"strings"

	"github.com/alfredjeanlab/gauge/internal/model"
)

// Criterion keys, in canonical order. The order is a reporting contract:
// it drives tie-breaks and CSV column layout.
const (
	KeyAssignee    = "assignee"
	KeyWeight      = "weight"
	KeyEpic        = "epic"
	KeyDescription = "description"
	KeyLabels      = "labels"
	KeyMilestone   = "milestone"
	KeyDueDate     = "dueDate"
	KeyPriority    = "priority"
	KeyStale       = "stale"
)

// EvalInput carries the per-issue context a predicate may consult.
type EvalInput struct {
	Issue *model.Issue
	Stale model.StaleStatus
	Cfg   *Effective
}

// Criterion is one registered quality rule. Check returns true when the
// issue satisfies the rule.
type Criterion struct {
	Key             string
	Name            string
	DefaultSeverity model.Severity
	Check           func(in EvalInput) bool
}

// Registry lists all known criteria in canonical order. New criteria
// register a record here; nothing else dispatches dynamically.
var Registry = []Criterion{
	{
		Key:             KeyAssignee,
		Name:            "Assignee",
		DefaultSeverity: model.SeverityHigh,
		Check: func(in EvalInput) bool {
			return len(in.Issue.Assignees) > 0
		},
	},
	{
		Key:             KeyWeight,
		Name:            "Weight",
		DefaultSeverity: model.SeverityMedium,
		Check: func(in EvalInput) bool {
			return in.Issue.Weight != nil && *in.Issue.Weight > 0
		},
	},
	{
		Key:             KeyEpic,
		Name:            "Epic Link",
		DefaultSeverity: model.SeverityMedium,
		Check: func(in EvalInput) bool {
			return in.Issue.Epic != nil
		},
	},
	{
		Key:             KeyDescription,
		Name:            "Description",
		DefaultSeverity: model.SeverityHigh,
		Check: func(in EvalInput) bool {
			return len(strings.TrimSpace(in.Issue.Description)) >= in.Cfg.DescriptionThreshold
		},
	},
	{
		Key:             KeyLabels,
		Name:            "Type Label",
		DefaultSeverity: model.SeverityLow,
		Check: func(in EvalInput) bool {
			for _, l := range in.Issue.Labels {
				if IsTypeLabel(l) {
					return true
				}
			}
			return false
		},
	},
	{
		Key:             KeyMilestone,
		Name:            "Milestone",
		DefaultSeverity: model.SeverityMedium,
		Check: func(in EvalInput) bool {
			return in.Issue.Milestone != nil
		},
	},
	{
		Key:             KeyDueDate,
		Name:            "Due Date",
		DefaultSeverity: model.SeverityLow,
		Check: func(in EvalInput) bool {
			return in.Issue.DueDate != nil
		},
	},
	{
		Key:             KeyPriority,
		Name:            "Priority Label",
		DefaultSeverity: model.SeverityMedium,
		Check: func(in EvalInput) bool {
			for _, l := range in.Issue.Labels {
				if IsPriorityLabel(l) {
					return true
				}
			}
			return false
		},
	},
	{
		Key:             KeyStale,
		Name:            "Stale",
		DefaultSeverity: model.SeverityHigh,
		Check: func(in EvalInput) bool {
			return !in.Stale.IsStale
		},
	},
}

// CanonicalOrder maps criterion keys to their registry position.
var CanonicalOrder = func() map[string]int {
	order := make(map[string]int, len(Registry))
	for i, c := range Registry {
		order[c.Key] = i
	}
	return order
}()

// Lookup returns the registered criterion for a key.
func Lookup(key string) (Criterion, bool) {
	idx, ok := CanonicalOrder[key]
	if !ok {
		return Criterion{}, false
	}
	return Registry[idx], true
}
