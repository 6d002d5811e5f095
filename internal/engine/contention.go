package engine

import (
	"sort"

	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

// buildContention scores each assignee's load across initiatives from
// their open assigned issues.
func buildContention(snap *model.Snapshot, groups []*initiativeGroup) []model.AssigneeContention {
	// Issue ID -> initiative slugs.
	membership := make(map[int]map[string]bool)
	for _, g := range groups {
		for _, i := range g.issues {
			if membership[i.ID] == nil {
				membership[i.ID] = make(map[string]bool)
			}
			membership[i.ID][g.slug] = true
		}
	}

	type load struct {
		display     string
		initiatives map[string]bool
		teams       map[string]bool
		total       int
		highPri     int
	}
	byAssignee := make(map[string]*load)

	for n := range snap.Issues {
		i := &snap.Issues[n]
		if i.IsClosed() || len(i.Assignees) == 0 {
			continue
		}

		high := false
		var teams []string
		for _, label := range i.Labels {
			if rules.IsPriorityLabel(label) && rules.IsHighPriority(label) {
				high = true
			}
			if slug, ok := rules.TeamSlug(label); ok {
				teams = append(teams, slug)
			}
		}

		for _, a := range i.Assignees {
			l, ok := byAssignee[a.Key()]
			if !ok {
				l = &load{
					display:     a.Display(),
					initiatives: make(map[string]bool),
					teams:       make(map[string]bool),
				}
				byAssignee[a.Key()] = l
			}
			l.total++
			if high {
				l.highPri++
			}
			for slug := range membership[i.ID] {
				l.initiatives[slug] = true
			}
			for _, slug := range teams {
				l.teams[slug] = true
			}
		}
	}

	out := make([]model.AssigneeContention, 0, len(byAssignee))
	for _, l := range byAssignee {
		capped := l.total
		if capped > 20 {
			capped = 20
		}
		out = append(out, model.AssigneeContention{
			Assignee:          l.display,
			InitiativeCount:   len(l.initiatives),
			TotalIssues:       l.total,
			HighPriorityCount: l.highPri,
			Teams:             sortedKeys(l.teams),
			ContentionLevel:   clamp(len(l.initiatives)*20+l.highPri*10+capped*2, 0, 100),
		})
	}

	sort.Slice(out, func(x, y int) bool {
		if out[x].ContentionLevel != out[y].ContentionLevel {
			return out[x].ContentionLevel > out[y].ContentionLevel
		}
		return out[x].Assignee < out[y].Assignee
	})
	return out
}
