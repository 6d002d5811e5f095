package engine

import (
	"sort"
	"time"

	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

// initiativeGroup is the working set behind one initiative: its epics
// (including transitive children) and constituent issues.
type initiativeGroup struct {
	slug    string
	epicIDs []int
	issues  []*model.Issue
	dueDate *model.Date
}

func (g *initiativeGroup) counts() (open, closed int) {
	for _, i := range g.issues {
		if i.IsClosed() {
			closed++
		} else {
			open++
		}
	}
	return open, closed
}

func (g *initiativeGroup) progress() int {
	_, closed := g.counts()
	return roundPct(closed, len(g.issues))
}

// buildInitiativeGroups infers initiatives from initiative labels on epics
// and issues. An initiative's issues are those labeled with its slug plus
// all issues under its epics (transitively through epic parent links).
func buildInitiativeGroups(snap *model.Snapshot) []*initiativeGroup {
	groups := make(map[string]*initiativeGroup)
	group := func(slug string) *initiativeGroup {
		if g, ok := groups[slug]; ok {
			return g
		}
		g := &initiativeGroup{slug: slug}
		groups[slug] = g
		return g
	}

	// Epics labeled with an initiative slug seed the epic sets.
	epicSlugs := make(map[int]map[string]bool) // epic ID -> slugs
	childrenByParent := make(map[int][]int)
	for n := range snap.Epics {
		e := &snap.Epics[n]
		if e.ParentID != nil {
			childrenByParent[*e.ParentID] = append(childrenByParent[*e.ParentID], e.ID)
		}
		for _, label := range e.Labels {
			slug, ok := rules.InitiativeSlug(label)
			if !ok {
				continue
			}
			if epicSlugs[e.ID] == nil {
				epicSlugs[e.ID] = make(map[string]bool)
			}
			epicSlugs[e.ID][slug] = true
			group(slug)
		}
	}

	// Expand each initiative's epic set to all descendants.
	epicSets := make(map[string]map[int]bool) // slug -> epic IDs
	for id, slugs := range epicSlugs {
		for slug := range slugs {
			if epicSets[slug] == nil {
				epicSets[slug] = make(map[int]bool)
			}
			queue := []int{id}
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				if epicSets[slug][cur] {
					continue
				}
				epicSets[slug][cur] = true
				queue = append(queue, childrenByParent[cur]...)
			}
		}
	}
	for slug, set := range epicSets {
		g := group(slug)
		for id := range set {
			g.epicIDs = append(g.epicIDs, id)
		}
		sort.Ints(g.epicIDs)
	}

	// Constituent issues: labeled with the slug, or under one of the
	// initiative's epics.
	for n := range snap.Issues {
		i := &snap.Issues[n]
		member := make(map[string]bool)
		for _, label := range i.Labels {
			if slug, ok := rules.InitiativeSlug(label); ok {
				member[slug] = true
			}
		}
		if i.Epic != nil {
			for slug, set := range epicSets {
				if set[i.Epic.ID] {
					member[slug] = true
				}
			}
		}
		for slug := range member {
			g := group(slug)
			g.issues = append(g.issues, i)
		}
	}

	// Due date: the latest epic due date, falling back to the latest
	// milestone due date among constituent issues.
	epicsByID := make(map[int]*model.Epic, len(snap.Epics))
	for n := range snap.Epics {
		epicsByID[snap.Epics[n].ID] = &snap.Epics[n]
	}
	for _, g := range groups {
		for _, id := range g.epicIDs {
			e := epicsByID[id]
			if e == nil || e.DueDate == nil {
				continue
			}
			if g.dueDate == nil || e.DueDate.After(g.dueDate.Time) {
				g.dueDate = e.DueDate
			}
		}
		if g.dueDate != nil {
			continue
		}
		for _, i := range g.issues {
			if i.Milestone == nil || i.Milestone.DueDate == nil {
				continue
			}
			if g.dueDate == nil || i.Milestone.DueDate.After(g.dueDate.Time) {
				g.dueDate = i.Milestone.DueDate
			}
		}
	}

	out := make([]*initiativeGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.Slice(out, func(x, y int) bool { return out[x].slug < out[y].slug })
	return out
}

// initiativeStatus derives the initiative state machine. Blocked dominates
// at-risk; at-risk dominates in-progress.
func initiativeStatus(g *initiativeGroup, forecast *model.Forecast, cfg *rules.Effective, now time.Time) model.InitiativeStatus {
	if len(g.issues) > 0 && g.progress() == 100 {
		return model.InitiativeComplete
	}

	for _, i := range g.issues {
		if i.IsClosed() {
			continue
		}
		for _, label := range i.Labels {
			if rules.IsBlockerLabel(label) {
				return model.InitiativeBlocked
			}
		}
	}

	if g.dueDate != nil && forecast != nil && forecast.Comparison.Status == model.ForecastAtRisk {
		return model.InitiativeAtRisk
	}

	windowStart := now.Add(-time.Duration(cfg.ForecastWindowWeeks) * 7 * 24 * time.Hour)
	for _, i := range g.issues {
		if i.ClosedAt != nil && i.ClosedAt.After(windowStart) && !i.ClosedAt.After(now) {
			return model.InitiativeInProgress
		}
	}

	return model.InitiativeNotStarted
}

// initiativePriority is the strongest priority token found on the
// initiative's issues.
func initiativePriority(g *initiativeGroup) string {
	var labels []string
	for _, i := range g.issues {
		labels = append(labels, i.Labels...)
	}
	return rules.PriorityToken(labels)
}

// buildInitiatives assembles the report entries, sorted by slug.
func buildInitiatives(groups []*initiativeGroup, forecasts map[string]*model.Forecast, cfg *rules.Effective, now time.Time) []model.Initiative {
	out := make([]model.Initiative, 0, len(groups))
	for _, g := range groups {
		open, closed := g.counts()
		init := model.Initiative{
			Slug:        g.slug,
			Name:        rules.HumanizeSlug(g.slug),
			EpicIDs:     g.epicIDs,
			IssueCount:  len(g.issues),
			OpenCount:   open,
			ClosedCount: closed,
			Progress:    g.progress(),
			Status:      initiativeStatus(g, forecasts[g.slug], cfg, now),
			Priority:    initiativePriority(g),
			DueDate:     g.dueDate,
		}
		for _, i := range g.issues {
			init.IssueIDs = append(init.IssueIDs, i.ID)
		}
		sort.Ints(init.IssueIDs)
		out = append(out, init)
	}
	return out
}
