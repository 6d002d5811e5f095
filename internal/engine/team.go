package engine

import (
	"sort"

	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

// teamSet is the working state for one team slug.
type teamSet struct {
	slug    string
	issues  []*model.Issue
	members map[string]string // user key -> display name
}

// buildTeamSets derives teams from team labels on issues.
func buildTeamSets(snap *model.Snapshot) map[string]*teamSet {
	teams := make(map[string]*teamSet)
	for n := range snap.Issues {
		i := &snap.Issues[n]
		for _, label := range i.Labels {
			slug, ok := rules.TeamSlug(label)
			if !ok {
				continue
			}
			t, found := teams[slug]
			if !found {
				t = &teamSet{slug: slug, members: make(map[string]string)}
				teams[slug] = t
			}
			t.issues = append(t.issues, i)
			for _, a := range i.Assignees {
				t.members[a.Key()] = a.Display()
			}
		}
	}
	return teams
}

// buildTeamReports produces the team list, capacity scores, and
// per-initiative team attribution.
func buildTeamReports(snap *model.Snapshot, groups []*initiativeGroup) ([]model.Team, []model.TeamCapacity, []model.InitiativeAttribution) {
	sets := buildTeamSets(snap)

	// Attribution: the teams of an initiative are the union of team labels
	// across its issues.
	attributions := make([]model.InitiativeAttribution, 0, len(groups))
	teamInitiatives := make(map[string][]*initiativeGroup)
	for _, g := range groups {
		slugs := make(map[string]bool)
		for _, i := range g.issues {
			for _, label := range i.Labels {
				if slug, ok := rules.TeamSlug(label); ok {
					slugs[slug] = true
				}
			}
		}
		attr := model.InitiativeAttribution{
			Initiative: g.slug,
			Teams:      sortedKeys(slugs),
			IssueCount: len(g.issues),
			Progress:   g.progress(),
		}
		attributions = append(attributions, attr)
		for slug := range slugs {
			teamInitiatives[slug] = append(teamInitiatives[slug], g)
		}
	}

	teams := make([]model.Team, 0, len(sets))
	capacity := make([]model.TeamCapacity, 0, len(sets))
	for _, slug := range sortedTeamSlugs(sets) {
		t := sets[slug]

		members := make([]string, 0, len(t.members))
		for _, display := range t.members {
			members = append(members, display)
		}
		sort.Strings(members)

		open, closed := 0, 0
		for _, i := range t.issues {
			if i.IsClosed() {
				closed++
			} else {
				open++
			}
		}

		active := 0
		for _, g := range teamInitiatives[slug] {
			if g.progress() < 100 {
				active++
			}
		}

		score := clamp(100-(active*15+open*2-len(t.members)*5), 0, 100)
		status := model.CapacityHealthy
		switch {
		case score < 40:
			status = model.CapacityOverloaded
		case score < 70:
			status = model.CapacityAtCapacity
		}

		teams = append(teams, model.Team{
			Slug:       slug,
			Name:       rules.HumanizeSlug(slug),
			Members:    members,
			IssueCount: len(t.issues),
		})
		capacity = append(capacity, model.TeamCapacity{
			Slug:                  slug,
			MemberCount:           len(t.members),
			OpenIssueCount:        open,
			ActiveInitiativeCount: active,
			CompletionRate:        roundPct(closed, len(t.issues)),
			CapacityScore:         score,
			Status:                status,
		})
	}

	return teams, capacity, attributions
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedTeamSlugs(sets map[string]*teamSet) []string {
	out := make([]string, 0, len(sets))
	for slug := range sets {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
