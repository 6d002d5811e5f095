package engine

import (
	"sort"
	"strconv"

	"github.com/alfredjeanlab/gauge/internal/model"
)

// edgeKey identifies a directed initiative pair: from is blocked by to.
type edgeKey struct {
	from, to string
}

// buildDependencyGraph derives cross-initiative dependency edges, blocking
// roots with cascade impact, and the dependency matrix. Intra-initiative
// links never produce edges.
func buildDependencyGraph(snap *model.Snapshot, groups []*initiativeGroup) ([]model.DependencyEdge, []model.BlockingRoot, model.DependencyMatrix) {
	issueByIID := make(map[int]*model.Issue, len(snap.Issues))
	for n := range snap.Issues {
		issueByIID[snap.Issues[n].IID] = &snap.Issues[n]
	}

	membership := make(map[int][]string) // issue ID -> initiative slugs
	for _, g := range groups {
		for _, i := range g.issues {
			membership[i.ID] = append(membership[i.ID], g.slug)
		}
	}

	type pairKey struct{ blocked, blocker int }
	edges := make(map[edgeKey]*model.DependencyEdge)
	seen := make(map[edgeKey]map[pairKey]bool)

	record := func(blocked, blocker *model.Issue) {
		for _, from := range membership[blocked.ID] {
			for _, to := range membership[blocker.ID] {
				if from == to {
					continue
				}
				k := edgeKey{from: from, to: to}
				p := pairKey{blocked: blocked.IID, blocker: blocker.IID}
				if seen[k][p] {
					continue
				}
				if seen[k] == nil {
					seen[k] = make(map[pairKey]bool)
				}
				seen[k][p] = true

				e, ok := edges[k]
				if !ok {
					e = &model.DependencyEdge{From: from, To: to}
					edges[k] = e
				}
				e.Links = append(e.Links, model.DependencyPair{
					FromIssue: blocked.IID,
					ToIssue:   blocker.IID,
					Relation:  model.RelationBlockedBy,
				})
				e.Count++
				if !blocker.IsClosed() {
					e.OpenCount++
				}
			}
		}
	}

	for n := range snap.Issues {
		i := &snap.Issues[n]
		for _, link := range i.Links {
			j, ok := issueByIID[link.TargetIID]
			if !ok {
				continue
			}
			switch link.Relation {
			case model.RelationBlockedBy:
				record(i, j)
			case model.RelationBlocks:
				record(j, i)
			}
		}
	}

	edgeList := make([]model.DependencyEdge, 0, len(edges))
	for _, e := range edges {
		sort.Slice(e.Links, func(x, y int) bool {
			lx, ly := e.Links[x], e.Links[y]
			if lx.FromIssue != ly.FromIssue {
				return lx.FromIssue < ly.FromIssue
			}
			return lx.ToIssue < ly.ToIssue
		})
		switch {
		case e.OpenCount >= 3:
			e.Severity = model.SeverityHigh
		case e.OpenCount >= 1:
			e.Severity = model.SeverityMedium
		default:
			e.Severity = model.SeverityLow
		}
		edgeList = append(edgeList, *e)
	}
	sort.Slice(edgeList, func(x, y int) bool {
		if edgeList[x].From != edgeList[y].From {
			return edgeList[x].From < edgeList[y].From
		}
		return edgeList[x].To < edgeList[y].To
	})

	roots := buildBlockingRoots(edgeList)
	matrix := buildMatrix(groups, edgeList)
	return edgeList, roots, matrix
}

// buildBlockingRoots finds initiatives that block others through at least
// one open dependency and walks their cascade impact.
func buildBlockingRoots(edges []model.DependencyEdge) []model.BlockingRoot {
	// blockedBy[to] lists the initiatives directly blocked by to.
	blockedBy := make(map[string][]string)
	rootSeverity := make(map[string]model.Severity)
	isRoot := make(map[string]bool)

	for _, e := range edges {
		blockedBy[e.To] = append(blockedBy[e.To], e.From)
		if e.OpenCount > 0 {
			isRoot[e.To] = true
		}
		if e.Severity.Rank() > rootSeverity[e.To].Rank() {
			rootSeverity[e.To] = e.Severity
		}
	}

	var roots []model.BlockingRoot
	for slug := range isRoot {
		cascade, ambiguous := walkCascade(slug, blockedBy)
		roots = append(roots, model.BlockingRoot{
			Slug:          slug,
			Severity:      rootSeverity[slug],
			CascadeImpact: cascade,
			CascadeCount:  len(cascade),
			Ambiguous:     ambiguous,
		})
	}
	sort.Slice(roots, func(x, y int) bool { return roots[x].Slug < roots[y].Slug })
	return roots
}

// walkCascade BFS-walks the initiatives transitively blocked by root,
// breaking cycles with a visited set. Ambiguous is set when the reachable
// subgraph contains a cycle, since the cascade count is then ill-defined.
func walkCascade(root string, blockedBy map[string][]string) ([]string, bool) {
	visited := map[string]bool{root: true}
	var cascade []string
	queue := append([]string(nil), blockedBy[root]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		cascade = append(cascade, cur)
		queue = append(queue, blockedBy[cur]...)
	}
	sort.Strings(cascade)
	return cascade, hasCycle(root, blockedBy)
}

// hasCycle reports whether the subgraph reachable from root contains a
// cycle, using a three-state DFS.
func hasCycle(root string, adj map[string][]string) bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := make(map[string]int)
	var visit func(string) bool
	visit = func(node string) bool {
		state[node] = gray
		for _, next := range adj[node] {
			switch state[next] {
			case gray:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		state[node] = black
		return false
	}
	return visit(root)
}

// buildMatrix renders the square open-count table over all initiatives.
func buildMatrix(groups []*initiativeGroup, edges []model.DependencyEdge) model.DependencyMatrix {
	slugs := make([]string, 0, len(groups))
	for _, g := range groups {
		slugs = append(slugs, g.slug)
	}
	// groups are already slug-sorted

	open := make(map[edgeKey]int, len(edges))
	for _, e := range edges {
		open[edgeKey{from: e.From, to: e.To}] = e.OpenCount
	}

	cells := make([][]string, len(slugs))
	for x, from := range slugs {
		row := make([]string, len(slugs))
		for y, to := range slugs {
			if n, ok := open[edgeKey{from: from, to: to}]; ok && from != to {
				row[y] = strconv.Itoa(n)
			} else {
				row[y] = "—"
			}
		}
		cells[x] = row
	}
	return model.DependencyMatrix{Initiatives: slugs, Cells: cells}
}
