// internal/app/hierarchy/builder.go
package hierarchy

import (
	"github.com/arenaops/venuehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tree is one node of a department's org chart: an assignment, its
// resolved person, and its direct reports in store order.
type Tree struct {
	Assignment models.Assignment `json:"assignment"`
	Person     models.Person     `json:"person"`
	Children   []*Tree           `json:"children"`
}

// BuildStats reports integrity problems the builder worked around.
// They degrade the rendered forest rather than failing the read; the
// caller decides whether to log them.
type BuildStats struct {
	// DroppedPersons counts nodes omitted because their person was
	// missing from the lookup map. Their subtrees are dropped with
	// them, never re-parented: silently promoting orphans would hide
	// the data problem.
	DroppedPersons int

	// Truncated counts descent edges cut because the child id had
	// already been visited.
	Truncated int

	// Unreachable counts assignments reachable from no root. A
	// nonzero value means the reports-to links contain a cycle.
	Unreachable int
}

// Clean reports whether the build saw no integrity problems.
func (s BuildStats) Clean() bool {
	return s.DroppedPersons == 0 && s.Truncated == 0 && s.Unreachable == 0
}

// BuildForest turns a flat assignment list into a forest of Trees.
//
// It is a pure function: roots are the assignments whose reports-to is
// absent or does not resolve within the input set, in input order;
// children of a node are the assignments reporting to it, in input
// order. No sorting by role or name happens here.
//
// Adjacency is built id-to-ids up front, and descent tracks visited
// ids, so a reports-to cycle in the data truncates a branch instead of
// looping.
func BuildForest(assignments []models.Assignment, people map[primitive.ObjectID]models.Person) ([]*Tree, BuildStats) {
	var stats BuildStats

	present := make(map[primitive.ObjectID]struct{}, len(assignments))
	for _, a := range assignments {
		present[a.ID] = struct{}{}
	}

	children := make(map[primitive.ObjectID][]models.Assignment)
	var rootRecs []models.Assignment
	for _, a := range assignments {
		if a.ReportsTo == nil {
			rootRecs = append(rootRecs, a)
			continue
		}
		if _, ok := present[*a.ReportsTo]; !ok {
			rootRecs = append(rootRecs, a)
			continue
		}
		children[*a.ReportsTo] = append(children[*a.ReportsTo], a)
	}

	visited := make(map[primitive.ObjectID]struct{}, len(assignments))

	var build func(a models.Assignment) *Tree
	build = func(a models.Assignment) *Tree {
		visited[a.ID] = struct{}{}

		kids := []*Tree{}
		for _, c := range children[a.ID] {
			if _, seen := visited[c.ID]; seen {
				stats.Truncated++
				continue
			}
			if t := build(c); t != nil {
				kids = append(kids, t)
			}
		}

		p, ok := people[a.PersonID]
		if !ok {
			stats.DroppedPersons++
			return nil
		}
		return &Tree{Assignment: a, Person: p, Children: kids}
	}

	forest := make([]*Tree, 0, len(rootRecs))
	for _, r := range rootRecs {
		if _, seen := visited[r.ID]; seen {
			stats.Truncated++
			continue
		}
		if t := build(r); t != nil {
			forest = append(forest, t)
		}
	}

	// Anything never visited has a parent chain that loops back on
	// itself and reaches no root.
	stats.Unreachable = len(assignments) - len(visited)

	return forest, stats
}
