package annotation

import (
	"sort"

	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

// maxMatches is the number of rows one node may match: a sample and its
// technical replicate.
const maxMatches = 2

// protectedAttributes are never overwritten by annotation rows.
var protectedAttributes = map[string]bool{"name": true}

type assignment struct {
	node  string
	key   string
	value any
}

// Annotate copies the fields of the first row whose joinColumn equals a
// node ID onto that node. Nodes without a matching row are left as they
// are. An empty joinColumn means DefaultJoinColumn.
//
// Every node is checked before the graph is touched, so a node matching
// more than two rows or a value that cannot be normalized leaves g
// unchanged.
func Annotate(g *graph.Graph, rows []Row, joinColumn string) (*graph.Graph, error) {
	const op = "Annotate"
	if g == nil {
		return nil, graph.InvariantError(op, "", "graph is nil")
	}
	if joinColumn == "" {
		joinColumn = DefaultJoinColumn
	}

	index := make(map[string][]int)
	for i, row := range rows {
		key, ok := joinKey(row[joinColumn])
		if !ok {
			continue
		}
		index[key] = append(index[key], i)
	}

	var pending []assignment
	for _, id := range g.Nodes() {
		matches := index[id]
		if len(matches) == 0 {
			continue
		}
		if len(matches) > maxMatches {
			return g, graph.InvariantError(op, id, "%d annotation rows match column %q, at most %d allowed",
				len(matches), joinColumn, maxMatches)
		}

		row := rows[matches[0]]
		keys := make([]string, 0, len(row))
		for k := range row {
			if !protectedAttributes[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)

		for _, k := range keys {
			v, err := Normalize(row[k])
			if err != nil {
				return g, graph.NewError(op).Term(id).Context("column %q", k).Cause(err).Err()
			}
			pending = append(pending, assignment{node: id, key: k, value: v})
		}
	}

	for _, a := range pending {
		if err := g.SetAttribute(a.node, a.key, a.value); err != nil {
			return g, err
		}
	}
	return g, nil
}

// AnnotatedNodes counts the nodes of g matched by at least one row.
func AnnotatedNodes(g *graph.Graph, rows []Row, joinColumn string) int {
	if joinColumn == "" {
		joinColumn = DefaultJoinColumn
	}
	keys := make(map[string]bool, len(rows))
	for _, row := range rows {
		if key, ok := joinKey(row[joinColumn]); ok {
			keys[key] = true
		}
	}
	n := 0
	for _, id := range g.Nodes() {
		if keys[id] {
			n++
		}
	}
	return n
}
