package algorithms

import (
	"math"

	"github.com/dd0wney/cluso-ontograph/pkg/graph"
	"github.com/dd0wney/cluso-ontograph/pkg/ontology"
)

// unbounded stands in for "no depth limit"; decrementing it never reaches zero
// on a real hierarchy.
const unbounded = math.MaxInt

type neighborFunc func(id string) ([]*ontology.Term, error)

type walkFrame struct {
	id        string
	remaining int
	next      []string
	pos       int
}

// walkTree expands start depth-first using an explicit stack, adding an
// edge from each expanded term to every accepted neighbor.
//
// A term reached again with more remaining depth than before is expanded
// again, so the result matches a plain recursive expansion on a DAG. A
// neighbor that is already on the current path is a cycle.
func walkTree(op, start string, g *graph.Graph, maxDepth int, neighbors neighborFunc, accept Filter) error {
	if maxDepth == 0 {
		maxDepth = unbounded
	}

	expandedWith := make(map[string]int)
	onPath := make(map[string]bool)
	var stack []*walkFrame
	var path []string

	push := func(id string, remaining int) error {
		if remaining <= 0 {
			return nil
		}
		if r, ok := expandedWith[id]; ok && r >= remaining {
			return nil
		}
		expandedWith[id] = remaining

		terms, err := neighbors(id)
		if err != nil {
			return graph.NewError(op).Term(id).Cause(err).Err()
		}
		next := make([]string, 0, len(terms))
		for _, t := range terms {
			if accept(t.ID) {
				next = append(next, t.ID)
			}
		}

		stack = append(stack, &walkFrame{id: id, remaining: remaining, next: next})
		onPath[id] = true
		path = append(path, id)
		return nil
	}

	if err := push(start, maxDepth); err != nil {
		return err
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.pos == len(top.next) {
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			onPath[top.id] = false
			continue
		}

		neighbor := top.next[top.pos]
		top.pos++

		if onPath[neighbor] {
			return graph.CycleError(op, append(path, neighbor))
		}
		g.AddEdge(top.id, neighbor)
		if err := push(neighbor, top.remaining-1); err != nil {
			return err
		}
	}

	return nil
}
