package algorithms

import (
	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

// BuildClosure adds every ancestor of term that lies below one of the
// delimiters, across all branches at once.
//
// For each expanded term, with parents P and, for every parent p,
// ancestorsOf[p] = strict ancestors of p (plus p itself when inclusive):
//
//  1. If a parent is a delimiter and no delimiter occurs in any
//     ancestorsOf[p], nothing is added for this term.
//  2. Otherwise every parent p whose ancestorsOf[p] contains a delimiter
//     is connected to term and expanded in turn. Parents whose branch
//     holds no delimiter are skipped.
//
// A branch is therefore never cut at a shallow delimiter while a further
// delimiter still lies above it, and applying a delimiter set at once
// yields the same nodes as applying its members one by one into the
// same graph. In exclusive mode a delimiter is only added when another
// delimiter lies above it; in inclusive mode every delimiter reachable
// from term is added.
//
// Example, with parent edges A->B->C->D and A->E->F and delimiters
// {B, D, F}: exclusive adds A, B, C, E; inclusive adds A through F.
func BuildClosure(h Hierarchy, term string, g *graph.Graph, delimiters Delimiters, inclusive bool) (*graph.Graph, error) {
	const op = "BuildClosure"
	if g == nil {
		return nil, graph.InvariantError(op, term, "graph is nil")
	}

	c := &closure{
		h:          h,
		delimiters: delimiters,
		inclusive:  inclusive,
		ancestors:  make(map[string][]string),
	}
	if err := c.walk(op, term, g); err != nil {
		return g, err
	}
	return g, nil
}

type closure struct {
	h          Hierarchy
	delimiters Delimiters
	inclusive  bool
	ancestors  map[string][]string // strict ancestors, memoized per build
}

type closureFrame struct {
	id   string
	next []string
	pos  int
}

func (c *closure) walk(op, start string, g *graph.Graph) error {
	visited := make(map[string]bool)
	onPath := make(map[string]bool)
	var stack []*closureFrame
	var path []string

	push := func(id string) error {
		if visited[id] {
			return nil
		}
		visited[id] = true

		next, err := c.qualifyingParents(id)
		if err != nil {
			return graph.NewError(op).Term(id).Cause(err).Err()
		}
		stack = append(stack, &closureFrame{id: id, next: next})
		onPath[id] = true
		path = append(path, id)
		return nil
	}

	if err := push(start); err != nil {
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

		parent := top.next[top.pos]
		top.pos++

		if onPath[parent] {
			return graph.CycleError(op, append(path, parent))
		}
		g.AddEdge(top.id, parent)
		if err := push(parent); err != nil {
			return err
		}
	}

	return nil
}

// qualifyingParents returns the parents of id that lead to a delimiter.
func (c *closure) qualifyingParents(id string) ([]string, error) {
	parentTerms, err := c.h.ParentTerms(id)
	if err != nil {
		return nil, err
	}
	parents := termIDs(parentTerms)

	reachesDelimiter := make([]bool, len(parents))
	parentIsDelimiter := false
	anyAbove := false

	for i, p := range parents {
		above, err := c.strictAncestors(p)
		if err != nil {
			return nil, err
		}
		if c.inclusive && isDelimiter(c.delimiters, p) {
			reachesDelimiter[i] = true
		}
		if !reachesDelimiter[i] {
			for _, a := range above {
				if isDelimiter(c.delimiters, a) {
					reachesDelimiter[i] = true
					break
				}
			}
		}
		if isDelimiter(c.delimiters, p) {
			parentIsDelimiter = true
		}
		if reachesDelimiter[i] {
			anyAbove = true
		}
	}

	// The only delimiters in reach sit directly on top of id.
	if parentIsDelimiter && !anyAbove {
		return nil, nil
	}

	qualifying := make([]string, 0, len(parents))
	for i, p := range parents {
		if reachesDelimiter[i] {
			qualifying = append(qualifying, p)
		}
	}
	return qualifying, nil
}

func (c *closure) strictAncestors(id string) ([]string, error) {
	if above, ok := c.ancestors[id]; ok {
		return above, nil
	}
	terms, err := c.h.AncestorTerms(id)
	if err != nil {
		return nil, err
	}
	above := termIDs(terms)
	c.ancestors[id] = above
	return above, nil
}
