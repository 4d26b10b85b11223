package algorithms

import (
	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

// BuildDescendants expands root top-down through child relationships.
//
// For every child accepted by opts.Filter an edge (current, child) is added
// and the child is expanded with one level less remaining. With
// opts.MaxDepth = k no node further than k edges from root is added.
//
// g is mutated in place and returned, so several roots can be accumulated
// into one graph.
func BuildDescendants(h Hierarchy, root string, g *graph.Graph, opts TreeOptions) (*graph.Graph, error) {
	const op = "BuildDescendants"
	if g == nil {
		return nil, graph.InvariantError(op, root, "graph is nil")
	}
	if err := opts.Validate(op); err != nil {
		return g, err
	}

	if err := walkTree(op, root, g, opts.MaxDepth, h.ChildTerms, opts.accept); err != nil {
		return g, err
	}
	return g, nil
}
