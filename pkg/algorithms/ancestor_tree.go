package algorithms

import (
	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

// BuildAncestors expands term bottom-up through parent relationships,
// bounded by opts.MaxDepth and opts.Filter. It is the mirror image of
// BuildDescendants and has no delimiter semantics.
func BuildAncestors(h Hierarchy, term string, g *graph.Graph, opts TreeOptions) (*graph.Graph, error) {
	const op = "BuildAncestors"
	if g == nil {
		return nil, graph.InvariantError(op, term, "graph is nil")
	}
	if err := opts.Validate(op); err != nil {
		return g, err
	}

	if err := walkTree(op, term, g, opts.MaxDepth, h.ParentTerms, opts.accept); err != nil {
		return g, err
	}
	return g, nil
}

// BuildAncestorsBounded expands term bottom-up and treats every delimiter
// as a wall on its own branch: a parent that is a delimiter is dropped
// together with everything above it. Sibling branches without a delimiter
// continue to the top of the hierarchy.
//
// Example, with parent edges A->B->C->D and A->E->F and delimiters
// {B, D, F}: only A and E are added.
func BuildAncestorsBounded(h Hierarchy, term string, g *graph.Graph, delimiters Delimiters) (*graph.Graph, error) {
	const op = "BuildAncestorsBounded"
	if g == nil {
		return nil, graph.InvariantError(op, term, "graph is nil")
	}

	notDelimiter := func(id string) bool { return !isDelimiter(delimiters, id) }
	if err := walkTree(op, term, g, 0, h.ParentTerms, notDelimiter); err != nil {
		return g, err
	}
	return g, nil
}
