package algorithms

import (
	"github.com/dd0wney/cluso-ontograph/pkg/graph"
	"github.com/dd0wney/cluso-ontograph/pkg/ontology"
)

// Hierarchy is the term hierarchy the builders expand. *ontology.Ontology
// implements it.
type Hierarchy interface {
	Term(id string) (*ontology.Term, error)
	ChildTerms(id string) ([]*ontology.Term, error)
	ParentTerms(id string) ([]*ontology.Term, error)
	AncestorTerms(id string) ([]*ontology.Term, error)
}

// Filter decides whether a term is included; nil includes everything.
type Filter func(id string) bool

// Delimiters is a set of boundary terms.
type Delimiters interface {
	Includes(id string) bool
}

// DelimiterSet is the map-backed Delimiters implementation.
type DelimiterSet map[string]struct{}

// NewDelimiterSet creates a delimiter set from ids
func NewDelimiterSet(ids ...string) DelimiterSet {
	set := make(DelimiterSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Includes reports whether id is a delimiter.
func (d DelimiterSet) Includes(id string) bool {
	_, ok := d[id]
	return ok
}

// IDs returns the members of the set in no particular order.
func (d DelimiterSet) IDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	return ids
}

// TreeOptions configures the depth/filter builders.
type TreeOptions struct {
	MaxDepth int    // levels to expand; 0 = unbounded
	Filter   Filter // nil includes every term
}

// Validate checks the options for contradictions
func (o TreeOptions) Validate(op string) error {
	if o.MaxDepth < 0 {
		return graph.InvariantError(op, "", "MaxDepth must be >= 0, got %d", o.MaxDepth)
	}
	return nil
}

func (o TreeOptions) accept(id string) bool {
	return o.Filter == nil || o.Filter(id)
}

// isDelimiter treats a nil Delimiters as the empty set.
func isDelimiter(d Delimiters, id string) bool {
	return d != nil && d.Includes(id)
}

func termIDs(terms []*ontology.Term) []string {
	ids := make([]string, len(terms))
	for i, t := range terms {
		ids[i] = t.ID
	}
	return ids
}
