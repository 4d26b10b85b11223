package export

import (
	"github.com/dd0wney/cluso-ontograph/pkg/graph"
	"github.com/dd0wney/cluso-ontograph/pkg/ontology"
)

// SampleAttribute is set by MarkSamples on every node that does not
// already carry it.
const SampleAttribute = "is_sample"

// TermLookup resolves a term by ID.
type TermLookup interface {
	Term(id string) (*ontology.Term, error)
}

// Label returns the display label "id: name" of a term.
func Label(h TermLookup, id string) (string, error) {
	term, err := h.Term(id)
	if err != nil {
		return "", err
	}
	return id + ": " + term.Name, nil
}

// Relabel returns a copy of g whose nodes are named by Label. Edges and
// attributes carry over.
func Relabel(g *graph.Graph, h TermLookup) (*graph.Graph, error) {
	labels := make(map[string]string, g.NodeCount())
	for _, id := range g.Nodes() {
		label, err := Label(h, id)
		if err != nil {
			return nil, graph.NewError("Relabel").Term(id).Cause(err).Err()
		}
		labels[id] = label
	}

	out := graph.New()
	for _, id := range g.Nodes() {
		out.AddNode(labels[id])
		for k, v := range g.Attributes(id) {
			if err := out.SetAttribute(labels[id], k, v); err != nil {
				return nil, err
			}
		}
	}
	for _, e := range g.Edges() {
		out.AddEdge(labels[e.A], labels[e.B])
	}
	return out, nil
}

// MarkSamples flags whether each node's ID is a sample ID and returns the
// number of sample nodes. An existing SampleAttribute value, for example
// from an annotation column, is left in place.
func MarkSamples(g *graph.Graph) (int, error) {
	samples := 0
	for _, id := range g.Nodes() {
		isSample := ontology.IsSampleID(id)
		if isSample {
			samples++
		}
		if _, ok := g.Attribute(id, SampleAttribute); ok {
			continue
		}
		if err := g.SetAttribute(id, SampleAttribute, isSample); err != nil {
			return samples, err
		}
	}
	return samples, nil
}
