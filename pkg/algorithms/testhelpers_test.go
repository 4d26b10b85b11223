package algorithms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"testing"

	"github.com/dd0wney/cluso-ontograph/pkg/graph"
	"github.com/dd0wney/cluso-ontograph/pkg/ontology"
)

// newHierarchy builds an ontology from child -> parents edges.
func newHierarchy(t testing.TB, parents map[string][]string) *ontology.Ontology {
	t.Helper()
	o := ontology.New()

	ids := make([]string, 0, len(parents))
	for id := range parents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		o.AddTerm(&ontology.Term{ID: id, Name: "term " + id})
	}
	for _, id := range ids {
		for _, p := range parents[id] {
			if _, ok := parents[p]; !ok {
				t.Fatalf("fixture references undeclared parent %s", p)
			}
			o.AddParent(id, p)
		}
	}
	return o
}

// dummyHierarchy has parent edges A->B->C->D and A->E->F.
func dummyHierarchy(t testing.TB) *ontology.Ontology {
	return newHierarchy(t, map[string][]string{
		"A": {"B", "E"},
		"B": {"C"},
		"C": {"D"},
		"D": nil,
		"E": {"F"},
		"F": nil,
	})
}

// FANTOM-like sample hierarchy. Delimiters used in tests:
// FF:0000002 in vivo cell sample, FF:0000004 tissue sample,
// FF:0000003 cell line sample, FF:0000210 human sample.
func sampleHierarchy(t testing.TB) *ontology.Ontology {
	return newHierarchy(t, map[string][]string{
		"FF:0000001": nil,                          // sample
		"FF:0000210": {"FF:0000001"},               // human sample
		"FF:0000002": {"FF:0000001"},               // in vivo cell sample
		"FF:0000003": {"FF:0000001"},               // cell line sample
		"FF:0000004": {"FF:0000001"},               // tissue sample
		"FF:0000101": {"FF:0000002", "FF:0000210"}, // human in vivo cell sample
		"FF:0000102": {"FF:0000101"},               // hepatocyte sample
		"FF:0000103": {"FF:0000101"},               // monocyte sample
		"FF:0000201": {"FF:0000003", "FF:0000210"}, // human cell line sample
		"FF:0000202": {"FF:0000201"},               // HepG2 sample
		"FF:0000301": {"FF:0000004"},               // liver tissue sample
		"FF:0000302": {"FF:0000301", "FF:0000210"}, // human liver tissue sample
		"FF:10001-101A1": {"FF:0000102"},
		"FF:10002-101A2": {"FF:0000103", "FF:0000102"},
		"FF:10003-101A3": {"FF:0000202"},
		"FF:10004-101A4": {"FF:0000302"},
		"FF:10005-101A5": {"FF:0000302", "FF:0000202"},
	})
}

var sampleDelimiters = []string{"FF:0000002", "FF:0000004", "FF:0000003", "FF:0000210"}

func sampleIDs(o *ontology.Ontology) []string {
	var ids []string
	for _, id := range o.IDs() {
		if ontology.IsSampleID(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func assertNodes(t *testing.T, g *graph.Graph, want ...string) {
	t.Helper()
	sort.Strings(want)
	if want == nil {
		want = []string{}
	}
	if got := g.Nodes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected nodes %v, got %v", want, got)
	}
}

func sameNodes(a, b *graph.Graph) bool {
	return reflect.DeepEqual(a.NodeSet(), b.NodeSet())
}

// failingHierarchy returns errFail whenever a query touches failOn.
type failingHierarchy struct {
	Hierarchy
	failOn string
}

var errFail = errors.New("hierarchy backend unavailable")

func (f failingHierarchy) ChildTerms(id string) ([]*ontology.Term, error) {
	if id == f.failOn {
		return nil, errFail
	}
	return f.Hierarchy.ChildTerms(id)
}

func (f failingHierarchy) ParentTerms(id string) ([]*ontology.Term, error) {
	if id == f.failOn {
		return nil, errFail
	}
	return f.Hierarchy.ParentTerms(id)
}

func (f failingHierarchy) AncestorTerms(id string) ([]*ontology.Term, error) {
	if id == f.failOn {
		return nil, fmt.Errorf("ancestors: %w", errFail)
	}
	return f.Hierarchy.AncestorTerms(id)
}
