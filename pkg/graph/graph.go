package graph

import (
	"fmt"
	"sort"
)

// Edge is an unordered pair of term IDs. A is never greater than B.
type Edge struct {
	A string
	B string
}

// NewEdge returns the canonical form of the pair {a, b}.
func NewEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Graph is an undirected graph over term IDs with per-node attributes.
//
// A Graph is not safe for concurrent mutation; callers that share one
// across goroutines must serialize access themselves.
type Graph struct {
	attrs     map[string]map[string]any
	adjacency map[string]map[string]struct{}
	edgeCount int
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		attrs:     make(map[string]map[string]any),
		adjacency: make(map[string]map[string]struct{}),
	}
}

// AddNode adds id to the graph. It reports whether the node was new.
func (g *Graph) AddNode(id string) bool {
	if _, ok := g.attrs[id]; ok {
		return false
	}
	g.attrs[id] = make(map[string]any)
	g.adjacency[id] = make(map[string]struct{})
	return true
}

// AddEdge adds the undirected edge {a, b}, adding missing endpoints.
// Adding an existing edge is a no-op; the return value reports whether
// the edge was new.
func (g *Graph) AddEdge(a, b string) bool {
	g.AddNode(a)
	g.AddNode(b)
	if _, ok := g.adjacency[a][b]; ok {
		return false
	}
	g.adjacency[a][b] = struct{}{}
	g.adjacency[b][a] = struct{}{}
	g.edgeCount++
	return true
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.attrs[id]
	return ok
}

// HasEdge reports whether {a, b} is an edge of the graph.
func (g *Graph) HasEdge(a, b string) bool {
	neighbors, ok := g.adjacency[a]
	if !ok {
		return false
	}
	_, ok = neighbors[b]
	return ok
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.attrs)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Nodes returns all node IDs in sorted order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.attrs))
	for id := range g.attrs {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

// NodeSet returns the node IDs as a set.
func (g *Graph) NodeSet() map[string]bool {
	set := make(map[string]bool, len(g.attrs))
	for id := range g.attrs {
		set[id] = true
	}
	return set
}

// Edges returns all edges in canonical, sorted order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for a, neighbors := range g.adjacency {
		for b := range neighbors {
			if a <= b {
				edges = append(edges, Edge{A: a, B: b})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// Neighbors returns the sorted neighbors of id, or nil if id is unknown.
func (g *Graph) Neighbors(id string) []string {
	adj, ok := g.adjacency[id]
	if !ok {
		return nil
	}
	neighbors := make([]string, 0, len(adj))
	for n := range adj {
		neighbors = append(neighbors, n)
	}
	sort.Strings(neighbors)
	return neighbors
}

// SetAttribute stores a scalar attribute on an existing node.
// Only int64, float64, bool, string and nil values are accepted.
func (g *Graph) SetAttribute(id, key string, value any) error {
	attrs, ok := g.attrs[id]
	if !ok {
		return InvariantError("SetAttribute", id, "node not in graph")
	}
	if !IsScalar(value) {
		return InvariantError("SetAttribute", id, "attribute %q has unsupported type %T", key, value)
	}
	attrs[key] = value
	return nil
}

// Attribute returns a single attribute of a node.
func (g *Graph) Attribute(id, key string) (any, bool) {
	attrs, ok := g.attrs[id]
	if !ok {
		return nil, false
	}
	v, ok := attrs[key]
	return v, ok
}

// Attributes returns a copy of the attributes of a node.
func (g *Graph) Attributes(id string) map[string]any {
	attrs, ok := g.attrs[id]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// Clone creates a deep copy of the graph
func (g *Graph) Clone() *Graph {
	clone := New()
	for id, attrs := range g.attrs {
		clone.AddNode(id)
		for k, v := range attrs {
			clone.attrs[id][k] = v
		}
	}
	for _, e := range g.Edges() {
		clone.AddEdge(e.A, e.B)
	}
	return clone
}

// String returns a short summary of the graph
func (g *Graph) String() string {
	return fmt.Sprintf("Graph(nodes=%d, edges=%d)", g.NodeCount(), g.EdgeCount())
}

// IsScalar reports whether v is one of the attribute types a Graph stores.
func IsScalar(v any) bool {
	switch v.(type) {
	case nil, int64, float64, bool, string:
		return true
	default:
		return false
	}
}
