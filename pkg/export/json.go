package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

// nodeLink is the node-link JSON layout read by common graph libraries.
type nodeLink struct {
	Directed   bool             `json:"directed"`
	Multigraph bool             `json:"multigraph"`
	Graph      map[string]any   `json:"graph"`
	Nodes      []map[string]any `json:"nodes"`
	Links      []link           `json:"links"`
}

type link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// nodeIDKey holds the node ID in each node object.
const nodeIDKey = "id"

// writeJSON writes g as node-link JSON. nil values are left out and
// infinities are written as the strings "Infinity" and "-Infinity".
func writeJSON(w io.Writer, g *graph.Graph, pretty bool) error {
	doc := nodeLink{
		Graph: map[string]any{},
		Nodes: make([]map[string]any, 0, g.NodeCount()),
		Links: make([]link, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		attrs := g.Attributes(id)
		if _, ok := attrs[nodeIDKey]; ok {
			return graph.InvariantError("Write", id, "attribute %q collides with the node-link id key", nodeIDKey)
		}
		node := make(map[string]any, len(attrs)+1)
		for k, v := range attrs {
			if v == nil {
				continue
			}
			node[k] = jsonValue(v)
		}
		node[nodeIDKey] = id
		doc.Nodes = append(doc.Nodes, node)
	}
	for _, e := range g.Edges() {
		doc.Links = append(doc.Links, link{Source: e.A, Target: e.B})
	}

	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode node-link json: %w", err)
	}
	return nil
}

func jsonValue(v any) any {
	f, ok := v.(float64)
	switch {
	case !ok:
		return v
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return v
}
