package algorithms

import (
	"fmt"

	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

// KHopOptions configures the k-hop neighbourhood traversal.
type KHopOptions struct {
	MaxHops    int // must be >= 1
	MaxResults int // 0 = unlimited; BFS order gives closer nodes priority
}

// KHopResult holds the BFS neighbourhood of a source node.
type KHopResult struct {
	Source         string
	ByHop          map[int][]string // hop distance → node IDs at that distance
	Distances      map[string]int   // node ID → shortest hop count
	TotalReachable int
}

// Eccentricity returns the largest hop distance found.
func (r *KHopResult) Eccentricity() int {
	deepest := 0
	for hop := range r.ByHop {
		if hop > deepest {
			deepest = hop
		}
	}
	return deepest
}

type bfsEntry struct {
	id  string
	hop int
}

// KHopNeighbours performs a BFS over a built graph from source up to
// MaxHops levels, returning all discovered nodes grouped by distance.
// The source node is never included in results.
func KHopNeighbours(g *graph.Graph, source string, opts KHopOptions) (*KHopResult, error) {
	if opts.MaxHops < 1 {
		return nil, fmt.Errorf("MaxHops must be >= 1, got %d", opts.MaxHops)
	}
	if !g.HasNode(source) {
		return nil, graph.InvariantError("KHopNeighbours", source, "source not in graph")
	}

	result := &KHopResult{
		Source:    source,
		ByHop:     make(map[int][]string),
		Distances: make(map[string]int),
	}
	visited := map[string]bool{source: true}
	queue := []bfsEntry{{id: source, hop: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.hop >= opts.MaxHops {
			continue
		}
		nextHop := current.hop + 1

		for _, neighbor := range g.Neighbors(current.id) {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			result.Distances[neighbor] = nextHop
			result.ByHop[nextHop] = append(result.ByHop[nextHop], neighbor)
			result.TotalReachable++

			if opts.MaxResults > 0 && result.TotalReachable >= opts.MaxResults {
				return result, nil
			}

			queue = append(queue, bfsEntry{id: neighbor, hop: nextHop})
		}
	}

	return result, nil
}
