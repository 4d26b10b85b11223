package algorithms

import (
	"github.com/dd0wney/cluso-ontograph/pkg/ontology"
)

// Cycle represents a detected cycle as a sequence of term IDs
type Cycle []string

// CycleSource is a hierarchy whose terms can be enumerated.
// *ontology.Ontology implements it.
type CycleSource interface {
	IDs() []string
	ParentTerms(id string) ([]*ontology.Term, error)
}

const (
	white = iota // Unvisited
	gray         // Currently visiting (on the DFS path)
	black        // Finished visiting
)

// DetectCycles finds cycles in the parent relation of a hierarchy using DFS
// with three-color marking. Reaching a GRAY term means a back edge.
// Builders fail on the first cycle they meet; this reports all of them up
// front.
func DetectCycles(h CycleSource) ([]Cycle, error) {
	color := make(map[string]int)
	parent := make(map[string]string)
	cycles := make([]Cycle, 0)

	// DFS from each unvisited term to cover disconnected components
	for _, id := range h.IDs() {
		if color[id] == white {
			if err := dfsDetectCycle(h, id, color, parent, &cycles); err != nil {
				return nil, err
			}
		}
	}

	return cycles, nil
}

func dfsDetectCycle(
	h CycleSource,
	id string,
	color map[string]int,
	parent map[string]string,
	cycles *[]Cycle,
) error {
	color[id] = gray

	parents, err := h.ParentTerms(id)
	if err != nil {
		return err
	}

	for _, p := range parents {
		next := p.ID

		if next == id {
			*cycles = append(*cycles, Cycle{id})
			continue
		}

		switch color[next] {
		case white:
			parent[next] = id
			if err := dfsDetectCycle(h, next, color, parent, cycles); err != nil {
				return err
			}
		case gray:
			*cycles = append(*cycles, extractCycle(next, id, parent))
		}
		// black: cross edge into a finished subtree, no cycle
	}

	color[id] = black
	return nil
}

// extractCycle walks parent pointers back from end to start
func extractCycle(start, end string, parent map[string]string) Cycle {
	cycle := Cycle{start}

	current := end
	for current != start {
		cycle = append(cycle, current)
		p, ok := parent[current]
		if !ok {
			break
		}
		current = p
	}

	return cycle
}

// CycleStats provides statistics about detected cycles
type CycleStats struct {
	TotalCycles   int
	ShortestCycle int
	LongestCycle  int
	SelfLoops     int
}

// AnalyzeCycles computes statistics about detected cycles
func AnalyzeCycles(cycles []Cycle) CycleStats {
	if len(cycles) == 0 {
		return CycleStats{}
	}

	stats := CycleStats{
		TotalCycles:   len(cycles),
		ShortestCycle: len(cycles[0]),
		LongestCycle:  len(cycles[0]),
	}
	for _, cycle := range cycles {
		length := len(cycle)
		if length == 1 {
			stats.SelfLoops++
		}
		if length < stats.ShortestCycle {
			stats.ShortestCycle = length
		}
		if length > stats.LongestCycle {
			stats.LongestCycle = length
		}
	}
	return stats
}
