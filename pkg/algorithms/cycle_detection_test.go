package algorithms

import (
	"errors"
	"testing"
)

func TestDetectCycles_NoCycles(t *testing.T) {
	cycles, err := DetectCycles(dummyHierarchy(t))
	if err != nil {
		t.Fatalf("DetectCycles failed: %v", err)
	}
	if len(cycles) != 0 {
		t.Errorf("Expected no cycles, got %v", cycles)
	}
}

func TestDetectCycles_SimpleCycle(t *testing.T) {
	h := newHierarchy(t, map[string][]string{
		"X": {"Y"},
		"Y": {"X"},
	})

	cycles, err := DetectCycles(h)
	if err != nil {
		t.Fatalf("DetectCycles failed: %v", err)
	}
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, got %d", len(cycles))
	}
	if len(cycles[0]) != 2 {
		t.Errorf("Expected cycle length 2, got %v", cycles[0])
	}
}

func TestDetectCycles_SelfLoop(t *testing.T) {
	h := newHierarchy(t, map[string][]string{
		"X": {"X", "Y"},
		"Y": nil,
	})

	cycles, err := DetectCycles(h)
	if err != nil {
		t.Fatalf("DetectCycles failed: %v", err)
	}
	if len(cycles) != 1 || len(cycles[0]) != 1 || cycles[0][0] != "X" {
		t.Errorf("Expected self loop on X, got %v", cycles)
	}
}

func TestDetectCycles_TriangleCycle(t *testing.T) {
	h := newHierarchy(t, map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	})

	cycles, err := DetectCycles(h)
	if err != nil {
		t.Fatalf("DetectCycles failed: %v", err)
	}
	if len(cycles) != 1 || len(cycles[0]) != 3 {
		t.Errorf("Expected one cycle of length 3, got %v", cycles)
	}
}

func TestDetectCycles_MultipleCycles(t *testing.T) {
	// Two disjoint loops hanging off an acyclic part.
	h := newHierarchy(t, map[string][]string{
		"A": {"B"},
		"B": {"A"},
		"C": {"D"},
		"D": {"E"},
		"E": {"C", "F"},
		"F": nil,
	})

	cycles, err := DetectCycles(h)
	if err != nil {
		t.Fatalf("DetectCycles failed: %v", err)
	}
	if len(cycles) != 2 {
		t.Errorf("Expected 2 cycles, got %v", cycles)
	}
}

func TestDetectCycles_SharedAncestorIsNotACycle(t *testing.T) {
	cycles, err := DetectCycles(sampleHierarchy(t))
	if err != nil {
		t.Fatalf("DetectCycles failed: %v", err)
	}
	if len(cycles) != 0 {
		t.Errorf("Diamond-shaped hierarchy reported cycles: %v", cycles)
	}
}

func TestDetectCycles_EmptyHierarchy(t *testing.T) {
	cycles, err := DetectCycles(newHierarchy(t, nil))
	if err != nil {
		t.Fatalf("DetectCycles failed: %v", err)
	}
	if len(cycles) != 0 {
		t.Errorf("Expected no cycles, got %v", cycles)
	}
}

func TestDetectCycles_PropagatesErrors(t *testing.T) {
	h := failingHierarchy{Hierarchy: dummyHierarchy(t), failOn: "C"}
	source := struct {
		Hierarchy
		idLister
	}{h, dummyHierarchy(t)}

	if _, err := DetectCycles(source); !errors.Is(err, errFail) {
		t.Errorf("Expected backend error, got %v", err)
	}
}

type idLister interface{ IDs() []string }

func TestAnalyzeCycles(t *testing.T) {
	cycles := []Cycle{
		{"X"},
		{"A", "B"},
		{"C", "D", "E", "F"},
	}

	stats := AnalyzeCycles(cycles)
	if stats.TotalCycles != 3 {
		t.Errorf("Expected 3 cycles, got %d", stats.TotalCycles)
	}
	if stats.ShortestCycle != 1 {
		t.Errorf("Expected shortest 1, got %d", stats.ShortestCycle)
	}
	if stats.LongestCycle != 4 {
		t.Errorf("Expected longest 4, got %d", stats.LongestCycle)
	}
	if stats.SelfLoops != 1 {
		t.Errorf("Expected 1 self loop, got %d", stats.SelfLoops)
	}
}

func TestAnalyzeCycles_Empty(t *testing.T) {
	if stats := AnalyzeCycles(nil); stats != (CycleStats{}) {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
}
