// Package pipeline runs a configured build: one builder over a list of
// roots into a shared graph, followed by the annotation overlay.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-ontograph/pkg/algorithms"
	"github.com/dd0wney/cluso-ontograph/pkg/annotation"
	"github.com/dd0wney/cluso-ontograph/pkg/graph"
	"github.com/dd0wney/cluso-ontograph/pkg/logging"
	"github.com/dd0wney/cluso-ontograph/pkg/metrics"
	"github.com/dd0wney/cluso-ontograph/pkg/ontology"
	"github.com/dd0wney/cluso-ontograph/pkg/profile"
)

// Config carries everything one run needs.
type Config struct {
	Profile   *profile.Profile
	Hierarchy algorithms.Hierarchy
	Rows      []annotation.Row  // optional annotation rows
	Logger    logging.Logger    // nil discards logs
	Metrics   *metrics.Registry // nil uses a private registry
}

// RootStats describes the contribution of one root.
type RootStats struct {
	Root     string
	Nodes    int // nodes added by this root
	Edges    int // edges added by this root
	Depth    int // largest hop distance from the root after its build
	Duration time.Duration
}

// Result is the outcome of a successful run.
type Result struct {
	RunID     string
	Mode      profile.Mode
	Graph     *graph.Graph
	Roots     []RootStats
	Samples   int
	Annotated int
}

type buildFunc func(h algorithms.Hierarchy, root string, g *graph.Graph) (*graph.Graph, error)

// Run builds the graph for every root of the profile, in order, then
// applies the annotation rows. Each root is added as a node before its
// build, so a root without relatives still appears in the graph.
// Cancellation is checked between roots.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Profile == nil {
		return nil, errors.New("pipeline: profile is required")
	}
	if cfg.Hierarchy == nil {
		return nil, errors.New("pipeline: hierarchy is required")
	}
	if err := cfg.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: invalid profile: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	reg := cfg.Metrics
	if reg == nil {
		reg = metrics.NewRegistry()
	}

	p := cfg.Profile
	mode := p.Build.Mode
	build, builder, err := builderFor(p)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID: uuid.NewString(),
		Mode:  mode,
		Graph: graph.New(),
	}
	logger = logger.With(logging.Component("pipeline"), logging.RunID(res.RunID), logging.Mode(string(mode)))
	logger.Info("run started", logging.Strings("roots", p.Build.Roots), logging.Builder(builder))

	fail := func(err error) (*Result, error) {
		reg.MarkRun(time.Now(), false, 0)
		logger.Error("run failed", logging.Error(err))
		return nil, err
	}

	for _, root := range p.Build.Roots {
		if err := ctx.Err(); err != nil {
			return fail(fmt.Errorf("run %s cancelled before root %s: %w", res.RunID, root, err))
		}

		stats, err := buildRoot(cfg.Hierarchy, root, res.Graph, build, logger.With(logging.Root(root)))
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusError
			if graph.IsCycle(err) {
				reg.RecordCycles(1)
			}
		}
		reg.RecordBuild(string(mode), status, stats.Duration, stats.Nodes, stats.Edges)
		if err != nil {
			return fail(fmt.Errorf("root %s: %w", root, err))
		}
		res.Roots = append(res.Roots, stats)
	}

	if len(cfg.Rows) > 0 {
		timer := logging.StartTimer(logger, "annotation applied", logging.Operation("annotate"))
		if _, err := annotation.Annotate(res.Graph, cfg.Rows, p.Annotation.JoinColumn); err != nil {
			timer.EndError(err)
			return fail(err)
		}
		res.Annotated = annotation.AnnotatedNodes(res.Graph, cfg.Rows, p.Annotation.JoinColumn)
		timer.End(logging.Count(res.Annotated))
		reg.RecordAnnotation(len(cfg.Rows), res.Annotated)
	}

	for _, id := range res.Graph.Nodes() {
		if ontology.IsSampleID(id) {
			res.Samples++
		}
	}
	reg.MarkRun(time.Now(), true, res.Samples)
	logger.Info("run finished",
		logging.Nodes(res.Graph.NodeCount()),
		logging.Edges(res.Graph.EdgeCount()),
		logging.Int("samples", res.Samples),
		logging.Int("annotated", res.Annotated))

	return res, nil
}

func buildRoot(h algorithms.Hierarchy, root string, g *graph.Graph, build buildFunc, logger logging.Logger) (RootStats, error) {
	stats := RootStats{Root: root}
	timer := logging.StartTimer(logger, "root built")

	if _, err := h.Term(root); err != nil {
		stats.Duration = timer.EndError(err)
		return stats, err
	}

	nodesBefore, edgesBefore := g.NodeCount(), g.EdgeCount()
	g.AddNode(root)
	if _, err := build(h, root, g); err != nil {
		stats.Duration = timer.EndError(err)
		return stats, err
	}
	stats.Nodes = g.NodeCount() - nodesBefore
	stats.Edges = g.EdgeCount() - edgesBefore

	hops, err := algorithms.KHopNeighbours(g, root, algorithms.KHopOptions{MaxHops: g.NodeCount()})
	if err != nil {
		stats.Duration = timer.EndError(err)
		return stats, err
	}
	stats.Depth = hops.Eccentricity()
	stats.Duration = timer.End(logging.Nodes(stats.Nodes), logging.Edges(stats.Edges), logging.Int("depth", stats.Depth))
	return stats, nil
}

// builderFor binds the profile's mode and bounds to a builder. It also
// returns the builder's name for logs.
func builderFor(p *profile.Profile) (buildFunc, string, error) {
	b := p.Build
	delimiters := algorithms.NewDelimiterSet(b.Delimiters...)

	filter, err := p.Filter()
	if err != nil {
		return nil, "", err
	}
	opts := algorithms.TreeOptions{MaxDepth: b.MaxDepth, Filter: filter}

	switch b.Mode {
	case profile.ModeDescendants:
		return func(h algorithms.Hierarchy, root string, g *graph.Graph) (*graph.Graph, error) {
			return algorithms.BuildDescendants(h, root, g, opts)
		}, "BuildDescendants", nil
	case profile.ModeAncestors:
		return func(h algorithms.Hierarchy, root string, g *graph.Graph) (*graph.Graph, error) {
			return algorithms.BuildAncestors(h, root, g, opts)
		}, "BuildAncestors", nil
	case profile.ModeAncestorsBounded:
		return func(h algorithms.Hierarchy, root string, g *graph.Graph) (*graph.Graph, error) {
			return algorithms.BuildAncestorsBounded(h, root, g, delimiters)
		}, "BuildAncestorsBounded", nil
	case profile.ModeClosure:
		return func(h algorithms.Hierarchy, root string, g *graph.Graph) (*graph.Graph, error) {
			return algorithms.BuildClosure(h, root, g, delimiters, b.Inclusive)
		}, "BuildClosure", nil
	}
	return nil, "", fmt.Errorf("unsupported build mode %q", b.Mode)
}
