package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// sizeBuckets covers graphs from a handful of terms up to a full
// ontology.
var sizeBuckets = []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000}

func (r *Registry) initBuildMetrics() {
	r.BuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ontograph_builds_total",
			Help: "Total number of per-root builds",
		},
		[]string{"mode", "status"},
	)

	r.BuildDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ontograph_build_duration_seconds",
			Help:    "Duration of a single root build in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"mode"},
	)

	r.BuildNodes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ontograph_build_nodes",
			Help:    "Nodes added to the graph by a single root build",
			Buckets: sizeBuckets,
		},
		[]string{"mode"},
	)

	r.BuildEdges = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ontograph_build_edges",
			Help:    "Edges added to the graph by a single root build",
			Buckets: sizeBuckets,
		},
		[]string{"mode"},
	)
}

func (r *Registry) initAnnotationMetrics() {
	r.AnnotationRowsLoaded = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ontograph_annotation_rows_loaded_total",
			Help: "Annotation rows read from CSV or PostgreSQL",
		},
	)

	r.AnnotatedNodesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ontograph_annotated_nodes_total",
			Help: "Graph nodes that received annotation attributes",
		},
	)
}
