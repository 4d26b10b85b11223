package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Build outcome label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Registry holds the metrics of build runs.
type Registry struct {
	// Build metrics, labelled by mode
	BuildsTotal   *prometheus.CounterVec
	BuildDuration *prometheus.HistogramVec
	BuildNodes    *prometheus.HistogramVec
	BuildEdges    *prometheus.HistogramVec

	// Annotation metrics
	AnnotationRowsLoaded prometheus.Counter
	AnnotatedNodesTotal  prometheus.Counter

	// Ontology metrics
	OntologyTerms           prometheus.Gauge
	OntologyDanglingParents prometheus.Gauge
	CyclesDetectedTotal     prometheus.Counter

	// Run metrics
	LastRunTimestamp prometheus.Gauge
	LastRunSuccess   prometheus.Gauge
	SampleNodes      prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initBuildMetrics()
	r.initAnnotationMetrics()
	r.initOntologyMetrics()
	r.initRunMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
