package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordBuild records one root build with the nodes and edges it added.
func (r *Registry) RecordBuild(mode, status string, duration time.Duration, nodes, edges int) {
	r.BuildsTotal.WithLabelValues(mode, status).Inc()
	r.BuildDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if status == StatusSuccess {
		r.BuildNodes.WithLabelValues(mode).Observe(float64(nodes))
		r.BuildEdges.WithLabelValues(mode).Observe(float64(edges))
	}
}

// RecordAnnotation records rows loaded and nodes annotated.
func (r *Registry) RecordAnnotation(rows, annotated int) {
	r.AnnotationRowsLoaded.Add(float64(rows))
	r.AnnotatedNodesTotal.Add(float64(annotated))
}

// RecordCycles adds detected hierarchy cycles.
func (r *Registry) RecordCycles(n int) {
	r.CyclesDetectedTotal.Add(float64(n))
}

// UpdateOntologyMetrics sets the size of the loaded ontology.
func (r *Registry) UpdateOntologyMetrics(terms, dangling int) {
	r.OntologyTerms.Set(float64(terms))
	r.OntologyDanglingParents.Set(float64(dangling))
}

// MarkRun records the end of a run.
func (r *Registry) MarkRun(finished time.Time, success bool, samples int) {
	r.LastRunTimestamp.Set(float64(finished.Unix()))
	if success {
		r.LastRunSuccess.Set(1)
	} else {
		r.LastRunSuccess.Set(0)
	}
	r.SampleNodes.Set(float64(samples))
}

// WriteTextfile writes all metrics in the text exposition format, for
// pickup by a node exporter textfile collector. The file is replaced
// atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
