package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initOntologyMetrics() {
	r.OntologyTerms = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ontograph_ontology_terms",
			Help: "Terms in the loaded ontology",
		},
	)

	r.OntologyDanglingParents = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ontograph_ontology_dangling_parents",
			Help: "Terms whose parent references do not resolve",
		},
	)

	r.CyclesDetectedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ontograph_cycles_detected_total",
			Help: "Hierarchy cycles met during builds or checks",
		},
	)
}
