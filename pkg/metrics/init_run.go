package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRunMetrics() {
	r.LastRunTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ontograph_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		},
	)

	r.LastRunSuccess = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ontograph_last_run_success",
			Help: "1 if the last run succeeded, 0 otherwise",
		},
	)

	r.SampleNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ontograph_sample_nodes",
			Help: "Sample nodes in the graph produced by the last run",
		},
	)
}
