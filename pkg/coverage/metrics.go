package coverage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mapflow/coverage/internal/metrics"
)

// MetricsCollectors returns the library's Prometheus collectors (grid
// rebuilds, frame reuses, image cache hits and misses, indexed cell
// count). Nothing is registered with a default registry; host
// applications register these wherever they expose metrics.
//
// Example:
//
//	prometheus.MustRegister(coverage.MetricsCollectors()...)
func MetricsCollectors() []prometheus.Collector {
	return metrics.Collectors()
}
