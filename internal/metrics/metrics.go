// Package metrics exposes Prometheus collectors for the coverage renderers.
//
// The collectors are package-level so renderers anywhere in the process feed
// the same counters. Nothing is registered with a default registry; host
// applications register them through coverage.MetricsCollectors. Processes
// that never register them pay only the counter increments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// GridRebuilds counts full styled-band and spatial-index rebuilds.
	GridRebuilds = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coverage_grid_rebuilds_total",
		Help: "Number of coverage grid rebuilds (styling, tessellation, spatial indexing).",
	})

	// FrameReuses counts frames served from the cached draw batch.
	FrameReuses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coverage_frame_reuses_total",
		Help: "Number of frames served from the cached draw batch without a rebuild.",
	})

	// ImageCacheHits counts rendered-image cache hits.
	ImageCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coverage_image_cache_hits_total",
		Help: "Number of coverage image requests served from the image cache.",
	})

	// ImageCacheMisses counts rendered-image cache misses.
	ImageCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coverage_image_cache_misses_total",
		Help: "Number of coverage image requests that rendered a new image.",
	})

	// IndexedCells tracks the number of cells in the most recently built
	// spatial index.
	IndexedCells = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "coverage_indexed_cells",
		Help: "Cells in the most recently built coverage spatial index.",
	})
)

// Collectors returns every collector of this package for registration with
// a host application's registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		GridRebuilds,
		FrameReuses,
		ImageCacheHits,
		ImageCacheMisses,
		IndexedCells,
	}
}
