// Package metrics defines the Prometheus instruments for the generation
// pipeline and the HTTP surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation holds the orchestrator's counters. Constructed explicitly and
// passed in; a nil registerer keeps the instruments unregistered, which
// makes the whole facility a no-op for correctness purposes.
type Generation struct {
	Requests       prometheus.Counter
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	Errors         prometheus.Counter
	LatencySeconds prometheus.Histogram
}

func NewGeneration(reg prometheus.Registerer) *Generation {
	g := &Generation{
		Requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total generation requests received by the orchestrator.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "generation_cache_hits_total",
			Help: "Generation requests served from the cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "generation_cache_misses_total",
			Help: "Generation requests that reached the model backend.",
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "generation_errors_total",
			Help: "Generation attempts that ended in a failure response.",
		}),
		LatencySeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "generation_latency_seconds",
			Help:    "Backend generation latency in seconds (misses only).",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}

	if reg != nil {
		reg.MustRegister(g.Requests, g.CacheHits, g.CacheMisses, g.Errors, g.LatencySeconds)
	}
	return g
}

// Handler exposes the /metrics endpoint for scraping.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
