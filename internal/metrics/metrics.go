// Package metrics exposes Prometheus collectors for catalog fetches.
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pokedex"

// Recorder owns a private registry and the pokedex collectors.
type Recorder struct {
	registry       *prometheus.Registry
	listingFetches *prometheus.CounterVec
	detailFetches  *prometheus.CounterVec
	detailLatency  prometheus.Histogram
	reveals        prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		listingFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_fetches_total",
			Help:      "Listing fetches by result.",
		}, []string{"result"}),
		detailFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_fetches_total",
			Help:      "Detail fetches by result.",
		}, []string{"result"}),
		detailLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "detail_fetch_seconds",
			Help:      "Detail fetch duration, excluding reveal latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		reveals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reveal_toggles_total",
			Help:      "Reveal toggles applied to the store.",
		}),
	}
	r.registry.MustRegister(r.listingFetches, r.detailFetches, r.detailLatency, r.reveals)
	return r
}

// ObserveListing counts one listing fetch.
func (r *Recorder) ObserveListing(ok bool) {
	if r == nil {
		return
	}
	r.listingFetches.WithLabelValues(result(ok)).Inc()
}

// ObserveDetail counts one detail fetch and its duration.
func (r *Recorder) ObserveDetail(ok bool, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.detailFetches.WithLabelValues(result(ok)).Inc()
	r.detailLatency.Observe(elapsed.Seconds())
}

// ObserveReveal counts one reveal toggle.
func (r *Recorder) ObserveReveal() {
	if r == nil {
		return
	}
	r.reveals.Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
