// Package metrics exposes Prometheus metrics for the subscription pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orris-inc/subhub/internal/shared/config"
)

// Subscription request results.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
	ResultCached   = "cached"
)

// Collector owns a private registry and every pipeline metric. A nil
// *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	subscriptionRequests *prometheus.CounterVec
	conversionDuration   prometheus.Histogram
	conversionFailures   *prometheus.CounterVec
	mergeFailures        *prometheus.CounterVec
	probeResults         *prometheus.CounterVec
	httpRequests         *prometheus.CounterVec
	httpDuration         *prometheus.HistogramVec
}

// NewCollector registers the metrics under cfg.Namespace. When registry is
// nil a fresh one is created with Go and process collectors attached.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	ns := cfg.Namespace
	if ns == "" {
		ns = "subhub"
	}

	c := &Collector{
		registry: registry,
		subscriptionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "subscription_requests_total",
			Help:      "Subscription requests by result.",
		}, []string{"result"}),
		conversionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "conversion_duration_seconds",
			Help:      "Time spent waiting for the conversion service.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		}),
		conversionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "conversion_failures_total",
			Help:      "Failed conversion calls by reason.",
		}, []string{"reason"}),
		mergeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "merge_failures_total",
			Help:      "Failed profile merges by error kind.",
		}, []string{"kind"}),
		probeResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "subconverter_probes_total",
			Help:      "Subconverter health probes by outcome.",
		}, []string{"subconverter_id", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		c.subscriptionRequests,
		c.conversionDuration,
		c.conversionFailures,
		c.mergeFailures,
		c.probeResults,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

// RecordSubscription counts one subscription request outcome.
func (c *Collector) RecordSubscription(result string) {
	if c == nil {
		return
	}
	c.subscriptionRequests.WithLabelValues(result).Inc()
}

// ObserveConversion records a conversion call. reason is empty on success.
func (c *Collector) ObserveConversion(d time.Duration, reason string) {
	if c == nil {
		return
	}
	c.conversionDuration.Observe(d.Seconds())
	if reason != "" {
		c.conversionFailures.WithLabelValues(reason).Inc()
	}
}

// RecordMergeFailure counts a failed merge by error kind.
func (c *Collector) RecordMergeFailure(kind string) {
	if c == nil {
		return
	}
	c.mergeFailures.WithLabelValues(kind).Inc()
}

// RecordProbe counts one subconverter probe.
func (c *Collector) RecordProbe(subconverterID string, ok bool) {
	if c == nil {
		return
	}
	outcome := "up"
	if !ok {
		outcome = "down"
	}
	c.probeResults.WithLabelValues(subconverterID, outcome).Inc()
}

// ObserveHTTP records one served request. route is the matched pattern,
// not the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
