// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics collects Prometheus metrics for logicsimd.
//
package metrics

import (
	"net/http"
	"strconv"
	"time"

	ls "github.com/db47h/logicsim"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service metrics in its own registry. It implements
// editor.Metrics.
//
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Edits              *prometheus.CounterVec
	Evaluations        prometheus.Counter
	NodeEvaluations    prometheus.Counter
	CycleBreaks        prometheus.Counter
	EvaluationDuration prometheus.Histogram
	ActiveSessions     prometheus.Gauge
}

// NewCollector creates a collector with metric names prefixed by namespace.
//
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_total",
			Help:      "Circuit edits by operation and outcome.",
		}, []string{"op", "status"}),
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Evaluation passes.",
		}),
		NodeEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_evaluations_total",
			Help:      "Gate and output computations over all evaluation passes.",
		}),
		CycleBreaks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycle_breaks_total",
			Help:      "Wires resolved to false because they closed a feedback loop.",
		}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Evaluation pass duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Open editor sessions.",
		}),
	}
	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Edits,
		c.Evaluations,
		c.NodeEvaluations,
		c.CycleBreaks,
		c.EvaluationDuration,
		c.ActiveSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the collector's registry.
//
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler returns an HTTP handler serving the collector's metrics.
//
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Edit implements editor.Metrics.
//
func (c *Collector) Edit(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.Edits.WithLabelValues(op, status).Inc()
}

// Evaluation implements editor.Metrics.
//
func (c *Collector) Evaluation(d time.Duration, r *ls.Result) {
	c.Evaluations.Inc()
	c.NodeEvaluations.Add(float64(r.Evaluations))
	c.CycleBreaks.Add(float64(r.CycleBreaks))
	c.EvaluationDuration.Observe(d.Seconds())
}

// Sessions implements editor.Metrics.
//
func (c *Collector) Sessions(n int) { c.ActiveSessions.Set(float64(n)) }

// Request records an HTTP request.
//
func (c *Collector) Request(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
