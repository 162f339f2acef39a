// SPDX-License-Identifier: MIT

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values of timewarp_alignments_total.
const (
	outcomeOK         = "ok"
	outcomeInfeasible = "infeasible"
	outcomeInvalid    = "invalid"
	outcomeTooLarge   = "too_large"
	outcomeOverflow   = "overflow"
)

// metrics holds the service collectors. Each Server owns its own registry so
// several servers (and tests) can coexist in one process.
type metrics struct {
	registry   *prometheus.Registry
	alignments *prometheus.CounterVec
	cells      prometheus.Counter
	duration   prometheus.Histogram
	cacheHits  prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		alignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timewarp",
			Name:      "alignments_total",
			Help:      "Alignment requests by outcome.",
		}, []string{"outcome"}),
		cells: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "timewarp",
			Name:      "cells_filled_total",
			Help:      "Admissible cost-matrix cells filled.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "timewarp",
			Name:      "alignment_seconds",
			Help:      "Time spent filling and backtracking one alignment.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "timewarp",
			Name:      "cache_hits_total",
			Help:      "Alignment requests answered from the result cache.",
		}),
	}

	m.registry.MustRegister(
		m.alignments,
		m.cells,
		m.duration,
		m.cacheHits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// pre-create label values so they are exported at zero
	for _, o := range []string{outcomeOK, outcomeInfeasible, outcomeInvalid, outcomeTooLarge, outcomeOverflow} {
		m.alignments.WithLabelValues(o)
	}

	return m
}

// handler serves the registry in the Prometheus exposition format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
