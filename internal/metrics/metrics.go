// Package metrics defines Prometheus metrics for the RocketSource client and
// the local mock server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rsc"

// Client metrics. Route labels carry the path template (for example
// "/scans/{id}"), never the concrete path.
var (
	ClientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of RocketSource API requests by outcome.",
	}, []string{"method", "route", "status"})

	ClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Duration of RocketSource API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	ClientErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "errors_total",
		Help:      "Total number of failed RocketSource API requests by error kind.",
	}, []string{"kind"})
)

// Batch conversion metrics.
var (
	BatchChunksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "chunks_total",
		Help:      "Total number of identifier chunks sent for conversion.",
	})

	BatchIdentifiersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "identifiers_total",
		Help:      "Total number of identifiers sent for conversion.",
	})
)

// Mock server metrics.
var (
	MockRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mock",
		Name:      "requests_total",
		Help:      "Total number of requests served by the mock API server.",
	}, []string{"method", "path", "status"})
)
