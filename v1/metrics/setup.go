package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the HTTP server that
// exposes it on /metrics for scraping.
//
// Each service keeps its own isolated registry to prevent metric name
// collisions when multiple services share a process.
type Metrics struct {
	// Server is the HTTP server exposing the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry all metrics are registered on.
	Registry *prometheus.Registry

	// Vector-store operation metrics, fed by StoreObserver.
	storeOpsTotal   *prometheus.CounterVec
	storeOpDuration *prometheus.HistogramVec
	storeOpSize     *prometheus.HistogramVec
}

// NewMetrics initializes a Metrics instance: a dedicated registry with a
// constant `service` label, the vector-store operation collectors, the
// optional default runtime collectors, and an HTTP server serving the
// /metrics endpoint.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "memory-recall",
//	    EnableDefaultCollectors: true,
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service automatically carry
	// service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{Registry: registry}

	m.storeOpsTotal = createCounterVec(
		"vectorstore_operations_total",
		"Total number of vector store operations",
		[]string{"component", "operation", "status"},
	)
	m.storeOpDuration = createHistogramVec(
		"vectorstore_operation_duration_seconds",
		"Duration of vector store operations in seconds",
		[]string{"component", "operation"},
		prometheus.DefBuckets,
	)
	m.storeOpSize = createHistogramVec(
		"vectorstore_operation_size",
		"Record or result counts per vector store operation",
		[]string{"component", "operation"},
		prometheus.ExponentialBuckets(1, 4, 8),
	)

	wrappedRegistry.MustRegister(
		m.storeOpsTotal,
		m.storeOpDuration,
		m.storeOpSize,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	return m
}

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}
