// Package metrics provides Prometheus-based monitoring for the std
// component packages.
//
// Core features:
//   - A per-service isolated registry with a constant `service` label
//   - A configurable /metrics endpoint for Prometheus scraping
//   - StoreObserver, an observability.Observer that records vector-store
//     operation counts, latencies and batch sizes
//   - Integration with go.uber.org/fx for lifecycle management
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "memory-recall",
//	    EnableDefaultCollectors: true,
//	})
//	go m.Server.ListenAndServe()
//
//	client = client.WithObserver(metrics.NewStoreObserver(m))
//
// Metrics are then available at http://localhost:9090/metrics, e.g.:
//
//	vectorstore_operations_total{component="elastic",operation="query",status="success"}
//	vectorstore_operation_duration_seconds_bucket{component="elastic",operation="upsert",...}
package metrics
