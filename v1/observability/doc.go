// Package observability provides the operation-observer contract shared
// by the std component packages, plus ready-made observer implementations.
//
// Component packages (elastic, ...) emit an [OperationContext] after every
// backend call through a nil-safe internal helper. Applications choose at
// wiring time what to do with those notifications:
//
//   - [LoggingObserver] writes them to the std/v1/logger zap wrapper
//   - [TracingObserver] records them as OpenTelemetry spans
//   - metrics.StoreObserver (std/v1/metrics) turns them into Prometheus series
//   - [MultiObserver] fans out to any combination of the above
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info})
//	obs := observability.MultiObserver{
//	    observability.NewLoggingObserver(log),
//	    observability.NewTracingObserver(nil),
//	}
//	client, err := elastic.NewElasticClient(elastic.Params{Config: cfg})
//	client = client.WithObserver(obs)
//
// Observers must tolerate concurrent calls; component packages do not
// serialize notifications.
package observability
