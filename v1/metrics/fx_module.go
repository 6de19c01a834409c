package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"

	"go.uber.org/fx"

	"github.com/recallio/std/v1/observability"
)

// FXModule integrates the Prometheus metrics server into an Fx-based
// application.
//
// The module:
//  1. Provides the NewMetrics factory and the StoreObserver so other
//     components can consume operation metrics via injection
//  2. Invokes RegisterMetricsLifecycle to manage startup and graceful
//     shutdown of the metrics HTTP server
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{Address: ":9090", ServiceName: "memory-recall"}
//	    }),
//	    // other modules...
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		// Expose the observer under the interface the component
		// packages consume.
		fx.Annotate(NewStoreObserver, fx.As(new(observability.Observer))),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the metrics HTTP server on application
// start and shuts it down gracefully on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("WARN: metrics server stopped: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return m.Server.Shutdown(ctx)
		},
	})
}
