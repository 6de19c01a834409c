package metrics

import (
	"github.com/recallio/std/v1/observability"
)

// StoreObserver turns vector-store operation notifications into
// Prometheus series on the owning Metrics registry. Attach it to a
// component via its WithObserver hook or the Fx optional dependency.
type StoreObserver struct {
	metrics *Metrics
}

// NewStoreObserver creates an observer backed by the given Metrics.
func NewStoreObserver(m *Metrics) *StoreObserver {
	return &StoreObserver{metrics: m}
}

// ObserveOperation implements observability.Observer.
func (o *StoreObserver) ObserveOperation(ctx observability.OperationContext) {
	if o == nil || o.metrics == nil {
		return
	}

	status := "success"
	if ctx.Error != nil {
		status = "error"
	}

	o.metrics.storeOpsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.metrics.storeOpDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
	if ctx.Size > 0 {
		o.metrics.storeOpSize.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))
	}
}
