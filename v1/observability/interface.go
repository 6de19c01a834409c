package observability

import "time"

// OperationContext describes a single backend operation for observation.
// It is emitted by component packages (elastic, ...) after every call so
// that metrics, tracing and logging can be attached without coupling the
// component to a specific telemetry stack.
type OperationContext struct {
	// Component is the emitting package, e.g. "elastic".
	Component string

	// Operation is the logical operation name, e.g. "upsert", "query".
	Operation string

	// Resource is the primary target, e.g. the index name.
	Resource string

	// SubResource is additional context, e.g. a record id.
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the operation error, nil on success.
	Error error

	// Size is an operation-specific payload size (records, bytes, results).
	Size int64

	// Metadata carries extra key/value context.
	Metadata map[string]interface{}
}

// Observer receives operation notifications from component packages.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// MultiObserver fans a notification out to several observers.
type MultiObserver []Observer

// ObserveOperation implements Observer.
func (m MultiObserver) ObserveOperation(ctx OperationContext) {
	for _, o := range m {
		if o != nil {
			o.ObserveOperation(ctx)
		}
	}
}

// NoopObserver discards all notifications. Useful as a default.
type NoopObserver struct{}

// ObserveOperation implements Observer.
func (NoopObserver) ObserveOperation(OperationContext) {}
