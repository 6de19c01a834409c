package elastic

import (
	"time"

	"github.com/recallio/std/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
// This is used internally to track store operations for metrics and tracing.
//
// Notes:
//   - resource: the index being operated on
//   - subResource: additional context like the record id
func (c *ElasticClient) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "elastic",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
