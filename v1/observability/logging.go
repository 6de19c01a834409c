package observability

// Logger is the minimal logging contract this package needs. It matches
// the std/v1/logger.Logger method set so the zap wrapper can be passed
// in directly.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// LoggingObserver writes every observed operation to a structured logger.
// Successful operations log at debug level, failed ones at error level.
type LoggingObserver struct {
	logger Logger
}

// NewLoggingObserver creates an observer backed by the given logger.
func NewLoggingObserver(logger Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// ObserveOperation implements Observer.
func (o *LoggingObserver) ObserveOperation(ctx OperationContext) {
	if o == nil || o.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"component":   ctx.Component,
		"operation":   ctx.Operation,
		"resource":    ctx.Resource,
		"duration_ms": ctx.Duration.Milliseconds(),
		"size":        ctx.Size,
	}
	if ctx.SubResource != "" {
		fields["sub_resource"] = ctx.SubResource
	}
	for k, v := range ctx.Metadata {
		fields[k] = v
	}

	if ctx.Error != nil {
		o.logger.Error("operation failed", ctx.Error, fields)
		return
	}
	o.logger.Debug("operation completed", nil, fields)
}
