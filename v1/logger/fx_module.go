package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule integrates the logger into an Fx-based application.
//
// The module:
//  1. Provides the NewLoggerClient factory to the dependency injection
//     container, making *Logger available to other components
//  2. Registers a shutdown hook that flushes buffered log entries
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(func() logger.Config { return loadLoggerConfig() }),
//	    // other modules...
//	)
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle flushes the Zap logger on application stop so
// no buffered entries are lost during shutdown.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync may fail on stderr; ignore it, the process is exiting.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
