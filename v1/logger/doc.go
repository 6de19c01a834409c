// Package logger provides a structured JSON logger built on Uber's Zap.
//
// # Components
//
//   - Logger struct: wrapper exposing Debug/Info/Warn/Error/Fatal with a
//     msg/err/fields signature shared across the std packages
//   - Config: level and service-name settings
//   - FXModule: provides *Logger for dependency injection
//
// # Usage
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Debug,
//	    ServiceName: "memory-recall",
//	})
//	log.Info("vector store ready", nil, map[string]interface{}{
//	    "index": "memories",
//	})
//
// Component packages in this library accept the logger through a small
// local interface (see elastic.Logger), so any implementation with the
// same method set can be substituted in tests.
//
// All methods are safe for concurrent use.
package logger
