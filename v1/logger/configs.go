package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config holds settings for the zap-based logger.
type Config struct {
	// Level is the minimum level that gets emitted. Defaults to info.
	Level string `yaml:"level" env:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every log entry as a default field.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}
