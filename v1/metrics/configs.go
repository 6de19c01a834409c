package metrics

// Config holds settings for the Prometheus metrics server.
type Config struct {
	// Address is the network address where the metrics HTTP server
	// listens, e.g. ":9090" or "127.0.0.1:9100".
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// ServiceName is applied as a constant "service" label to every
	// metric emitted through this registry.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// EnableDefaultCollectors controls whether the built-in Go runtime,
	// process and build-info collectors are registered automatically.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_ENABLE_DEFAULT_COLLECTORS"`
}

// DefaultConfig provides sensible defaults for most services.
func DefaultConfig() Config {
	return Config{
		Address:                 ":9090",
		EnableDefaultCollectors: true,
	}
}
