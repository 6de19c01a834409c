package elastic

import (
	"net/http"
)

// Config holds connection and behavior settings for the Elasticsearch client.
//
// It is intentionally minimal, readable, and easy to override from environment
// variables, YAML, or programmatically via helper methods.
//
// Example (programmatic):
//
//	cfg := elastic.DefaultConfig()
//	cfg.Addresses = []string{"https://search.internal:9200"}
//	cfg.APIKey = os.Getenv("ELASTICSEARCH_API_KEY")
//
// Example (builder style):
//
//	cfg := elastic.FromAddresses("https://search.internal:9200").
//	    WithAPIKey(os.Getenv("ELASTICSEARCH_API_KEY")).
//	    WithDeployment(elastic.FlavorServerless)
type Config struct {
	// Addresses of the cluster nodes, e.g. "http://localhost:9200".
	Addresses []string `yaml:"addresses" env:"ELASTICSEARCH_ADDRESSES"`

	// Username for basic authentication.
	Username string `yaml:"username" env:"ELASTICSEARCH_USERNAME"`

	// Password for basic authentication.
	Password string `yaml:"password" env:"ELASTICSEARCH_PASSWORD"`

	// APIKey for token authentication. Takes precedence over basic auth.
	APIKey string `yaml:"api_key" env:"ELASTICSEARCH_API_KEY"`

	// CloudID for Elastic Cloud deployments; replaces Addresses when set.
	CloudID string `yaml:"cloud_id" env:"ELASTICSEARCH_CLOUD_ID"`

	// Deployment pins the cluster flavor explicitly. When left at
	// FlavorUnknown the flavor is detected with one cluster-info call.
	Deployment Flavor `yaml:"deployment" env:"ELASTICSEARCH_DEPLOYMENT"`

	// TrackTotalHitsLimit caps the accuracy of the total-hit count used
	// by the fallback count strategy. Defaults to 10000.
	TrackTotalHitsLimit int `yaml:"track_total_hits_limit" env:"ELASTICSEARCH_TRACK_TOTAL_HITS_LIMIT"`

	// Transport overrides the HTTP transport. Mainly a test seam.
	Transport http.RoundTripper `yaml:"-"`

	// Logger is an optional logger from std/v1/logger.
	Logger Logger `yaml:"-"`
}

// Logger is an interface that matches the std/v1/logger.Logger.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// DefaultTrackTotalHitsLimit is the backend's default accuracy ceiling
// for total-hit counting.
const DefaultTrackTotalHitsLimit = 10000

// DefaultConfig provides sensible defaults for a local cluster.
func DefaultConfig() *Config {
	return &Config{
		Addresses:           []string{"http://localhost:9200"},
		TrackTotalHitsLimit: DefaultTrackTotalHitsLimit,
	}
}

// FromAddresses returns a default config pre-filled with specific endpoints.
func FromAddresses(addresses ...string) *Config {
	cfg := DefaultConfig()
	cfg.Addresses = addresses
	return cfg
}

// Builder-style helpers (optional, ergonomic)

func (c *Config) WithBasicAuth(username, password string) *Config {
	c.Username = username
	c.Password = password
	return c
}

func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

func (c *Config) WithCloudID(id string) *Config {
	c.CloudID = id
	return c
}

func (c *Config) WithDeployment(flavor Flavor) *Config {
	c.Deployment = flavor
	return c
}

func (c *Config) WithTrackTotalHitsLimit(limit int) *Config {
	c.TrackTotalHitsLimit = limit
	return c
}

func (c *Config) WithTransport(rt http.RoundTripper) *Config {
	c.Transport = rt
	return c
}

func (c *Config) WithLogger(logger Logger) *Config {
	c.Logger = logger
	return c
}
