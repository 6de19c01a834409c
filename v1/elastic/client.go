package elastic

import (
	"context"
	"fmt"
	"sync"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/recallio/std/v1/observability"
	"github.com/recallio/std/v1/vectorstore"
)

//
// ──────────────────────────────────────────────────────────────
//   ELASTICSEARCH CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file defines a thin wrapper around the official Elasticsearch Go
// client, providing the vector-store operations consumed by the memory
// subsystem: index lifecycle, bulk upserts, k-NN similarity search, and
// single-record updates and deletes.
//
// The goal is to abstract away low-level request plumbing while keeping
// full control over the index schema and query DSL the memory subsystem
// depends on.
//
// Responsibilities:
//   • Establish and validate connectivity with the cluster.
//   • Detect the deployment flavor (standard vs serverless) once.
//   • Implement the vectorstore.Store contract.
//   • Offer a safe API suitable for Fx dependency injection.
//

// ElasticClient wraps the official Elasticsearch Go client and implements
// the vectorstore.Store contract on top of it.
type ElasticClient struct {
	api      *elasticsearch.Client
	cfg      *Config
	observer observability.Observer

	// flavor is computed at most once per client instance.
	detectOnce sync.Once
	flavor     Flavor
}

// ElasticClient satisfies the store contract.
var _ vectorstore.Store = (*ElasticClient)(nil)

const healthCheckTimeout = 3 * time.Second

// NewElasticClient constructs a client and validates connectivity with an
// immediate health check, failing fast if the cluster is unreachable.
//
// Example:
//
//	client, err := elastic.NewElasticClient(
//	    elastic.FromAddresses("http://localhost:9200"),
//	)
func NewElasticClient(cfg *Config) (*ElasticClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.TrackTotalHitsLimit <= 0 {
		cfg.TrackTotalHitsLimit = DefaultTrackTotalHitsLimit
	}

	api, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		APIKey:    cfg.APIKey,
		CloudID:   cfg.CloudID,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("[Elastic] failed to initialize client: %w", err)
	}

	c := &ElasticClient{
		api: api,
		cfg: cfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		return nil, err
	}

	c.logInfo("connected to cluster", map[string]interface{}{
		"addresses": cfg.Addresses,
	})
	return c, nil
}

// Ping verifies the availability of the cluster with a cluster-info call.
// Lightweight and fast; used during startup and readiness probes.
func (c *ElasticClient) Ping(ctx context.Context) error {
	if c.api == nil {
		return fmt.Errorf("[Elastic] client not initialized")
	}

	res, err := c.api.Info(c.api.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("[Elastic] health check failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("[Elastic] health check failed: %s", res.Status())
	}
	return nil
}

// Client returns the underlying Elasticsearch SDK client. Useful for
// direct access to low-level operations.
func (c *ElasticClient) Client() *elasticsearch.Client {
	return c.api
}

// WithObserver attaches an observer for operation-level observability.
// The observer is notified after every backend call. When using FX, the
// observer is injected automatically via NewClientWithDI.
func (c *ElasticClient) WithObserver(observer observability.Observer) *ElasticClient {
	c.observer = observer
	return c
}

// Close releases client resources. The official client keeps no
// persistent connections beyond the HTTP transport's pool, so this is a
// no-op kept for lifecycle symmetry.
func (c *ElasticClient) Close() error {
	return nil
}

// ── logging helpers (nil-safe) ──────────────────────────────────────────────

func (c *ElasticClient) logDebug(msg string, fields map[string]interface{}) {
	if c.cfg != nil && c.cfg.Logger != nil {
		c.cfg.Logger.Debug(msg, nil, fields)
	}
}

func (c *ElasticClient) logInfo(msg string, fields map[string]interface{}) {
	if c.cfg != nil && c.cfg.Logger != nil {
		c.cfg.Logger.Info(msg, nil, fields)
	}
}

func (c *ElasticClient) logWarn(msg string, err error, fields map[string]interface{}) {
	if c.cfg != nil && c.cfg.Logger != nil {
		c.cfg.Logger.Warn(msg, err, fields)
	}
}
