package elastic

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/recallio/std/v1/observability"
)

// FXModule is an fx.Module that provides and configures the Elasticsearch
// vector store client. This module registers the client with the Fx
// dependency injection framework, making it available to other components
// in the application.
//
// The module:
// 1. Provides the client factory function
// 2. Invokes the lifecycle registration to manage the client's lifecycle
//
// Usage:
//
//	app := fx.New(
//	    elastic.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("elastic",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterElasticLifecycle),
)

// ElasticParams groups the dependencies needed to create an Elasticsearch client
type ElasticParams struct {
	fx.In

	Config   *Config
	Logger   Logger                 `optional:"true"` // Optional logger from std/v1/logger
	Observer observability.Observer `optional:"true"` // Optional observer from std/v1/metrics or std/v1/observability
}

// NewClientWithDI creates a new Elasticsearch client using dependency injection.
// This function is designed to be used with Uber's fx dependency injection
// framework where dependencies are automatically provided via the
// ElasticParams struct.
//
// Example usage with fx:
//
//	app := fx.New(
//	    elastic.FXModule,
//	    logger.FXModule, // Optional: provides logger
//	    fx.Provide(
//	        func() *elastic.Config {
//	            return elastic.FromAddresses("http://localhost:9200")
//	        },
//	    ),
//	)
//
// Under the hood, this function injects the optional logger before delegating
// to the standard NewElasticClient function, then attaches the optional
// observer.
func NewClientWithDI(params ElasticParams) (*ElasticClient, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}

	client, err := NewElasticClient(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		client = client.WithObserver(params.Observer)
	}
	return client, nil
}

// ElasticLifecycleParams groups the dependencies needed for lifecycle management
type ElasticLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *ElasticClient
}

// RegisterElasticLifecycle registers the client with the fx lifecycle system.
//
// The function:
//  1. On application start: Pings the cluster to ensure the connection is healthy
//  2. On application stop: Closes the client
func RegisterElasticLifecycle(params ElasticLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Client.Ping(ctx); err != nil {
				log.Printf("WARN: Failed to ping Elasticsearch on startup: %v", err)
				return err
			}
			log.Println("INFO: Elasticsearch client started and healthy")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: Shutting down Elasticsearch client")
			return params.Client.Close()
		},
	})
}
