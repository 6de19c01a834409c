// Package elastic provides a modular, dependency-injected vector store client
// backed by Elasticsearch.
//
// The elastic package implements the store-agnostic [vectorstore.Store]
// interface on top of an Elasticsearch cluster, covering index lifecycle,
// bulk upserts, approximate nearest-neighbor search, and per-record updates
// and deletes. It integrates with the fx dependency injection framework and
// supports builder-style configuration.
//
// # Core Features
//
//   - Managed client lifecycle with Fx integration
//   - Health check on client initialization
//   - Deployment flavor detection (standard vs serverless), cached per client
//   - Bidirectional metric mapping between generic metric names and
//     Elasticsearch similarity names, with a safe cosine default
//   - Index schema creation and validation for dense-vector search
//   - Bulk upserts that salvage partial failures
//   - knn search with candidate oversampling and metadata filtering
//   - Store-agnostic interface via vectorstore.Store
//
// # Deployment Flavors
//
// Elasticsearch is offered in two flavors that behave differently at the
// administrative edges: standard (self-managed or hosted clusters) and
// serverless. The client detects the flavor once from the cluster info
// endpoint and caches it for its lifetime. Detection drives two choices:
//
//   - index creation only sets explicit shard/replica topology on
//     standard deployments (serverless rejects the setting)
//   - record counting uses a flavor-specific primary method with a
//     single fallback
//
// Set Config.Deployment to skip detection when the flavor is known.
//
// # Basic Usage
//
//	import (
//	    "github.com/recallio/std/v1/elastic"
//	    "github.com/recallio/std/v1/vectorstore"
//	)
//
//	client, err := elastic.NewElasticClient(
//	    elastic.FromAddresses("http://localhost:9200"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create an index for 1536-dimensional cosine vectors
//	if err := client.CreateIndex(ctx, "documents", 1536, vectorstore.Cosine); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Upsert vectors with metadata
//	ids, err := client.Upsert(ctx, "documents",
//	    [][]float32{{0.12, 0.43, ...}},
//	    []map[string]any{{"title": "My Document"}},
//	    nil, // ids generated when omitted
//	)
//
//	// Similarity search
//	results, err := client.Query(ctx, vectorstore.QueryRequest{
//	    IndexName: "documents",
//	    Vector:    queryVector,
//	    TopK:      5,
//	})
//	for _, res := range results {
//	    fmt.Printf("ID=%s Score=%.4f\n", res.ID, res.Score)
//	}
//
// # Filtering
//
// Filters are defined in the [vectorstore] package as a map from metadata
// field names to conditions. Equality conditions (Equals, MemberOf,
// NotEquals) match against the keyword subfield for exact matching; range
// conditions (GreaterThan, GreaterOrEqual, LessThan, LessOrEqual) target
// the raw field. All conditions on a filter are combined with AND logic.
//
//	results, err := client.Query(ctx, vectorstore.QueryRequest{
//	    IndexName: "documents",
//	    Vector:    queryVector,
//	    TopK:      10,
//	    Filter: vectorstore.Filter{
//	        "category": vectorstore.Eq("science"),
//	        "year":     vectorstore.Gte(2020),
//	        "lang":     vectorstore.In("en", "de"),
//	    },
//	})
//
// Conditions the backend cannot express are skipped with a warning rather
// than failing the query.
//
// # FX Module Integration
//
// The package exposes an Fx module for automatic dependency injection:
//
//	app := fx.New(
//	    elastic.FXModule,
//	    fx.Provide(func() *elastic.Config {
//	        return elastic.FromAddresses("http://localhost:9200")
//	    }),
//	)
//	app.Run()
//
// # Error Handling
//
// Missing indexes and records are reported as [ErrNotFound]; schema
// conflicts as [ValidationError]; fully failed bulk writes as [BulkError].
// Use the Is* helpers to classify wrapped errors:
//
//	if elastic.IsNotFoundError(err) {
//	    // index or record does not exist
//	}
//
// # Thread Safety
//
// All exported methods are safe for concurrent use by multiple goroutines.
//
// # Package Layout
//
//	elastic/
//	├── client.go        // Client wrapper and lifecycle
//	├── configs.go       // Configuration struct and builders
//	├── deployment.go    // Flavor detection and caching
//	├── similarity.go    // Metric ↔ similarity mapping
//	├── indices.go       // Index lifecycle operations
//	├── operations.go    // Vector operations (upsert, query, update, delete)
//	├── filters.go       // vectorstore filter → bool query translation
//	├── errors.go        // Sentinel and structured error types
//	├── observer.go      // Operation observability hook
//	├── utils.go         // ID generation and oversampling helpers
//	└── fx_module.go     // Fx dependency injection module
//
// # Related Packages
//
//   - [vectorstore]: Store-agnostic types and interfaces
//   - [observability]: Operation observer contract
//   - [metrics]: Prometheus-backed observer implementation
package elastic
