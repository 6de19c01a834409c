// Package vectorstore provides a store-agnostic abstraction for vector
// similarity search.
//
// # Overview
//
// This package defines a common interface [Store] that can be implemented
// by different vector database adapters (Elasticsearch, Qdrant, pgVector, ...),
// allowing the conversational memory subsystem to switch between backends
// without changing application code.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                   Memory Subsystem                          │
//	│   (uses vectorstore.Store - no backend-specific imports)    │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	                           ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                   vectorstore.Store                         │
//	│        (common interface + backend-agnostic types)          │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	        ┌──────────────────┼──────────────────┐
//	        ▼                  ▼                  ▼
//	┌────────────────┐  ┌───────────────┐  ┌───────────────┐
//	│ elastic.Client │  │qdrant.Adapter │  │ (future ...)  │
//	│  (implements)  │  │   (future)    │  │               │
//	└────────────────┘  └───────────────┘  └───────────────┘
//
// # Usage
//
// In your application, depend only on the vectorstore interface:
//
//	import "github.com/recallio/std/v1/vectorstore"
//
//	type RecallService struct {
//	    store vectorstore.Store
//	}
//
//	func (s *RecallService) Recall(ctx context.Context, embedding []float32) ([]vectorstore.QueryResult, error) {
//	    return s.store.Query(ctx, vectorstore.QueryRequest{
//	        IndexName: "memories",
//	        Vector:    embedding,
//	        TopK:      10,
//	        Filter: vectorstore.Filter{
//	            "user_id": vectorstore.Eq("u-123"),
//	        },
//	    })
//	}
//
// # Filter Conditions
//
// The package provides store-agnostic filter conditions, all implicitly
// conjoined (AND) at the top level:
//
//	| Type           | Description        | SQL Equivalent              |
//	|----------------|--------------------|-----------------------------|
//	| Equals         | Exact value match  | WHERE field = value         |
//	| MemberOf       | Value in set       | WHERE field IN (...)        |
//	| NotEquals      | Value differs      | WHERE field <> value        |
//	| GreaterThan    | Exclusive lower    | WHERE field > value         |
//	| GreaterOrEqual | Inclusive lower    | WHERE field >= value        |
//	| LessThan       | Exclusive upper    | WHERE field < value         |
//	| LessOrEqual    | Inclusive upper    | WHERE field <= value        |
//
// Use the constructors for cleaner code:
//
//	vectorstore.Filter{
//	    "status": vectorstore.In("open", "triaged"),
//	    "count":  vectorstore.Gte(5),
//	}
//
// Loosely-typed input (decoded JSON) is converted at the boundary with
// [ParseFilter]; unrecognized operators survive as [Unsupported] so a
// non-matching filter never takes down a query path.
package vectorstore
