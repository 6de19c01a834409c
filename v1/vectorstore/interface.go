package vectorstore

import "context"

// Store is the common interface for all vector stores.
// It provides a store-agnostic abstraction for persisting and retrieving
// embeddings, allowing the memory subsystem to switch between backends
// (Elasticsearch, Qdrant, pgVector, ...) without changing application code.
//
// Example usage:
//
//	func NewRecallService(store vectorstore.Store) *RecallService {
//	    return &RecallService{store: store}
//	}
//
//	// Works with any implementation:
//	// - elastic.NewElasticClient(...)
type Store interface {
	// CreateIndex creates an index for vectors of the given dimension and
	// similarity metric. If the index already exists its schema is validated
	// against the requested dimension and metric; a mismatch is an error,
	// never a silent overwrite.
	CreateIndex(ctx context.Context, name string, dimension int, metric Metric) error

	// Upsert writes vectors paired positionally with payloads and ids.
	// Payloads may be nil or shorter than vectors (missing entries default to
	// an empty map). IDs may be nil; missing ids are generated by the store.
	// Returns the ids that were actually written. A partially failed batch is
	// not an error as long as at least one record succeeded.
	Upsert(ctx context.Context, index string, vectors [][]float32, payloads []map[string]any, ids []string) ([]string, error)

	// Query performs a similarity search and returns results ordered by
	// descending similarity under the index's configured metric.
	Query(ctx context.Context, req QueryRequest) ([]QueryResult, error)

	// ListIndexes returns the names of all user indexes, excluding the
	// backend's reserved/system namespace.
	ListIndexes(ctx context.Context) ([]string, error)

	// DescribeIndex returns the dimension, metric and (possibly approximate)
	// record count of an index.
	DescribeIndex(ctx context.Context, name string) (*IndexStats, error)

	// DeleteIndex removes an index. A missing index is an error, not a no-op.
	DeleteIndex(ctx context.Context, name string) error

	// UpdateVector partially updates a single record. Fields absent from the
	// patch are left untouched; an empty patch is a deliberate no-op.
	UpdateVector(ctx context.Context, index, id string, patch VectorPatch) error

	// DeleteVector removes a single record by id. A missing record is an error.
	DeleteVector(ctx context.Context, index, id string) error
}
