package vectorstore

import "strings"

// Metric is the similarity metric used to rank vectors by closeness.
type Metric string

const (
	// Cosine similarity (angle between vectors, magnitude-invariant).
	Cosine Metric = "cosine"

	// Euclidean distance (L2 norm).
	Euclidean Metric = "euclidean"

	// DotProduct similarity (inner product, magnitude-sensitive).
	DotProduct Metric = "dotproduct"
)

// ParseMetric normalizes a metric name. Unknown names return false.
func ParseMetric(s string) (Metric, bool) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case Cosine:
		return Cosine, true
	case Euclidean:
		return Euclidean, true
	case DotProduct:
		return DotProduct, true
	}
	return "", false
}

// QueryRequest represents a single similarity search.
type QueryRequest struct {
	// IndexName is the target index to search in
	IndexName string `json:"indexName"`

	// Vector is the query embedding to find similar vectors for
	Vector []float32 `json:"vector"`

	// TopK is the maximum number of results to return
	TopK int `json:"topK"`

	// Filter is optional metadata filtering; leaves are conjoined (AND)
	Filter Filter `json:"filter,omitempty"`

	// IncludeVector requests the stored embedding in each result.
	// Off by default to keep response payloads small.
	IncludeVector bool `json:"includeVector,omitempty"`
}

// QueryResult represents a single search result with its similarity score.
// This is store-agnostic; payload is converted to map[string]any.
type QueryResult struct {
	// ID is the unique identifier of the matched record
	ID string `json:"id"`

	// Score is the similarity score (higher = more similar)
	Score float32 `json:"score"`

	// Payload contains the metadata stored with the vector
	Payload map[string]any `json:"payload,omitempty"`

	// Vector is the stored embedding (only populated if requested)
	Vector []float32 `json:"vector,omitempty"`
}

// IndexStats contains schema and size information about an index.
type IndexStats struct {
	// Name is the unique identifier of the index
	Name string `json:"name"`

	// Dimension is the length of vectors stored in this index
	Dimension int `json:"dimension"`

	// Metric is the similarity metric the index was created with
	Metric Metric `json:"metric"`

	// Count is the number of stored records. Depending on the backend
	// code path this may be approximate, but it is never negative.
	Count int64 `json:"count"`
}

// VectorPatch is a partial update for a single record. Nil fields are
// left untouched; a patch with both fields nil is a deliberate no-op.
type VectorPatch struct {
	Vector  []float32      `json:"vector,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// IsEmpty reports whether the patch carries no changes.
func (p VectorPatch) IsEmpty() bool {
	return p.Vector == nil && p.Payload == nil
}
