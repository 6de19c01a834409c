package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/recallio/std/v1/vectorstore"
)

// maxLoggedBulkFailures caps how many per-record failures a partial bulk
// result logs before truncating.
const maxLoggedBulkFailures = 5

// ── Vector Operations ─────────────────────────────────────────────────────────

// Upsert writes vectors with their payloads in a single bulk request and
// returns the identifiers of the records that were accepted.
//
// Vectors, payloads and ids are paired positionally; payloads and ids may
// be nil or shorter than vectors, in which case the missing entries get an
// empty payload and a generated identifier. A partially failed bulk
// request is not an error: the failures are logged and the surviving ids
// are returned. Only a bulk where every record failed returns a BulkError.
func (c *ElasticClient) Upsert(ctx context.Context, index string, vectors [][]float32, payloads []map[string]any, ids []string) ([]string, error) {
	start := time.Now()
	accepted, err := c.upsert(ctx, index, vectors, payloads, ids)
	c.observeOperation("upsert", index, "", time.Since(start), err, int64(len(vectors)), nil)
	return accepted, err
}

func (c *ElasticClient) upsert(ctx context.Context, index string, vectors [][]float32, payloads []map[string]any, ids []string) ([]string, error) {
	if index == "" {
		return nil, fmt.Errorf("index name cannot be empty")
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("vectors cannot be empty")
	}

	requested := make([]string, len(vectors))
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, vector := range vectors {
		id := ""
		if i < len(ids) {
			id = ids[i]
		}
		if id == "" {
			id = newRecordID()
		}
		requested[i] = id

		var payload map[string]any
		if i < len(payloads) {
			payload = payloads[i]
		}
		if payload == nil {
			payload = map[string]any{}
		}

		meta := map[string]any{"index": map[string]any{"_id": id}}
		if err := enc.Encode(meta); err != nil {
			return nil, fmt.Errorf("[Elastic] failed to encode bulk action for '%s': %w", id, err)
		}
		doc := map[string]any{
			vectorField:   vector,
			metadataField: payload,
		}
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("[Elastic] failed to encode bulk document for '%s': %w", id, err)
		}
	}

	res, err := c.api.Bulk(&buf,
		c.api.Bulk.WithIndex(index),
		c.api.Bulk.WithRefresh("true"),
		c.api.Bulk.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("[Elastic] bulk upsert to '%s' failed: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("[Elastic] bulk upsert to '%s' failed: %s", index, res.String())
	}

	var bulk bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		return nil, fmt.Errorf("[Elastic] failed to decode bulk response: %w", err)
	}

	if !bulk.Errors {
		return requested, nil
	}

	accepted, failed := bulk.partition(requested)
	if len(accepted) == 0 {
		return nil, &BulkError{Index: index, Failed: failed}
	}

	logged := failed
	if len(logged) > maxLoggedBulkFailures {
		logged = logged[:maxLoggedBulkFailures]
	}
	c.logWarn("bulk upsert partially failed", nil, map[string]interface{}{
		"index":    index,
		"accepted": len(accepted),
		"failed":   len(failed),
		"sample":   fmt.Sprintf("%v", logged),
	})
	return accepted, nil
}

type bulkResponse struct {
	Errors bool                        `json:"errors"`
	Items  []map[string]bulkActionItem `json:"items"`
}

type bulkActionItem struct {
	ID     string `json:"_id"`
	Status int    `json:"status"`
	Error  *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

// partition splits the requested ids into accepted and failed based on
// the per-item results, preserving request order.
func (r *bulkResponse) partition(requested []string) ([]string, []BulkItemError) {
	failedByID := make(map[string]BulkItemError)
	for _, item := range r.Items {
		for _, action := range item {
			if action.Error == nil {
				continue
			}
			failedByID[action.ID] = BulkItemError{
				ID:     action.ID,
				Reason: fmt.Sprintf("%s: %s", action.Error.Type, action.Error.Reason),
			}
		}
	}

	accepted := make([]string, 0, len(requested))
	failed := make([]BulkItemError, 0, len(failedByID))
	for _, id := range requested {
		if item, ok := failedByID[id]; ok {
			failed = append(failed, item)
			continue
		}
		accepted = append(accepted, id)
	}
	return accepted, failed
}

// Query runs an approximate nearest-neighbor search and returns up to
// TopK results ordered by descending relevance.
//
// The candidate pool is oversampled relative to TopK to keep recall high
// on multi-shard indexes. Vectors are excluded from the results unless
// the request asks for them.
func (c *ElasticClient) Query(ctx context.Context, req vectorstore.QueryRequest) ([]vectorstore.QueryResult, error) {
	start := time.Now()
	results, err := c.query(ctx, req)
	c.observeOperation("query", req.IndexName, "", time.Since(start), err, int64(len(results)), nil)
	return results, err
}

func (c *ElasticClient) query(ctx context.Context, req vectorstore.QueryRequest) ([]vectorstore.QueryResult, error) {
	if req.IndexName == "" {
		return nil, fmt.Errorf("index name cannot be empty")
	}
	if len(req.Vector) == 0 {
		return nil, fmt.Errorf("query vector cannot be empty")
	}
	if req.TopK <= 0 {
		return nil, fmt.Errorf("topK must be greater than 0")
	}

	knn := map[string]any{
		"field":          vectorField,
		"query_vector":   req.Vector,
		"k":              req.TopK,
		"num_candidates": oversample(req.TopK),
	}
	if filter := c.buildFilter(req.Filter); filter != nil {
		knn["filter"] = filter
	}

	var source any = map[string]any{"excludes": []string{vectorField}}
	if req.IncludeVector {
		source = true
	}

	body, err := json.Marshal(map[string]any{
		"knn":     knn,
		"size":    req.TopK,
		"_source": source,
	})
	if err != nil {
		return nil, fmt.Errorf("[Elastic] failed to encode query: %w", err)
	}

	res, err := c.api.Search(
		c.api.Search.WithIndex(req.IndexName),
		c.api.Search.WithBody(bytes.NewReader(body)),
		c.api.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("[Elastic] query on '%s' failed: %w", req.IndexName, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("[Elastic] query on '%s': %w", req.IndexName, ErrNotFound)
	}
	if res.IsError() {
		return nil, fmt.Errorf("[Elastic] query on '%s' failed: %s", req.IndexName, res.String())
	}

	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("[Elastic] failed to decode query response: %w", err)
	}

	results := make([]vectorstore.QueryResult, 0, len(out.Hits.Hits))
	for _, hit := range out.Hits.Hits {
		result := vectorstore.QueryResult{
			ID:      hit.ID,
			Score:   hit.Score,
			Payload: hit.Source.Metadata,
		}
		if req.IncludeVector {
			result.Vector = hit.Source.Vector
		}
		results = append(results, result)
	}
	return results, nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string  `json:"_id"`
			Score  float32 `json:"_score"`
			Source struct {
				Vector   []float32      `json:"vector"`
				Metadata map[string]any `json:"metadata"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// UpdateVector partially updates a single record. Only the fields set in
// the patch are touched; an empty patch is a logged no-op.
func (c *ElasticClient) UpdateVector(ctx context.Context, index, id string, patch vectorstore.VectorPatch) error {
	start := time.Now()
	err := c.updateVector(ctx, index, id, patch)
	c.observeOperation("update_vector", index, id, time.Since(start), err, 0, nil)
	return err
}

func (c *ElasticClient) updateVector(ctx context.Context, index, id string, patch vectorstore.VectorPatch) error {
	if index == "" {
		return fmt.Errorf("index name cannot be empty")
	}
	if id == "" {
		return fmt.Errorf("record id cannot be empty")
	}
	if patch.IsEmpty() {
		c.logDebug("empty patch, nothing to update", map[string]interface{}{
			"index": index,
			"id":    id,
		})
		return nil
	}

	doc := map[string]any{}
	if patch.Vector != nil {
		doc[vectorField] = patch.Vector
	}
	if patch.Payload != nil {
		doc[metadataField] = patch.Payload
	}

	body, err := json.Marshal(map[string]any{"doc": doc})
	if err != nil {
		return fmt.Errorf("[Elastic] failed to encode update for '%s': %w", id, err)
	}

	res, err := c.api.Update(index, id, bytes.NewReader(body),
		c.api.Update.WithRefresh("true"),
		c.api.Update.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("[Elastic] update of '%s' in '%s' failed: %w", id, index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("[Elastic] update of '%s' in '%s': %w", id, index, ErrNotFound)
	}
	if res.IsError() {
		return fmt.Errorf("[Elastic] update of '%s' in '%s' failed: %s", id, index, res.String())
	}
	return nil
}

// DeleteVector removes a single record. A missing record is surfaced as
// ErrNotFound.
func (c *ElasticClient) DeleteVector(ctx context.Context, index, id string) error {
	start := time.Now()
	err := c.deleteVector(ctx, index, id)
	c.observeOperation("delete_vector", index, id, time.Since(start), err, 0, nil)
	return err
}

func (c *ElasticClient) deleteVector(ctx context.Context, index, id string) error {
	if index == "" {
		return fmt.Errorf("index name cannot be empty")
	}
	if id == "" {
		return fmt.Errorf("record id cannot be empty")
	}

	res, err := c.api.Delete(index, id,
		c.api.Delete.WithRefresh("true"),
		c.api.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("[Elastic] delete of '%s' from '%s' failed: %w", id, index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("[Elastic] delete of '%s' from '%s': %w", id, index, ErrNotFound)
	}
	if res.IsError() {
		return fmt.Errorf("[Elastic] delete of '%s' from '%s' failed: %s", id, index, res.String())
	}
	return nil
}
