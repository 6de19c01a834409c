package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/recallio/std/v1/vectorstore"
)

// vectorField is the dense-vector mapping field every index managed by
// this adapter must carry.
const vectorField = "vector"

// reservedIndexPrefix marks the backend's system/hidden namespace.
const reservedIndexPrefix = "."

// ── Index Lifecycle ──────────────────────────────────────────────────────────

// CreateIndex creates an index for vectors of the given dimension and
// similarity metric.
//
// If the index already exists, its mapping is validated against the
// requested dimension and metric: a match is a no-op, a mismatch is a
// ValidationError. The schema is never migrated silently.
//
// Only standard deployments receive an explicit single-shard,
// zero-replica storage layout; serverless deployments manage topology
// themselves and reject the setting.
func (c *ElasticClient) CreateIndex(ctx context.Context, name string, dimension int, metric vectorstore.Metric) error {
	start := time.Now()
	err := c.createIndex(ctx, name, dimension, metric)
	c.observeOperation("create_index", name, "", time.Since(start), err, 0, nil)
	return err
}

func (c *ElasticClient) createIndex(ctx context.Context, name string, dimension int, metric vectorstore.Metric) error {
	if name == "" {
		return fmt.Errorf("index name cannot be empty")
	}
	if dimension <= 0 {
		return fmt.Errorf("dimension must be greater than 0")
	}

	exists, err := c.indexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("[Elastic] failed to check index '%s': %w", name, err)
	}

	if exists {
		return c.validateExistingIndex(ctx, name, dimension, metric)
	}

	similarity := c.resolveSimilarity(metric)
	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				vectorField: map[string]any{
					"type":       "dense_vector",
					"dims":       dimension,
					"index":      true,
					"similarity": similarity,
				},
				metadataField: map[string]any{
					"type":    "object",
					"dynamic": true,
				},
			},
		},
	}
	if c.Flavor(ctx) == FlavorStandard {
		// Serverless rejects explicit topology settings.
		body["settings"] = map[string]any{
			"index": map[string]any{
				"number_of_shards":   1,
				"number_of_replicas": 0,
			},
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("[Elastic] failed to encode mapping for index '%s': %w", name, err)
	}

	res, err := c.api.Indices.Create(name,
		c.api.Indices.Create.WithBody(bytes.NewReader(payload)),
		c.api.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("[Elastic] failed to create index '%s': %w", name, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("[Elastic] failed to create index '%s': %s", name, res.String())
	}

	c.logInfo("created index", map[string]interface{}{
		"index":      name,
		"dimension":  dimension,
		"similarity": similarity,
	})
	return nil
}

// validateExistingIndex compares an existing index's schema against the
// requested dimension and metric.
func (c *ElasticClient) validateExistingIndex(ctx context.Context, name string, dimension int, metric vectorstore.Metric) error {
	dims, similarity, err := c.readVectorMapping(ctx, name)
	if err != nil {
		return fmt.Errorf("[Elastic] failed to validate index '%s': %w", name, err)
	}

	requested := c.resolveSimilarity(metric)
	if dims != dimension || similarity != requested {
		return &ValidationError{
			Index: name,
			Detail: fmt.Sprintf("exists with dimension=%d similarity=%s, requested dimension=%d similarity=%s",
				dims, similarity, dimension, requested),
		}
	}

	c.logDebug("index already exists with matching schema", map[string]interface{}{
		"index": name,
	})
	return nil
}

// DescribeIndex reads the index mapping and returns its dimension,
// generic metric and record count. An index without a dense-vector field
// named "vector" (or without an explicit dimension) is not configured
// for vector search and yields a ValidationError.
//
// The count strategy is flavor-specific with a single fallback each:
// serverless uses the count API, falling back to a zero-result search
// whose total-hit accuracy is capped at the configured ceiling; standard
// uses the statistics API, falling back to the count API.
func (c *ElasticClient) DescribeIndex(ctx context.Context, name string) (*vectorstore.IndexStats, error) {
	start := time.Now()
	stats, err := c.describeIndex(ctx, name)
	c.observeOperation("describe_index", name, "", time.Since(start), err, 0, nil)
	return stats, err
}

func (c *ElasticClient) describeIndex(ctx context.Context, name string) (*vectorstore.IndexStats, error) {
	if name == "" {
		return nil, fmt.Errorf("index name cannot be empty")
	}

	dims, similarity, err := c.readVectorMapping(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[Elastic] failed to describe index '%s': %w", name, err)
	}

	count, err := c.countRecords(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[Elastic] failed to count index '%s': %w", name, err)
	}

	return &vectorstore.IndexStats{
		Name:      name,
		Dimension: dims,
		Metric:    c.resolveMetric(similarity),
		Count:     count,
	}, nil
}

// DeleteIndex removes an index unconditionally. A missing index is
// surfaced as ErrNotFound, not treated as a no-op.
func (c *ElasticClient) DeleteIndex(ctx context.Context, name string) error {
	start := time.Now()
	err := c.deleteIndex(ctx, name)
	c.observeOperation("delete_index", name, "", time.Since(start), err, 0, nil)
	return err
}

func (c *ElasticClient) deleteIndex(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("index name cannot be empty")
	}

	res, err := c.api.Indices.Delete([]string{name},
		c.api.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("[Elastic] failed to delete index '%s': %w", name, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("[Elastic] delete index '%s': %w", name, ErrNotFound)
	}
	if res.IsError() {
		return fmt.Errorf("[Elastic] failed to delete index '%s': %s", name, res.String())
	}

	c.logInfo("deleted index", map[string]interface{}{"index": name})
	return nil
}

// ListIndexes returns the names of all indexes except those in the
// reserved system namespace (dot-prefixed).
func (c *ElasticClient) ListIndexes(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := c.listIndexes(ctx)
	c.observeOperation("list_indexes", "", "", time.Since(start), err, int64(len(names)), nil)
	return names, err
}

func (c *ElasticClient) listIndexes(ctx context.Context) ([]string, error) {
	res, err := c.api.Cat.Indices(
		c.api.Cat.Indices.WithFormat("json"),
		c.api.Cat.Indices.WithH("index"),
		c.api.Cat.Indices.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("[Elastic] failed to list indexes: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("[Elastic] failed to list indexes: %s", res.String())
	}

	var entries []struct {
		Index string `json:"index"`
	}
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("[Elastic] failed to decode index catalog: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Index, reservedIndexPrefix) {
			continue
		}
		names = append(names, entry.Index)
	}
	return names, nil
}

// ── mapping and count plumbing ──────────────────────────────────────────────

func (c *ElasticClient) indexExists(ctx context.Context, name string) (bool, error) {
	res, err := c.api.Indices.Exists([]string{name},
		c.api.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status %s", res.Status())
	}
}

// fieldMapping is the subset of a property mapping the adapter inspects.
// Unknown keys (analyzers, subfields, ...) are ignored on decode.
type fieldMapping struct {
	Type       string `json:"type"`
	Dims       int    `json:"dims"`
	Similarity string `json:"similarity"`
}

// readVectorMapping fetches the index mapping and extracts the
// dense-vector field's dimension and similarity.
func (c *ElasticClient) readVectorMapping(ctx context.Context, name string) (int, string, error) {
	res, err := c.api.Indices.GetMapping(
		c.api.Indices.GetMapping.WithIndex(name),
		c.api.Indices.GetMapping.WithContext(ctx),
	)
	if err != nil {
		return 0, "", err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return 0, "", ErrNotFound
	}
	if res.IsError() {
		return 0, "", fmt.Errorf("mapping request failed: %s", res.String())
	}

	// Keyed by concrete index name, which may differ from the request
	// name when aliases are involved.
	var mappings map[string]struct {
		Mappings struct {
			Properties map[string]fieldMapping `json:"properties"`
		} `json:"mappings"`
	}
	if err := json.NewDecoder(res.Body).Decode(&mappings); err != nil {
		return 0, "", fmt.Errorf("failed to decode mapping: %w", err)
	}

	for _, entry := range mappings {
		field, ok := entry.Mappings.Properties[vectorField]
		if !ok || field.Type != "dense_vector" {
			return 0, "", &ValidationError{
				Index:  name,
				Detail: "no dense_vector field named 'vector': not configured for vector search",
			}
		}
		if field.Dims <= 0 {
			return 0, "", &ValidationError{
				Index:  name,
				Detail: "dense_vector field has no explicit dimension: not configured for vector search",
			}
		}
		return field.Dims, field.Similarity, nil
	}

	return 0, "", &ValidationError{
		Index:  name,
		Detail: "empty mapping: not configured for vector search",
	}
}

// countRecords obtains the record count using the flavor-appropriate
// primary method and falls back once on failure. The two code paths are
// not reconciled across calls; not every deployment exposes every
// administrative endpoint identically.
func (c *ElasticClient) countRecords(ctx context.Context, name string) (int64, error) {
	if c.Flavor(ctx) == FlavorServerless {
		count, err := c.countAPI(ctx, name)
		if err == nil {
			return count, nil
		}
		c.logWarn("count API failed, falling back to search total", err, map[string]interface{}{
			"index": name,
		})
		return c.searchTotal(ctx, name)
	}

	count, err := c.statsCount(ctx, name)
	if err == nil {
		return count, nil
	}
	c.logWarn("stats API failed, falling back to count API", err, map[string]interface{}{
		"index": name,
	})
	return c.countAPI(ctx, name)
}

// statsCount reads the authoritative primary-shard document count.
func (c *ElasticClient) statsCount(ctx context.Context, name string) (int64, error) {
	res, err := c.api.Indices.Stats(
		c.api.Indices.Stats.WithIndex(name),
		c.api.Indices.Stats.WithMetric("docs"),
		c.api.Indices.Stats.WithContext(ctx),
	)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("stats request failed: %s", res.Status())
	}

	var stats struct {
		All struct {
			Primaries struct {
				Docs struct {
					Count int64 `json:"count"`
				} `json:"docs"`
			} `json:"primaries"`
		} `json:"_all"`
	}
	if err := json.NewDecoder(res.Body).Decode(&stats); err != nil {
		return 0, fmt.Errorf("failed to decode stats: %w", err)
	}
	return stats.All.Primaries.Docs.Count, nil
}

// countAPI uses the lightweight count endpoint.
func (c *ElasticClient) countAPI(ctx context.Context, name string) (int64, error) {
	res, err := c.api.Count(
		c.api.Count.WithIndex(name),
		c.api.Count.WithContext(ctx),
	)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("count request failed: %s", res.Status())
	}

	var out struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode count: %w", err)
	}
	return out.Count, nil
}

// searchTotal reports total hits from a zero-result search. The total is
// possibly approximate, capped at the configured accuracy ceiling.
func (c *ElasticClient) searchTotal(ctx context.Context, name string) (int64, error) {
	body, err := json.Marshal(map[string]any{
		"size":             0,
		"track_total_hits": c.cfg.TrackTotalHitsLimit,
	})
	if err != nil {
		return 0, err
	}

	res, err := c.api.Search(
		c.api.Search.WithIndex(name),
		c.api.Search.WithBody(bytes.NewReader(body)),
		c.api.Search.WithContext(ctx),
	)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("search request failed: %s", res.Status())
	}

	var out struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode search total: %w", err)
	}
	return out.Hits.Total.Value, nil
}
