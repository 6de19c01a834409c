package elastic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/recallio/std/v1/vectorstore"
)

func mappingResponse(index string, dims int, similarity string) map[string]any {
	return map[string]any{
		index: map[string]any{
			"mappings": map[string]any{
				"properties": map[string]any{
					"vector": map[string]any{
						"type":       "dense_vector",
						"dims":       dims,
						"index":      true,
						"similarity": similarity,
					},
					"metadata": map[string]any{
						"type":    "object",
						"dynamic": "true",
					},
				},
			},
		},
	}
}

func TestCreateIndex_NewIndexOnStandardDeployment(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodHead, "/docs", http.StatusNotFound, nil)
	ft.respond(http.MethodPut, "/docs", http.StatusOK, map[string]any{"acknowledged": true})
	client := newTestClient(t, ft, func(cfg *Config) {
		cfg.Deployment = FlavorStandard
	})

	if err := client.CreateIndex(context.Background(), "docs", 1536, vectorstore.Cosine); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body map[string]any
	req := ft.lastRequest(t, http.MethodPut, "/docs")
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("failed to decode create body: %v", err)
	}

	props := body["mappings"].(map[string]any)["properties"].(map[string]any)
	vector := props["vector"].(map[string]any)
	if vector["type"] != "dense_vector" {
		t.Errorf("expected dense_vector type, got %v", vector["type"])
	}
	if vector["dims"] != float64(1536) {
		t.Errorf("expected dims 1536, got %v", vector["dims"])
	}
	if vector["similarity"] != "cosine" {
		t.Errorf("expected cosine similarity, got %v", vector["similarity"])
	}
	metadata := props["metadata"].(map[string]any)
	if metadata["type"] != "object" || metadata["dynamic"] != true {
		t.Errorf("expected dynamic object metadata mapping, got %v", metadata)
	}

	settings, ok := body["settings"].(map[string]any)
	if !ok {
		t.Fatal("expected explicit settings on a standard deployment")
	}
	index := settings["index"].(map[string]any)
	if index["number_of_shards"] != float64(1) || index["number_of_replicas"] != float64(0) {
		t.Errorf("expected single shard and zero replicas, got %v", index)
	}
}

func TestCreateIndex_ServerlessOmitsTopologySettings(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodHead, "/docs", http.StatusNotFound, nil)
	ft.respond(http.MethodPut, "/docs", http.StatusOK, map[string]any{"acknowledged": true})
	client := newTestClient(t, ft, func(cfg *Config) {
		cfg.Deployment = FlavorServerless
	})

	if err := client.CreateIndex(context.Background(), "docs", 768, vectorstore.Euclidean); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body map[string]any
	req := ft.lastRequest(t, http.MethodPut, "/docs")
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("failed to decode create body: %v", err)
	}
	if _, ok := body["settings"]; ok {
		t.Error("serverless deployments must not receive topology settings")
	}

	vector := body["mappings"].(map[string]any)["properties"].(map[string]any)["vector"].(map[string]any)
	if vector["similarity"] != "l2_norm" {
		t.Errorf("expected l2_norm similarity, got %v", vector["similarity"])
	}
}

func TestCreateIndex_ExistingMatchingSchemaIsNoOp(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodHead, "/docs", http.StatusOK, nil)
	ft.respond(http.MethodGet, "/docs/_mapping", http.StatusOK, mappingResponse("docs", 1536, "cosine"))
	client := newTestClient(t, ft)

	if err := client.CreateIndex(context.Background(), "docs", 1536, vectorstore.Cosine); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if n := ft.countRequests(http.MethodPut, "/docs"); n != 0 {
		t.Errorf("expected no create call, got %d", n)
	}
}

func TestCreateIndex_ExistingMismatchedSchemaFails(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodHead, "/docs", http.StatusOK, nil)
	ft.respond(http.MethodGet, "/docs/_mapping", http.StatusOK, mappingResponse("docs", 768, "l2_norm"))
	client := newTestClient(t, ft)

	err := client.CreateIndex(context.Background(), "docs", 1536, vectorstore.Cosine)
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateIndex_InvalidArguments(t *testing.T) {
	ft := newFakeTransport()
	client := newTestClient(t, ft)

	if err := client.CreateIndex(context.Background(), "", 128, vectorstore.Cosine); err == nil {
		t.Error("expected error for empty name")
	}
	if err := client.CreateIndex(context.Background(), "docs", 0, vectorstore.Cosine); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestDescribeIndex_StandardUsesStats(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodGet, "/docs/_mapping", http.StatusOK, mappingResponse("docs", 1536, "dot_product"))
	ft.respond(http.MethodGet, "/docs/_stats/docs", http.StatusOK, map[string]any{
		"_all": map[string]any{
			"primaries": map[string]any{
				"docs": map[string]any{"count": 42},
			},
		},
	})
	client := newTestClient(t, ft, func(cfg *Config) {
		cfg.Deployment = FlavorStandard
	})

	stats, err := client.DescribeIndex(context.Background(), "docs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Name != "docs" || stats.Dimension != 1536 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.Metric != vectorstore.DotProduct {
		t.Errorf("expected dotproduct metric, got %q", stats.Metric)
	}
	if stats.Count != 42 {
		t.Errorf("expected count 42, got %d", stats.Count)
	}
}

func TestDescribeIndex_StandardFallsBackToCountAPI(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodGet, "/docs/_mapping", http.StatusOK, mappingResponse("docs", 128, "cosine"))
	ft.respond(http.MethodGet, "/docs/_stats/docs", http.StatusInternalServerError, map[string]any{"error": "boom"})
	ft.respond(http.MethodGet, "/docs/_count", http.StatusOK, map[string]any{"count": 7})
	ft.respond(http.MethodPost, "/docs/_count", http.StatusOK, map[string]any{"count": 7})
	logger := &captureLogger{}
	client := newTestClient(t, ft, func(cfg *Config) {
		cfg.Deployment = FlavorStandard
		cfg.Logger = logger
	})

	stats, err := client.DescribeIndex(context.Background(), "docs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Count != 7 {
		t.Errorf("expected fallback count 7, got %d", stats.Count)
	}
	if !logger.contains("WARN") {
		t.Error("expected a warning when the primary count method fails")
	}
}

func TestDescribeIndex_ServerlessUsesCountAPIThenSearchTotal(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodGet, "/docs/_mapping", http.StatusOK, mappingResponse("docs", 128, "cosine"))
	ft.respond(http.MethodGet, "/docs/_count", http.StatusInternalServerError, map[string]any{"error": "boom"})
	ft.respond(http.MethodPost, "/docs/_count", http.StatusInternalServerError, map[string]any{"error": "boom"})
	ft.respond(http.MethodPost, "/docs/_search", http.StatusOK, map[string]any{
		"hits": map[string]any{
			"total": map[string]any{"value": 9000, "relation": "eq"},
			"hits":  []any{},
		},
	})
	client := newTestClient(t, ft, func(cfg *Config) {
		cfg.Deployment = FlavorServerless
	})

	stats, err := client.DescribeIndex(context.Background(), "docs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Count != 9000 {
		t.Errorf("expected search total 9000, got %d", stats.Count)
	}

	var body map[string]any
	req := ft.lastRequest(t, http.MethodPost, "/docs/_search")
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("failed to decode search body: %v", err)
	}
	if body["size"] != float64(0) {
		t.Errorf("expected size 0, got %v", body["size"])
	}
	if body["track_total_hits"] != float64(DefaultTrackTotalHitsLimit) {
		t.Errorf("expected track_total_hits %d, got %v", DefaultTrackTotalHitsLimit, body["track_total_hits"])
	}
}

func TestDescribeIndex_NonVectorIndexFails(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodGet, "/logs/_mapping", http.StatusOK, map[string]any{
		"logs": map[string]any{
			"mappings": map[string]any{
				"properties": map[string]any{
					"message": map[string]any{"type": "text"},
				},
			},
		},
	})
	client := newTestClient(t, ft)

	_, err := client.DescribeIndex(context.Background(), "logs")
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDescribeIndex_MissingIndex(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodGet, "/ghost/_mapping", http.StatusNotFound, map[string]any{"error": "missing"})
	client := newTestClient(t, ft)

	_, err := client.DescribeIndex(context.Background(), "ghost")
	if !IsNotFoundError(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIndex(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodDelete, "/docs", http.StatusOK, map[string]any{"acknowledged": true})
	client := newTestClient(t, ft)

	if err := client.DeleteIndex(context.Background(), "docs"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteIndex_Missing(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodDelete, "/ghost", http.StatusNotFound, map[string]any{"error": "missing"})
	client := newTestClient(t, ft)

	err := client.DeleteIndex(context.Background(), "ghost")
	if !IsNotFoundError(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected the sentinel to survive wrapping")
	}
}

func TestListIndexes_SkipsSystemIndexes(t *testing.T) {
	ft := newFakeTransport()
	ft.respond(http.MethodGet, "/_cat/indices", http.StatusOK, []map[string]any{
		{"index": "docs"},
		{"index": ".security-7"},
		{"index": "memories"},
		{"index": ".kibana_1"},
	})
	client := newTestClient(t, ft)

	names, err := client.ListIndexes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"docs", "memories"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, names)
		}
	}
}
