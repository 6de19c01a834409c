package elastic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// fakeTransport dispatches requests to canned handlers keyed by
// "METHOD path" and records everything it serves, letting unit tests
// exercise the client without a cluster.
type fakeTransport struct {
	mu       sync.Mutex
	handlers map[string]func(*http.Request) (*http.Response, error)
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		handlers: map[string]func(*http.Request) (*http.Response, error){},
	}
}

func (ft *fakeTransport) handle(method, path string, handler func(*http.Request) (*http.Response, error)) {
	ft.handlers[method+" "+path] = handler
}

// respond registers a fixed JSON response for a method+path pair.
func (ft *fakeTransport) respond(method, path string, status int, body any) {
	ft.handle(method, path, func(*http.Request) (*http.Response, error) {
		return jsonResponse(status, body), nil
	})
}

func (ft *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var payload []byte
	if req.Body != nil {
		payload, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	ft.mu.Lock()
	ft.requests = append(ft.requests, recordedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Body:   payload,
	})
	handler, ok := ft.handlers[req.Method+" "+req.URL.Path]
	ft.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no handler for %s %s", req.Method, req.URL.Path)
	}
	if payload != nil {
		req.Body = io.NopCloser(bytes.NewReader(payload))
	}
	return handler(req)
}

// lastRequest returns the most recent request matching method and path,
// or fails the test.
func (ft *fakeTransport) lastRequest(t *testing.T, method, path string) recordedRequest {
	t.Helper()
	ft.mu.Lock()
	defer ft.mu.Unlock()
	for i := len(ft.requests) - 1; i >= 0; i-- {
		r := ft.requests[i]
		if r.Method == method && r.Path == path {
			return r
		}
	}
	t.Fatalf("no recorded request for %s %s", method, path)
	return recordedRequest{}
}

func (ft *fakeTransport) countRequests(method, path string) int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	n := 0
	for _, r := range ft.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// jsonResponse builds an HTTP response carrying the product header the
// official client verifies on every reply.
func jsonResponse(status int, body any) *http.Response {
	var payload []byte
	switch b := body.(type) {
	case nil:
		payload = []byte("{}")
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(bytes.NewReader(payload)),
	}
}

// standardClusterInfo is the info payload of a self-managed cluster.
func standardClusterInfo() map[string]any {
	return map[string]any{
		"tagline": "You Know, for Search",
		"version": map[string]any{
			"number":       "8.14.0",
			"build_flavor": "default",
		},
	}
}

// serverlessClusterInfo is the info payload of a serverless project.
func serverlessClusterInfo() map[string]any {
	return map[string]any{
		"tagline": "You Know, for Search (serverless)",
		"version": map[string]any{
			"number":       "8.11.0",
			"build_flavor": "serverless",
		},
	}
}

// newTestClient builds a client against the fake transport. The info
// endpoint is pre-wired for the startup health check unless the caller
// registered its own handler.
func newTestClient(t *testing.T, ft *fakeTransport, configure ...func(*Config)) *ElasticClient {
	t.Helper()
	if _, ok := ft.handlers["GET /"]; !ok {
		ft.respond(http.MethodGet, "/", http.StatusOK, standardClusterInfo())
	}
	cfg := DefaultConfig().WithTransport(ft)
	for _, fn := range configure {
		fn(cfg)
	}
	client, err := NewElasticClient(cfg)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

// captureLogger records log lines for assertions on warning paths.
type captureLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *captureLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+": "+msg)
}

func (l *captureLogger) Debug(msg string, _ error, _ ...map[string]interface{}) {
	l.log("DEBUG", msg)
}

func (l *captureLogger) Info(msg string, _ error, _ ...map[string]interface{}) {
	l.log("INFO", msg)
}

func (l *captureLogger) Warn(msg string, _ error, _ ...map[string]interface{}) {
	l.log("WARN", msg)
}

func (l *captureLogger) Error(msg string, _ error, _ ...map[string]interface{}) {
	l.log("ERROR", msg)
}

func (l *captureLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if strings.Contains(entry, substr) {
			return true
		}
	}
	return false
}
