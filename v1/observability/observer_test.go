package observability

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestObserver collects operations for assertions.
type TestObserver struct {
	mu         sync.Mutex
	operations []OperationContext
}

func (t *TestObserver) ObserveOperation(ctx OperationContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = append(t.operations, ctx)
}

func (t *TestObserver) GetOperations() []OperationContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]OperationContext, len(t.operations))
	copy(out, t.operations)
	return out
}

type testLogger struct {
	mu     sync.Mutex
	debugs int
	errors int
}

func (l *testLogger) Debug(string, error, ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugs++
}
func (l *testLogger) Warn(string, error, ...map[string]interface{}) {}
func (l *testLogger) Error(string, error, ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors++
}

func TestMultiObserverFansOut(t *testing.T) {
	a := &TestObserver{}
	b := &TestObserver{}
	multi := MultiObserver{a, nil, b}

	multi.ObserveOperation(OperationContext{Component: "elastic", Operation: "query"})

	if len(a.GetOperations()) != 1 || len(b.GetOperations()) != 1 {
		t.Fatalf("expected both observers notified, got %d and %d",
			len(a.GetOperations()), len(b.GetOperations()))
	}
}

func TestLoggingObserverLevels(t *testing.T) {
	log := &testLogger{}
	obs := NewLoggingObserver(log)

	obs.ObserveOperation(OperationContext{Component: "elastic", Operation: "query"})
	obs.ObserveOperation(OperationContext{Component: "elastic", Operation: "upsert", Error: errors.New("boom")})

	if log.debugs != 1 {
		t.Errorf("expected 1 debug log, got %d", log.debugs)
	}
	if log.errors != 1 {
		t.Errorf("expected 1 error log, got %d", log.errors)
	}
}

func TestLoggingObserverNilSafe(t *testing.T) {
	var obs *LoggingObserver
	obs.ObserveOperation(OperationContext{}) // must not panic

	NewLoggingObserver(nil).ObserveOperation(OperationContext{})
}

func TestTracingObserverRecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	obs := NewTracingObserver(tp)

	obs.ObserveOperation(OperationContext{
		Component: "elastic",
		Operation: "query",
		Resource:  "memories",
		Duration:  25 * time.Millisecond,
	})
	obs.ObserveOperation(OperationContext{
		Component: "elastic",
		Operation: "upsert",
		Resource:  "memories",
		Error:     errors.New("bulk rejected"),
	})

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "elastic.query" {
		t.Errorf("unexpected span name %q", spans[0].Name())
	}
	if got := spans[0].EndTime().Sub(spans[0].StartTime()); got < 25*time.Millisecond {
		t.Errorf("expected span duration >= 25ms, got %s", got)
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("expected error status on failed operation span")
	}
}
