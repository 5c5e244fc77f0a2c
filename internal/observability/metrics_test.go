package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m, handler, err := NewMetrics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil || handler == nil {
		t.Fatal("expected metrics and handler")
	}

	ctx := context.Background()
	m.RecordPlaced(ctx)
	m.RecordRejected(ctx)
	m.JobStarted(ctx)
	m.JobFinished(ctx, true, 250*time.Millisecond)
	m.JobStarted(ctx)
	m.JobFinished(ctx, false, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	body := recorder.Body.String()
	for _, name := range []string{
		"ewh_orders_placed_total",
		"ewh_orders_rejected_total",
		"ewh_orders_completed_total",
		"ewh_orders_failed_total",
		"ewh_pipeline_duration_seconds",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("expected exposition to contain %s", name)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	ctx := context.Background()
	m.RecordPlaced(ctx)
	m.RecordRejected(ctx)
	m.JobStarted(ctx)
	m.JobFinished(ctx, true, time.Second)
}
