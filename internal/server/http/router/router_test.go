package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	testhelpers "github.com/enershare/ewhflex/internal/test"
)

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	return Setup(testhelpers.OrderFacadeStub{}, logger, metrics)
}

func TestRoutes(t *testing.T) {
	engine := newTestRouter()

	cases := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"submit order", http.MethodPost, "/api/ewh/request",
			`{"user":"user-1","datetime_start":"2024-03-01T00:00:00Z","datetime_end":"2024-03-02T00:00:00Z"}`,
			http.StatusCreated},
		{"poll order", http.MethodGet, "/api/ewh/result?order_id=token-1", "", http.StatusOK},
		{"metrics exposed", http.MethodGet, "/metrics", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/ewh/unknown", "", http.StatusNotFound},
		{"wrong method", http.MethodGet, "/api/ewh/request", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tc.method, tc.target, nil)
			}
			recorder := httptest.NewRecorder()
			engine.ServeHTTP(recorder, req)
			if recorder.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, recorder.Code)
			}
		})
	}
}

func TestRequestIDAssigned(t *testing.T) {
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/ewh/result?order_id=token-1", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}
}

func TestRequestIDPreserved(t *testing.T) {
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/ewh/result?order_id=token-1", nil)
	req.Header.Set("X-Request-Id", "client-supplied")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if got := recorder.Header().Get("X-Request-Id"); got != "client-supplied" {
		t.Fatalf("expected client request id preserved, got %q", got)
	}
}

func TestResponseCompression(t *testing.T) {
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/ewh/result?order_id=token-1", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if got := recorder.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", got)
	}
}
