package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/enershare/ewhflex/internal/domain/errors"
	"github.com/enershare/ewhflex/internal/domain/model"
	"github.com/enershare/ewhflex/internal/server/http/dto"
	testhelpers "github.com/enershare/ewhflex/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newOrderRouter(facade OrderFacade) *gin.Engine {
	engine := gin.New()
	handler := NewOrderHandler(facade)
	engine.POST("/api/ewh/request", handler.Submit)
	engine.GET("/api/ewh/result", handler.Result)
	return engine
}

func performRequest(engine *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func submitBody(t *testing.T) []byte {
	t.Helper()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	body, err := json.Marshal(dto.CreateOrderRequest{
		User:          "user-1",
		DatetimeStart: start,
		DatetimeEnd:   start.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return body
}

func TestSubmit(t *testing.T) {
	t.Run("order placed", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{})

		recorder := performRequest(engine, http.MethodPost, "/api/ewh/request", submitBody(t))
		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", recorder.Code)
		}

		var resp dto.CreateOrderResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.OrderID == "" {
			t.Fatal("expected order identifier in response")
		}
		if resp.OrderStatus != string(model.OrderStatusPlaced) {
			t.Fatalf("expected placed status, got %q", resp.OrderStatus)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{})

		recorder := performRequest(engine, http.MethodPost, "/api/ewh/request", []byte("{not json"))
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{})

		recorder := performRequest(engine, http.MethodPost, "/api/ewh/request", []byte(`{"user":"user-1"}`))
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
	})

	t.Run("data unavailable reported synchronously", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{
			SubmitFn: func(context.Context, string, model.Period, *model.EWHSpecs) (*model.Order, error) {
				return nil, domainErrors.ErrDataUnavailable
			},
		})

		recorder := performRequest(engine, http.MethodPost, "/api/ewh/request", submitBody(t))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}

		var resp dto.CreateOrderResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.OrderStatus != string(model.OrderStatusFailed) {
			t.Fatalf("expected failed status, got %q", resp.OrderStatus)
		}
		if resp.OrderID != "" {
			t.Fatal("expected no order identifier when nothing was created")
		}
		if resp.Message == "" {
			t.Fatal("expected a diagnostic message")
		}
	})

	t.Run("invalid user", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{
			SubmitFn: func(context.Context, string, model.Period, *model.EWHSpecs) (*model.Order, error) {
				return nil, domainErrors.ErrInvalidUser
			},
		})

		recorder := performRequest(engine, http.MethodPost, "/api/ewh/request", submitBody(t))
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
	})

	t.Run("internal error", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{
			SubmitFn: func(context.Context, string, model.Period, *model.EWHSpecs) (*model.Order, error) {
				return nil, errors.New("storage unreachable")
			},
		})

		recorder := performRequest(engine, http.MethodPost, "/api/ewh/request", submitBody(t))
		if recorder.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", recorder.Code)
		}
	})
}

func TestResult(t *testing.T) {
	t.Run("missing order identifier", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{})

		recorder := performRequest(engine, http.MethodGet, "/api/ewh/result", nil)
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{
			OrderFn: func(context.Context, string) (*model.Order, error) {
				return nil, domainErrors.ErrNotFound
			},
		})

		recorder := performRequest(engine, http.MethodGet, "/api/ewh/result?order_id=ghost", nil)
		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", recorder.Code)
		}
	})

	t.Run("order still running", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{
			OrderFn: func(_ context.Context, orderID string) (*model.Order, error) {
				return &model.Order{ID: orderID, Status: model.OrderStatusRunning}, nil
			},
		})

		recorder := performRequest(engine, http.MethodGet, "/api/ewh/result?order_id=token-1", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}

		var resp dto.GetOrderResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.OrderStatus != string(model.OrderStatusRunning) {
			t.Fatalf("expected running status, got %q", resp.OrderStatus)
		}
		if resp.Result != nil {
			t.Fatal("expected no result before completion")
		}
	})

	t.Run("complete order carries result", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{
			OrderFn: func(_ context.Context, orderID string) (*model.Order, error) {
				return &model.Order{
					ID:     orderID,
					Status: model.OrderStatusComplete,
					Result: &model.OptimizationResult{
						User:           "user-1",
						OriginalEnergy: model.ValueUnits{Value: 10.4, Unit: "kWh"},
					},
				}, nil
			},
		})

		recorder := performRequest(engine, http.MethodGet, "/api/ewh/result?order_id=token-1", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}

		var resp dto.GetOrderResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Result == nil {
			t.Fatal("expected result payload")
		}
		if resp.Result.OriginalEnergy.Value != 10.4 {
			t.Fatalf("unexpected energy %v", resp.Result.OriginalEnergy.Value)
		}
	})

	t.Run("failed order carries diagnostic", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{
			OrderFn: func(_ context.Context, orderID string) (*model.Order, error) {
				return &model.Order{ID: orderID, Status: model.OrderStatusFailed, ErrorInfo: "fetch measurements: connector down"}, nil
			},
		})

		recorder := performRequest(engine, http.MethodGet, "/api/ewh/result?order_id=token-1", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}

		var resp dto.GetOrderResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.OrderStatus != string(model.OrderStatusFailed) {
			t.Fatalf("expected failed status, got %q", resp.OrderStatus)
		}
		if resp.Message == "" {
			t.Fatal("expected diagnostic message")
		}
		if resp.Result != nil {
			t.Fatal("expected no result on failure")
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		engine := newOrderRouter(testhelpers.OrderFacadeStub{
			OrderFn: func(context.Context, string) (*model.Order, error) {
				return nil, errors.New("storage unreachable")
			},
		})

		recorder := performRequest(engine, http.MethodGet, "/api/ewh/result?order_id=token-1", nil)
		if recorder.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", recorder.Code)
		}
	})
}
