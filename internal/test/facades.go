package test

import (
	"context"

	"github.com/enershare/ewhflex/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	SubmitFn func(context.Context, string, model.Period, *model.EWHSpecs) (*model.Order, error)
	OrderFn  func(context.Context, string) (*model.Order, error)
}

// SubmitOrder delegates to provided function or returns a placed order.
func (s OrderFacadeStub) SubmitOrder(ctx context.Context, userID string, period model.Period, specs *model.EWHSpecs) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, period, specs)
	}
	return &model.Order{ID: "stub-order", UserID: userID, Status: model.OrderStatusPlaced, Period: period, Specs: specs}, nil
}

// Order delegates to provided function or returns a running order.
func (s OrderFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusRunning}, nil
}
