package app

import (
	"context"

	"github.com/enershare/ewhflex/internal/domain/model"
	"github.com/enershare/ewhflex/internal/usecase"
)

// FlexFacade exposes application functionality to the transport layer.
type FlexFacade struct {
	orders *usecase.OrderUseCase
}

// NewFlexFacade constructs FlexFacade.
func NewFlexFacade(orders *usecase.OrderUseCase) *FlexFacade {
	return &FlexFacade{orders: orders}
}

// SubmitOrder places a new optimization order and launches its execution.
func (f *FlexFacade) SubmitOrder(ctx context.Context, userID string, period model.Period, specs *model.EWHSpecs) (*model.Order, error) {
	return f.orders.Submit(ctx, userID, period, specs)
}

// Order returns the current order snapshot.
func (f *FlexFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}
