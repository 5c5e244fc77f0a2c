package handlers

import (
	"context"

	"github.com/enershare/ewhflex/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, userID string, period model.Period, specs *model.EWHSpecs) (*model.Order, error)
	Order(ctx context.Context, orderID string) (*model.Order, error)
}

// FlexFacade aggregates the full set of operations used across handlers.
type FlexFacade interface {
	OrderFacade
}
