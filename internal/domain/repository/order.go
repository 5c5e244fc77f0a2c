package repository

import (
	"context"

	"github.com/enershare/ewhflex/internal/domain/model"
)

// OrderRepository describes persistence operations with optimization orders.
type OrderRepository interface {
	// Create persists a new order. Returns ErrAlreadyExists when the
	// identifier is taken.
	Create(ctx context.Context, order *model.Order) error
	// Get returns the current order snapshot or ErrNotFound.
	Get(ctx context.Context, orderID string) (*model.Order, error)
	// UpdateStatus atomically transitions status and attaches the terminal
	// payload. Returns ErrNotFound for unknown orders and ErrOrderTerminal
	// when the stored order already reached complete or failed.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, result *model.OptimizationResult, errorInfo string) error
}
