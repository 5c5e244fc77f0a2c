package test

import (
	"context"
	"sync"

	domainErrors "github.com/enershare/ewhflex/internal/domain/errors"
	"github.com/enershare/ewhflex/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory for tests, enforcing the same
// uniqueness and terminal-state contracts as the real stores.
type OrderRepositoryStub struct {
	CreateFn func(context.Context, *model.Order) error
	GetFn    func(context.Context, string) (*model.Order, error)
	UpdateFn func(context.Context, string, model.OrderStatus, *model.OptimizationResult, string) error

	mu      sync.Mutex
	orders  map[string]*model.Order
	history map[string][]model.OrderStatus
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		orders:  make(map[string]*model.Order),
		history: make(map[string][]model.OrderStatus),
	}
}

// Create registers order unless the identifier is taken.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	stored := *order
	s.orders[order.ID] = &stored
	s.history[order.ID] = append(s.history[order.ID], order.Status)
	return nil
}

// Get fetches a copy of the stored order or returns not found.
func (s *OrderRepositoryStub) Get(ctx context.Context, orderID string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	snapshot := *order
	return &snapshot, nil
}

// UpdateStatus transitions the order, guarding terminal states.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, result *model.OptimizationResult, errorInfo string) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, orderID, status, result, errorInfo)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.Status.Terminal() {
		return domainErrors.ErrOrderTerminal
	}
	order.Status = status
	order.Result = result
	order.ErrorInfo = errorInfo
	s.history[orderID] = append(s.history[orderID], status)
	return nil
}

// History returns the sequence of statuses the order went through.
func (s *OrderRepositoryStub) History(orderID string) []model.OrderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.OrderStatus, len(s.history[orderID]))
	copy(out, s.history[orderID])
	return out
}

// Len reports how many orders the stub holds.
func (s *OrderRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}
