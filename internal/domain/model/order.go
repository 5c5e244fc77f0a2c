package model

import "time"

// OrderStatus describes optimization order lifecycle.
type OrderStatus string

const (
	OrderStatusPlaced   OrderStatus = "placed"
	OrderStatusRunning  OrderStatus = "running"
	OrderStatusComplete OrderStatus = "complete"
	OrderStatusFailed   OrderStatus = "failed"
)

// Terminal reports whether no further transitions are permitted.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusComplete || s == OrderStatusFailed
}

// Period bounds the optimization window.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the window is non-empty and correctly ordered.
func (p Period) Valid() bool {
	return !p.Start.IsZero() && !p.End.IsZero() && p.Start.Before(p.End)
}

// Order describes an EWH optimization request tracked through its lifecycle.
type Order struct {
	ID        string
	UserID    string
	Status    OrderStatus
	Period    Period
	Specs     *EWHSpecs
	Result    *OptimizationResult
	ErrorInfo string
	CreatedAt time.Time
	UpdatedAt time.Time
}
