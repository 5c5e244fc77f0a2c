package dto

import (
	"time"

	"github.com/enershare/ewhflex/internal/domain/model"
)

// EWHSpecsPayload mirrors the caller-supplied EWH specification set.
type EWHSpecsPayload struct {
	Capacity       int     `json:"ewh_capacity"`
	Power          int     `json:"ewh_power"`
	MaxTemp        int     `json:"ewh_max_temp"`
	UserComfTemp   int     `json:"user_comf_temp"`
	Tariff         int     `json:"tariff"`
	PriceSimple    float64 `json:"price_simple"`
	PriceDualDay   float64 `json:"price_dual_day"`
	PriceDualNight float64 `json:"price_dual_night"`
	TariffSimple   float64 `json:"tariff_simple"`
	TariffDual     float64 `json:"tariff_dual"`
}

// ToModel converts the payload to domain specifications.
func (p *EWHSpecsPayload) ToModel() *model.EWHSpecs {
	if p == nil {
		return nil
	}
	return &model.EWHSpecs{
		Capacity:       p.Capacity,
		Power:          p.Power,
		MaxTemp:        p.MaxTemp,
		UserComfTemp:   p.UserComfTemp,
		Tariff:         p.Tariff,
		PriceSimple:    p.PriceSimple,
		PriceDualDay:   p.PriceDualDay,
		PriceDualNight: p.PriceDualNight,
		TariffSimple:   p.TariffSimple,
		TariffDual:     p.TariffDual,
	}
}

// CreateOrderRequest initiates a load optimization run.
type CreateOrderRequest struct {
	User          string           `json:"user" binding:"required"`
	DatetimeStart time.Time        `json:"datetime_start" binding:"required"`
	DatetimeEnd   time.Time        `json:"datetime_end" binding:"required"`
	EWHSpecs      *EWHSpecsPayload `json:"ewh_specs"`
}

// CreateOrderResponse reports the synchronous submission outcome.
type CreateOrderResponse struct {
	OrderID     string `json:"order_id,omitempty"`
	OrderStatus string `json:"order_status"`
	Message     string `json:"message,omitempty"`
}

// GetOrderResponse reports current order state and, when complete, the
// optimization result payload.
type GetOrderResponse struct {
	OrderID     string                    `json:"order_id"`
	OrderStatus string                    `json:"order_status"`
	Message     string                    `json:"message,omitempty"`
	Result      *model.OptimizationResult `json:"result,omitempty"`
}

// ErrorResponse carries an error description for 4xx/5xx replies.
type ErrorResponse struct {
	ErrorMessage string `json:"error_message"`
}
