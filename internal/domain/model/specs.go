package model

// Tariff selection values accepted in EWH specifications.
const (
	TariffSimple = 1
	TariffDual   = 2
)

// EWHSpecs holds electric water heater parameters for a simulation run.
type EWHSpecs struct {
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
