// Package specs resolves EWH simulation parameters, filling in server-side
// defaults when the caller omits them.
package specs

import "github.com/enershare/ewhflex/internal/domain/model"

// Resolver produces concrete EWH specifications.
type Resolver struct{}

// NewResolver constructs Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Defaults returns the reference EWH specification set.
func Defaults() *model.EWHSpecs {
	return &model.EWHSpecs{
		Capacity:       100,
		Power:          1800,
		MaxTemp:        80,
		UserComfTemp:   45,
		Tariff:         model.TariffSimple,
		PriceSimple:    0.16,
		PriceDualDay:   0.18,
		PriceDualNight: 0.10,
		TariffSimple:   0.35,
		TariffDual:     0.42,
	}
}

// Resolve returns caller-supplied specs with gaps filled from defaults, or
// the full default set when nothing was supplied.
func (r *Resolver) Resolve(supplied *model.EWHSpecs) *model.EWHSpecs {
	defaults := Defaults()
	if supplied == nil {
		return defaults
	}

	resolved := *supplied
	if resolved.Capacity <= 0 {
		resolved.Capacity = defaults.Capacity
	}
	if resolved.Power <= 0 {
		resolved.Power = defaults.Power
	}
	if resolved.MaxTemp <= 0 {
		resolved.MaxTemp = defaults.MaxTemp
	}
	if resolved.UserComfTemp <= 0 {
		resolved.UserComfTemp = defaults.UserComfTemp
	}
	if resolved.Tariff != model.TariffSimple && resolved.Tariff != model.TariffDual {
		resolved.Tariff = defaults.Tariff
	}
	if resolved.PriceSimple <= 0 {
		resolved.PriceSimple = defaults.PriceSimple
	}
	if resolved.PriceDualDay <= 0 {
		resolved.PriceDualDay = defaults.PriceDualDay
	}
	if resolved.PriceDualNight <= 0 {
		resolved.PriceDualNight = defaults.PriceDualNight
	}
	if resolved.TariffSimple <= 0 {
		resolved.TariffSimple = defaults.TariffSimple
	}
	if resolved.TariffDual <= 0 {
		resolved.TariffDual = defaults.TariffDual
	}
	return &resolved
}
