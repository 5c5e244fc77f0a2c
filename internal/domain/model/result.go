package model

import "time"

// SimulationPeriod describes the simulated/optimized window.
type SimulationPeriod struct {
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	DaysInSimulation int       `json:"days_in_simulation"`
}

// ValueUnits couples a scalar metric with its unit.
type ValueUnits struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// UsagePoint marks EWH heating activity estimated from the real load diagram.
type UsagePoint struct {
	Timestamp time.Time `json:"timestamp"`
	EWHOn     float64   `json:"ewh_on"`
}

// CalendarPoint is an entry of the optimized functioning calendar.
type CalendarPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	HotWaterUsage float64   `json:"hot_water_usage"`
}

// OptimizationResult is the payload produced by a completed simulation.
type OptimizationResult struct {
	User                 string           `json:"user"`
	SimulationPeriod     SimulationPeriod `json:"simulation_period"`
	OriginalEnergy       ValueUnits       `json:"original_energy"`
	OptimizedEnergy      ValueUnits       `json:"optimized_energy"`
	OriginalPrice        ValueUnits       `json:"original_price"`
	OptimizedPrice       ValueUnits       `json:"optimized_price"`
	AvgDailyEnergy       ValueUnits       `json:"avg_daily_energy"`
	TotalFlexibility     ValueUnits       `json:"total_flexibility"`
	PercFlexibility      ValueUnits       `json:"perc_flexibility"`
	AvgDailyFlexibility  ValueUnits       `json:"avg_daily_flexibility"`
	SavingsCost          ValueUnits       `json:"savings_cost"`
	SavingsEnergy        ValueUnits       `json:"savings_energy"`
	OriginalUsageProfile []UsagePoint     `json:"original_usage_profile"`
	OptimizedCalendar    []CalendarPoint  `json:"optimized_calendar"`
}
