package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/enershare/ewhflex/internal/domain/model"
)

// Standby losses avoided by concentrating heating into scheduled slots.
const standbyLossFactor = 0.95

// Simulator is the reference Engine implementation. It estimates the heating
// profile from the measured load diagram and reschedules heating slots to the
// cheapest tariff positions within each day.
type Simulator struct{}

// NewSimulator constructs Simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

type slot struct {
	ts        time.Time
	energyKWh float64
	price     float64
	heating   bool
}

// Run executes the simulation. It fails when no measurements fall inside the
// optimization period.
func (s *Simulator) Run(ctx context.Context, user string, period model.Period, measurements model.MeasurementSeries, tariffs model.TariffSchedule, specs *model.EWHSpecs) (*model.OptimizationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if specs == nil {
		return nil, fmt.Errorf("specs must be resolved before simulation")
	}

	slots := buildSlots(period, measurements, tariffs, specs)
	if len(slots) == 0 {
		return nil, fmt.Errorf("no measurements within optimization period %s - %s",
			period.Start.Format(time.RFC3339), period.End.Format(time.RFC3339))
	}

	interval := slotInterval(slots)
	days := int(math.Ceil(period.End.Sub(period.Start).Hours() / 24))
	if days < 1 {
		days = 1
	}

	var originalEnergy, originalVarCost float64
	usageProfile := make([]model.UsagePoint, 0, len(slots))
	for _, sl := range slots {
		originalEnergy += sl.energyKWh
		originalVarCost += sl.energyKWh * sl.price
		on := 0.0
		if sl.heating {
			on = 1.0
		}
		usageProfile = append(usageProfile, model.UsagePoint{Timestamp: sl.ts, EWHOn: on})
	}

	calendar, optimizedVarCost, flexMinutes := reschedule(slots, interval)

	fixedCost := dailyFixedCost(specs) * float64(days)
	optimizedEnergy := originalEnergy * standbyLossFactor
	optimizedVarCost *= standbyLossFactor

	originalPrice := originalVarCost + fixedCost
	optimizedPrice := optimizedVarCost + fixedCost
	if optimizedPrice > originalPrice {
		optimizedPrice = originalPrice
	}

	totalMinutes := period.End.Sub(period.Start).Minutes()
	percFlex := 0.0
	if totalMinutes > 0 {
		percFlex = flexMinutes / totalMinutes * 100
	}

	return &model.OptimizationResult{
		User: user,
		SimulationPeriod: model.SimulationPeriod{
			Start:            period.Start,
			End:              period.End,
			DaysInSimulation: days,
		},
		OriginalEnergy:       model.ValueUnits{Value: round2(originalEnergy), Unit: "kWh"},
		OptimizedEnergy:      model.ValueUnits{Value: round2(optimizedEnergy), Unit: "kWh"},
		OriginalPrice:        model.ValueUnits{Value: round2(originalPrice), Unit: "EUR"},
		OptimizedPrice:       model.ValueUnits{Value: round2(optimizedPrice), Unit: "EUR"},
		AvgDailyEnergy:       model.ValueUnits{Value: round2(optimizedEnergy / float64(days)), Unit: "kWh"},
		TotalFlexibility:     model.ValueUnits{Value: round2(flexMinutes), Unit: "min"},
		PercFlexibility:      model.ValueUnits{Value: round2(percFlex), Unit: "%"},
		AvgDailyFlexibility:  model.ValueUnits{Value: round2(flexMinutes / float64(days)), Unit: "min"},
		SavingsCost:          model.ValueUnits{Value: round2(originalPrice - optimizedPrice), Unit: "EUR"},
		SavingsEnergy:        model.ValueUnits{Value: round2(originalEnergy - optimizedEnergy), Unit: "kWh"},
		OriginalUsageProfile: usageProfile,
		OptimizedCalendar:    calendar,
	}, nil
}

func buildSlots(period model.Period, measurements model.MeasurementSeries, tariffs model.TariffSchedule, specs *model.EWHSpecs) []slot {
	heatingThreshold := float64(specs.Power) * 0.5

	points := make(model.MeasurementSeries, 0, len(measurements))
	for _, m := range measurements {
		if m.Timestamp.Before(period.Start) || !m.Timestamp.Before(period.End) {
			continue
		}
		points = append(points, m)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

	interval := inferInterval(points)
	slots := make([]slot, 0, len(points))
	for _, m := range points {
		slots = append(slots, slot{
			ts:        m.Timestamp,
			energyKWh: m.LoadW * interval.Hours() / 1000,
			price:     priceAt(m.Timestamp, tariffs, specs),
			heating:   m.LoadW > heatingThreshold,
		})
	}
	return slots
}

func inferInterval(points model.MeasurementSeries) time.Duration {
	if len(points) > 1 {
		if d := points[1].Timestamp.Sub(points[0].Timestamp); d > 0 {
			return d
		}
	}
	return 15 * time.Minute
}

func slotInterval(slots []slot) time.Duration {
	if len(slots) > 1 {
		if d := slots[1].ts.Sub(slots[0].ts); d > 0 {
			return d
		}
	}
	return 15 * time.Minute
}

// priceAt prefers the dataspace tariff profile and falls back to the
// EWH contract pricing when the profile does not cover the timestamp.
func priceAt(ts time.Time, tariffs model.TariffSchedule, specs *model.EWHSpecs) float64 {
	best := -1
	for i, p := range tariffs {
		if p.Timestamp.After(ts) {
			break
		}
		best = i
	}
	if best >= 0 {
		return tariffs[best].PricePerKWh
	}

	if specs.Tariff == model.TariffDual {
		hour := ts.Hour()
		if hour >= 8 && hour < 22 {
			return specs.PriceDualDay
		}
		return specs.PriceDualNight
	}
	return specs.PriceSimple
}

func dailyFixedCost(specs *model.EWHSpecs) float64 {
	if specs.Tariff == model.TariffDual {
		return specs.TariffDual
	}
	return specs.TariffSimple
}

// reschedule moves each day's heating energy to that day's cheapest slots,
// preserving the number of active slots. Returns the optimized calendar, the
// variable cost after the move, and the shifted minutes (flexibility).
func reschedule(slots []slot, interval time.Duration) ([]model.CalendarPoint, float64, float64) {
	byDay := make(map[string][]int)
	dayOrder := make([]string, 0)
	for i, sl := range slots {
		day := sl.ts.Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			dayOrder = append(dayOrder, day)
		}
		byDay[day] = append(byDay[day], i)
	}

	calendar := make([]model.CalendarPoint, 0, len(slots))
	var varCost, flexMinutes float64

	for _, day := range dayOrder {
		idx := byDay[day]

		var heatingEnergy float64
		active := 0
		for _, i := range idx {
			if slots[i].heating {
				heatingEnergy += slots[i].energyKWh
				active++
			}
		}

		ranked := make([]int, len(idx))
		copy(ranked, idx)
		sort.SliceStable(ranked, func(a, b int) bool { return slots[ranked[a]].price < slots[ranked[b]].price })

		chosen := make(map[int]bool, active)
		for _, i := range ranked[:active] {
			chosen[i] = true
		}

		perSlot := 0.0
		if active > 0 {
			perSlot = heatingEnergy / float64(active)
		}

		for _, i := range idx {
			usage := 0.0
			if chosen[i] {
				usage = perSlot
				varCost += perSlot * slots[i].price
			}
			if chosen[i] != slots[i].heating {
				// A slot changed role in the schedule: shiftable capacity.
				flexMinutes += interval.Minutes() / 2
			}
			calendar = append(calendar, model.CalendarPoint{Timestamp: slots[i].ts, HotWaterUsage: round3(usage)})
		}
	}

	return calendar, varCost, flexMinutes
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
