package test

import (
	"context"
	"time"

	"github.com/enershare/ewhflex/internal/domain/model"
)

// DataspaceStub provides controllable collaborator behaviour.
type DataspaceStub struct {
	MetadataFn     func(context.Context, string) (*model.Metadata, error)
	MeasurementsFn func(context.Context, string) (model.MeasurementSeries, error)
	TariffsFn      func(context.Context, string) (model.TariffSchedule, error)
}

// Metadata delegates to the configured function or reports availability.
func (s DataspaceStub) Metadata(ctx context.Context, identifier string) (*model.Metadata, error) {
	if s.MetadataFn != nil {
		return s.MetadataFn(ctx, identifier)
	}
	return &model.Metadata{Identifier: identifier, DataAvailable: true}, nil
}

// Measurements returns a small deterministic load diagram by default.
func (s DataspaceStub) Measurements(ctx context.Context, identifier string) (model.MeasurementSeries, error) {
	if s.MeasurementsFn != nil {
		return s.MeasurementsFn(ctx, identifier)
	}
	return SampleMeasurements(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 8), nil
}

// Tariffs returns an empty schedule by default so contract pricing applies.
func (s DataspaceStub) Tariffs(ctx context.Context, identifier string) (model.TariffSchedule, error) {
	if s.TariffsFn != nil {
		return s.TariffsFn(ctx, identifier)
	}
	return model.TariffSchedule{}, nil
}

// SampleMeasurements builds an alternating heating/idle load diagram of n
// quarter-hour samples starting at the given time.
func SampleMeasurements(start time.Time, n int) model.MeasurementSeries {
	series := make(model.MeasurementSeries, 0, n)
	for i := 0; i < n; i++ {
		load := 50.0
		if i%2 == 0 {
			load = 1800.0
		}
		series = append(series, model.MeasurementPoint{
			Timestamp: start.Add(time.Duration(i) * 15 * time.Minute),
			LoadW:     load,
		})
	}
	return series
}

// EngineStub mimics the compute collaborator.
type EngineStub struct {
	RunFn func(context.Context, string, model.Period, model.MeasurementSeries, model.TariffSchedule, *model.EWHSpecs) (*model.OptimizationResult, error)
}

// Run delegates to the configured function or returns a minimal result.
func (s EngineStub) Run(ctx context.Context, user string, period model.Period, measurements model.MeasurementSeries, tariffs model.TariffSchedule, specs *model.EWHSpecs) (*model.OptimizationResult, error) {
	if s.RunFn != nil {
		return s.RunFn(ctx, user, period, measurements, tariffs, specs)
	}
	return &model.OptimizationResult{
		User: user,
		SimulationPeriod: model.SimulationPeriod{
			Start:            period.Start,
			End:              period.End,
			DaysInSimulation: 1,
		},
		OriginalEnergy:  model.ValueUnits{Value: 2, Unit: "kWh"},
		OptimizedEnergy: model.ValueUnits{Value: 1.9, Unit: "kWh"},
	}, nil
}

// SyncLauncher executes detached units inline, which makes pipeline outcomes
// observable immediately after Submit returns.
type SyncLauncher struct{}

// Launch runs fn synchronously with a background context.
func (SyncLauncher) Launch(name string, fn func(ctx context.Context)) {
	fn(context.Background())
}

// NoopLauncher drops launched units so tests can observe the pre-execution
// state of an order.
type NoopLauncher struct{}

// Launch ignores the unit.
func (NoopLauncher) Launch(string, func(ctx context.Context)) {}
