// Package engine defines the compute step of the optimization pipeline.
// The orchestrator treats it as a black box: datasets and specs in, result
// payload or error out.
package engine

import (
	"context"

	"github.com/enershare/ewhflex/internal/domain/model"
)

// Engine runs an EWH load optimization over the given datasets.
type Engine interface {
	Run(ctx context.Context, user string, period model.Period, measurements model.MeasurementSeries, tariffs model.TariffSchedule, specs *model.EWHSpecs) (*model.OptimizationResult, error)
}
