package observability

import "go.uber.org/fx"

// Module wires metrics instruments and the exposition handler.
var Module = fx.Provide(NewMetrics)
