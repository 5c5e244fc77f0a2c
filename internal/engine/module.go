package engine

import "go.uber.org/fx"

// Module exposes the reference simulator as the Engine implementation.
var Module = fx.Options(
	fx.Provide(NewSimulator),
	fx.Provide(func(s *Simulator) Engine { return s }),
)
