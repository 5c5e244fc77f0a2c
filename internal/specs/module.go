package specs

import "go.uber.org/fx"

// Module provides the specification resolver to the fx container.
var Module = fx.Provide(NewResolver)
