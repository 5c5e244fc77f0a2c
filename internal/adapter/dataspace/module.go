package dataspace

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/enershare/ewhflex/internal/config"
)

// Module exposes dataspace client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.DataspaceAddress, p.Logger)
}
