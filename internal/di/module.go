package di

import (
	"go.uber.org/fx"

	"github.com/enershare/ewhflex/internal/adapter/dataspace"
	"github.com/enershare/ewhflex/internal/app"
	"github.com/enershare/ewhflex/internal/config"
	"github.com/enershare/ewhflex/internal/engine"
	"github.com/enershare/ewhflex/internal/logger"
	"github.com/enershare/ewhflex/internal/observability"
	"github.com/enershare/ewhflex/internal/server/http/handlers"
	"github.com/enershare/ewhflex/internal/server/http/router"
	"github.com/enershare/ewhflex/internal/specs"
	"github.com/enershare/ewhflex/internal/storage"
	"github.com/enershare/ewhflex/internal/usecase"
	"github.com/enershare/ewhflex/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		storage.Module,
		dataspace.Module,
		specs.Module,
		engine.Module,
		observability.Module,
		usecase.Module,
		fx.Provide(
			func(r *worker.Runner) usecase.Launcher { return r },
			func(f *app.FlexFacade) handlers.FlexFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
