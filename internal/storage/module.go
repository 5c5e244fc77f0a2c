// Package storage selects the order store backend from configuration:
// redis when REDIS_URI is set, postgres otherwise.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	rd "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/enershare/ewhflex/internal/config"
	"github.com/enershare/ewhflex/internal/domain/repository"
	"github.com/enershare/ewhflex/internal/storage/postgres"
	"github.com/enershare/ewhflex/internal/storage/redis"
)

// Module wires the configured OrderRepository implementation.
var Module = fx.Provide(newOrderRepository)

type storageParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newOrderRepository(p storageParams) (repository.OrderRepository, error) {
	if p.Config.RedisURI != "" {
		opts, err := rd.ParseURL(p.Config.RedisURI)
		if err != nil {
			return nil, fmt.Errorf("parse redis uri: %w", err)
		}
		store := redis.New(rd.NewClient(opts), p.Config.OrderRetention, p.Logger)
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error { return store.Close() },
		})
		return store, nil
	}

	store, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			store.Close()
			return nil
		},
	})
	return store, nil
}
