package main

import (
	"context"
	"fmt"

	"item-service/config"
	"item-service/internal/item/repository"
	"item-service/internal/item/repository/postgre"
	itemRedis "item-service/internal/item/repository/redis"
	"item-service/pkg/log"
	"item-service/pkg/postgres"
	pkgRedis "item-service/pkg/redis"
)

// openRepository connects the configured backend and returns the item
// repository with a function that releases the connection.
func openRepository(ctx context.Context, cfg *config.Config, l log.Logger) (repository.Repository, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, postgres.Config{
			DSN:        cfg.Postgres.DSN,
			MaxRetries: cfg.Postgres.MaxRetries,
			RetryDelay: cfg.Postgres.RetryDelay,
			Debug:      cfg.Logger.Level == "debug",
		}, l)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := postgre.CreateSchema(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
			l.Info(ctx, "Items schema ready")
		}
		return postgre.New(db, l), db.Close, nil

	case config.DriverRedis:
		client, err := pkgRedis.Connect(ctx, pkgRedis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		l.Infof(ctx, "Connected to Redis at %s", cfg.Redis.Addr)
		return itemRedis.New(client, cfg.Redis.KeyPrefix, l), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
