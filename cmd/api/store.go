package main

import (
	"context"
	"fmt"

	"github.com/squartrbnb/user-service/internal/api/handler"
	"github.com/squartrbnb/user-service/internal/core/ports"
	"github.com/squartrbnb/user-service/internal/infrastructure/config"
	mongodb "github.com/squartrbnb/user-service/internal/infrastructure/db/mongo"
	"github.com/squartrbnb/user-service/internal/infrastructure/db/postgres"
)

// store bundles the repositories of the configured backend with its
// readiness check and cleanup.
type store struct {
	name  string
	users ports.UserRepository
	roles ports.RoleRepository
	check handler.Check
	close func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config) (*store, error) {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.StoreTimeout,
	})
	if err != nil {
		return nil, err
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }

	users := mongodb.NewUserRepository(db, cfg.StoreTimeout)
	roles := mongodb.NewRoleRepository(db, cfg.StoreTimeout)

	if err := users.EnsureIndexes(ctx); err != nil {
		closeFn()
		return nil, err
	}
	if err := roles.EnsureIndexes(ctx); err != nil {
		closeFn()
		return nil, err
	}
	if err := roles.EnsureRoles(ctx, cfg.SeedRoles); err != nil {
		closeFn()
		return nil, err
	}

	return &store{
		name:  "mongodb",
		users: users,
		roles: roles,
		check: mongodb.Ping(db),
		close: closeFn,
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*store, error) {
	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:      cfg.Postgres.URL,
		MaxConns: cfg.Postgres.MaxConns,
		Timeout:  cfg.StoreTimeout,
	})
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	roles := postgres.NewRoleRepository(pool, cfg.StoreTimeout)
	if err := roles.EnsureRoles(ctx, cfg.SeedRoles); err != nil {
		pool.Close()
		return nil, err
	}

	return &store{
		name:  "postgres",
		users: postgres.NewUserRepository(pool, cfg.StoreTimeout),
		roles: roles,
		check: postgres.Ping(pool),
		close: pool.Close,
	}, nil
}
