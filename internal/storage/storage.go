// Package storage opens the car repository selected by configuration.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/hotornot/internal/adapters/repository/memory"
	mongorepo "github.com/vncsmyrnk/hotornot/internal/adapters/repository/mongo"
	"github.com/vncsmyrnk/hotornot/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/hotornot/internal/config"
	"github.com/vncsmyrnk/hotornot/internal/core/ports"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// CloseFunc releases the connection behind a repository.
type CloseFunc func(ctx context.Context) error

// Open connects to the configured backend and checks that it is reachable.
// The caller owns the connection and must call the returned CloseFunc.
func Open(ctx context.Context, cfg *config.Config) (ports.CarRepository, CloseFunc, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		return OpenMongo(ctx, cfg.MongoURL, cfg.DBName)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.Postgres.ConnString())
	case config.DriverMemory:
		return memory.NewCarRepository(), func(context.Context) error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func OpenMongo(ctx context.Context, uri, dbName string) (ports.CarRepository, CloseFunc, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	closeFn := func(ctx context.Context) error {
		return client.Disconnect(ctx)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = closeFn(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(dbName)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		_ = closeFn(ctx)
		return nil, nil, err
	}

	return mongorepo.NewCarRepository(db), closeFn, nil
}

func OpenPostgres(ctx context.Context, connStr string) (ports.CarRepository, CloseFunc, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	closeFn := func(context.Context) error {
		return db.Close()
	}

	if err := db.PingContext(ctx); err != nil {
		_ = closeFn(ctx)
		return nil, nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return postgres.NewCarRepository(db), closeFn, nil
}
