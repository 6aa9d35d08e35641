package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/hotornot/internal/config"
	"github.com/vncsmyrnk/hotornot/internal/core/domain"
	"github.com/vncsmyrnk/hotornot/internal/core/ports"
	"github.com/vncsmyrnk/hotornot/internal/core/services"
	"github.com/vncsmyrnk/hotornot/internal/storage"
)

func main() {
	dotenv := config.LoadDotEnv()

	cfg := config.FromEnv()

	var timeout time.Duration
	flag.StringVar(&cfg.StorageDriver, "driver", cfg.StorageDriver, "Storage driver (mongo, postgres, memory)")
	flag.DurationVar(&timeout, "timeout", time.Minute, "Time allowed for the whole seeding run")
	flag.Parse()

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if !dotenv {
		logger.Debug("no .env file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	err = run(ctx, cfg, storage.Open, logger)
	cancel()
	if err != nil {
		logger.Error("error seeding cars", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

type openFunc func(ctx context.Context, cfg *config.Config) (ports.CarRepository, storage.CloseFunc, error)

// run owns the storage connection so it is released before main decides the
// exit status.
func run(ctx context.Context, cfg *config.Config, open openFunc, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	repo, closeRepo, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeRepo(closeCtx); err != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
	}()

	result, err := services.NewSeedService(repo, domain.Catalog()).Seed(ctx)
	if err != nil {
		return err
	}

	if result.Skipped {
		logger.Info("database already contains cars, skipping seed", zap.Int64("existing", result.Existing))
		return nil
	}

	logger.Info("inserted cars into the database", zap.Int("count", len(result.Inserted)))
	for i, car := range result.Inserted {
		logger.Info("inserted car",
			zap.Int("n", i+1),
			zap.Int("year", car.Year),
			zap.String("make", car.Make),
			zap.String("model", car.Model),
			zap.String("id", car.ID.String()),
		)
	}
	return nil
}
