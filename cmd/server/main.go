package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/hotornot/internal/adapters/handler/http"
	"github.com/vncsmyrnk/hotornot/internal/config"
	"github.com/vncsmyrnk/hotornot/internal/core/services"
	"github.com/vncsmyrnk/hotornot/internal/storage"
)

func main() {
	dotenv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if !dotenv {
		logger.Debug("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancelOpen := context.WithTimeout(ctx, 10*time.Second)
	repo, closeRepo, err := storage.Open(openCtx, cfg)
	cancelOpen()
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer func() {
		if err := closeRepo(context.Background()); err != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
	}()

	carService := services.NewCarService(repo)
	carHandler := http.NewCarHandler(carService, logger)
	handler := http.NewHandler(carHandler, logger, cfg.CORSOrigins)
	server := &stdhttp.Server{Addr: cfg.ServerAddr, Handler: handler}

	go func() {
		logger.Info("server listening", zap.String("address", cfg.ServerAddr), zap.String("driver", cfg.StorageDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
