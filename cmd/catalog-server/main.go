package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/stylehub/catalog/internal/config"
	"github.com/stylehub/catalog/internal/http"
	"github.com/stylehub/catalog/internal/log"
	"github.com/stylehub/catalog/internal/repository"
	"github.com/stylehub/catalog/internal/service"
	"github.com/stylehub/catalog/internal/storage/db"
	"github.com/stylehub/catalog/internal/telemetry"
	"github.com/stylehub/catalog/pkg/cmdutil"
	"github.com/stylehub/catalog/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running catalog server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	productRepository := repository.NewProductRepository(dbClient)
	productService := service.NewProductService(dbClient, productRepository, validator.NewDefaultValidator())

	svc := http.New(cfg.HTTP, logger, productService)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}

	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-cmdutil.InterruptChan()

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "http service is stopped")

	return nil
}
