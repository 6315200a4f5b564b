package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mandic19/Shop/internal/caching"
	"github.com/mandic19/Shop/internal/config"
	"github.com/mandic19/Shop/internal/handlers"
	"github.com/mandic19/Shop/internal/jobs"
	"github.com/mandic19/Shop/internal/logging"
	"github.com/mandic19/Shop/internal/middleware"
	"github.com/mandic19/Shop/internal/repositories"
	"github.com/mandic19/Shop/internal/services"
	"github.com/mandic19/Shop/pkg/database"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.ClosePool(pool)

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cacheSvc.Ping(ctx); err != nil {
		logger.Warn("redis unavailable at startup; cache and rate limiting will degrade", "error", err)
	}

	minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		return err
	}
	if err := minioSvc.EnsureBucketExists(ctx, cfg.Minio.Bucket); err != nil {
		logger.Warn("could not ensure image bucket", "bucket", cfg.Minio.Bucket, "error", err)
	}

	// Create repositories
	productRepo := repositories.NewProductRepo(pool)
	variantRepo := repositories.NewVariantRepo(pool)
	imageRepo := repositories.NewImageRepo(pool)
	variantImageRepo := repositories.NewVariantImageRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)
	uow := repositories.NewUnitOfWork(pool)

	// Create services
	orderSvc := services.NewOrderService(uow, orderRepo, orderItemRepo)
	productSvc := services.NewProductService(productRepo, imageRepo, cacheSvc)
	variantSvc := services.NewVariantService(variantRepo, productRepo, cacheSvc)
	imageSvc := services.NewImageService(imageRepo, minioSvc, cacheSvc, cfg.Minio.Bucket, cfg.Minio.PublicURL)
	variantImageSvc := services.NewVariantImageService(variantImageRepo, variantRepo, imageRepo)

	scheduler, err := jobs.NewScheduler(logger)
	if err != nil {
		return err
	}
	cleanup := jobs.NewImageCleanup(minioSvc, imageRepo, cfg.Minio.Bucket, logger)
	if err := scheduler.Register(jobs.ImageCleanupJobName, cfg.ImageCleanupInterval, cleanup.Task()); err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			logger.Error("failed to stop scheduler", "error", err)
		}
	}()

	e := newServer(logger, routeHandlers{
		orders:        handlers.NewOrderHandlers(orderSvc),
		products:      handlers.NewProductHandlers(productSvc),
		variants:      handlers.NewVariantHandlers(variantSvc),
		images:        handlers.NewImageHandlers(imageSvc),
		variantImages: handlers.NewVariantImageHandlers(variantImageSvc),
		health:        handlers.NewHealthHandlers(pool, cacheSvc, minioSvc, cfg.Minio.Bucket, version),
	}, middleware.RateLimit(cacheSvc, cfg.RateLimitRequests, cfg.RateLimitWindow))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port, "version", version)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
