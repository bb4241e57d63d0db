package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/lamsashop/lamsa/internal"
	"github.com/lamsashop/lamsa/internal/bootstrap"
	"github.com/lamsashop/lamsa/internal/cart"
	"github.com/lamsashop/lamsa/internal/handler/admin"
	"github.com/lamsashop/lamsa/internal/handler/storefront"
	"github.com/lamsashop/lamsa/internal/jobs"
	"github.com/lamsashop/lamsa/internal/middleware"
	"github.com/lamsashop/lamsa/internal/postgres"
	"github.com/lamsashop/lamsa/internal/routes"
	"github.com/lamsashop/lamsa/internal/service"
	"github.com/lamsashop/lamsa/internal/storage"
	"github.com/lamsashop/lamsa/internal/telemetry"
	"github.com/lamsashop/lamsa/internal/worker"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

	// Migrations run through database/sql; the application itself uses
	// the pgx pool.
	logger.Info("running database migrations")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if err := internal.RunMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return fmt.Errorf("migration failed: %w", err)
	}
	sqlDB.Close()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database pool failed: %w", err)
	}
	defer pool.Close()
	logger.Info("database connection established")

	// Stores
	catalogStore := postgres.NewCatalogStore(pool)
	deliveryStore := postgres.NewDeliveryStore(pool)
	orderStore := postgres.NewOrderStore(pool)
	settingsStore := postgres.NewSettingsStore(pool)
	userStore := postgres.NewUserStore(pool)
	jobStore := postgres.NewJobStore(pool)

	if err := bootstrap.EnsureAdmin(ctx, userStore, cfg.Admin, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	files, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}

	var carts cart.Store
	switch cfg.Cart.Backend {
	case "redis":
		redisCarts, err := cart.NewRedisStore(ctx, cfg.Cart.RedisAddr, cfg.Cart.RedisPass, cfg.Cart.RedisDB)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		defer redisCarts.Close()
		carts = redisCarts
		logger.Info("using redis cart backend", "addr", cfg.Cart.RedisAddr)
	default:
		carts = cart.NewMemoryStore()
		logger.Info("using in-memory cart backend")
	}

	// Services
	checkoutService := service.NewCheckoutService(catalogStore, deliveryStore, orderStore)
	orderService := service.NewOrderService(orderStore, files)
	accountService := service.NewAccountService(userStore)

	// Telemetry
	httpMetrics := middleware.NewMetrics("lamsa")
	businessMetrics := telemetry.NewBusinessMetrics("lamsa")

	storefrontHandler := storefront.New(storefront.Config{
		Catalog:  catalogStore,
		Delivery: deliveryStore,
		Settings: settingsStore,
		Carts:    carts,
		Checkout: checkoutService,
		Orders:   orderService,
		Accounts: accountService,
		Metrics:  businessMetrics,
		Logger:   logger,
	})
	adminHandler := admin.New(admin.Config{
		Catalog:  catalogStore,
		Delivery: deliveryStore,
		Settings: settingsStore,
		Orders:   orderService,
		Files:    files,
		Metrics:  businessMetrics,
		Logger:   logger,
	})

	uploadsDir := ""
	if cfg.Storage.Provider == "local" || cfg.Storage.Provider == "" {
		uploadsDir = cfg.Storage.LocalPath
	}

	r := routes.New(routes.Deps{
		Storefront: storefrontHandler,
		Admin:      adminHandler,
		Accounts:   accountService,
		Metrics:    httpMetrics,
		Logger:     logger,
		UploadsDir: uploadsDir,
		Health: func(req *http.Request) error {
			return pool.Ping(req.Context())
		},
	})

	// Background cleanup worker
	if cfg.Worker.Enabled {
		cleaner := jobs.NewCleaner(userStore, orderStore, files, logger)
		w := worker.NewWorker(jobStore, cleaner, businessMetrics, worker.Config{
			Queue:          cfg.Worker.Queue,
			PollInterval:   time.Duration(cfg.Worker.PollSeconds) * time.Second,
			MaxConcurrency: cfg.Worker.MaxConcurrent,
		}, logger)
		go func() {
			if err := w.Start(ctx); err != nil {
				logger.Error("worker stopped", "error", err)
			}
		}()
		go w.Schedule(ctx, time.Hour)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
