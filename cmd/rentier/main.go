package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/rentier-erp/rentier-erp/cmd/rentier/cli"
	"github.com/rentier-erp/rentier-erp/internal/app"
	"github.com/rentier-erp/rentier-erp/internal/billing"
	"github.com/rentier-erp/rentier-erp/internal/masterdata/clients"
	"github.com/rentier-erp/rentier-erp/internal/masterdata/owners"
	"github.com/rentier-erp/rentier-erp/internal/masterdata/units"
	"github.com/rentier-erp/rentier-erp/internal/observability"
	"github.com/rentier-erp/rentier-erp/internal/ownership"
	"github.com/rentier-erp/rentier-erp/internal/payments"
	"github.com/rentier-erp/rentier-erp/internal/platform/db"
	"github.com/rentier-erp/rentier-erp/internal/reports"
	"github.com/rentier-erp/rentier-erp/internal/taxes"
	"github.com/rentier-erp/rentier-erp/internal/tenancy"
	"github.com/rentier-erp/rentier-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 && os.Args[1] == "export" {
		os.Exit(cli.Run(ctx, os.Args[2:]))
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	ownersHandler := owners.NewHandler(logger, owners.NewService(owners.NewRepository(pool)))
	unitsHandler := units.NewHandler(logger, units.NewService(units.NewRepository(pool)))
	clientsHandler := clients.NewHandler(logger, clients.NewService(clients.NewRepository(pool)))
	ownershipHandler := ownership.NewHandler(logger, ownership.NewService(ownership.NewRepository(pool)))
	tenancyHandler := tenancy.NewHandler(logger, tenancy.NewService(tenancy.NewRepository(pool)))

	taxesService := taxes.NewService(taxes.NewRepository(pool), taxes.DefaultConfig())
	taxesHandler := taxes.NewHandler(logger, taxesService)

	reportsService := reports.NewService(logger, reports.NewRepository(pool), taxesService, redisClient, cfg.ReportCacheTTL)
	reportsHandler := reports.NewHandler(logger, reportsService)

	billingHandler := billing.NewHandler(logger, billing.NewService(billing.NewRepository(pool)), reportsService)
	paymentsHandler := payments.NewHandler(logger, payments.NewService(payments.NewRepository(pool)), reportsService)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		OwnersHandler:    ownersHandler,
		UnitsHandler:     unitsHandler,
		ClientsHandler:   clientsHandler,
		OwnershipHandler: ownershipHandler,
		TenancyHandler:   tenancyHandler,
		BillingHandler:   billingHandler,
		PaymentsHandler:  paymentsHandler,
		TaxesHandler:     taxesHandler,
		ReportsHandler:   reportsHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
