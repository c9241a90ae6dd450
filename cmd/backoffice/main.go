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
	"github.com/joho/godotenv"

	"github.com/tcr-trading/backoffice/internal/app"
	"github.com/tcr-trading/backoffice/internal/files"
	"github.com/tcr-trading/backoffice/internal/inventory"
	"github.com/tcr-trading/backoffice/internal/payments"
	"github.com/tcr-trading/backoffice/internal/platform/cache"
	"github.com/tcr-trading/backoffice/internal/platform/db"
	"github.com/tcr-trading/backoffice/internal/purchases"
	"github.com/tcr-trading/backoffice/internal/report"
	"github.com/tcr-trading/backoffice/internal/stock"
	"github.com/tcr-trading/backoffice/jobs"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// The inventory cache degrades to direct loads without Redis.
		logger.Warn("redis unavailable", slog.Any("error", err))
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	uploads, err := files.NewStore(cfg.UploadDir)
	if err != nil {
		logger.Error("init upload store", slog.Any("error", err))
		os.Exit(1)
	}

	inventoryRepo := inventory.NewRepository(dbpool)
	inventoryCache := inventory.NewCache(redisClient, 10*time.Minute)
	inventoryService := inventory.NewService(inventoryRepo, inventoryCache, logger)
	inventoryHandler := inventory.NewHandler(logger, inventoryService, uploads)

	stockRepo := stock.NewRepository(dbpool)
	stockService := stock.NewService(stockRepo, inventoryService, logger)
	stockHandler := stock.NewHandler(logger, stockService)

	purchasesRepo := purchases.NewRepository(dbpool)
	purchasesService := purchases.NewService(purchasesRepo, uploads, logger)
	purchasesHandler := purchases.NewHandler(logger, purchasesService, uploads)

	paymentsRepo := payments.NewRepository(dbpool)
	paymentsService := payments.NewService(paymentsRepo, logger)
	paymentsHandler := payments.NewHandler(logger, paymentsService)

	company := report.Company{
		Name:    cfg.CompanyName,
		Address: cfg.CompanyAddress,
		Phone:   cfg.CompanyPhone,
		Email:   cfg.CompanyEmail,
	}
	stockGen := report.NewStockListGenerator(company, cfg.FontDir, cfg.BaseURL)
	salesGen := report.NewSalesReportGenerator(company, cfg.FontDir)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	reportHandler := report.NewHandler(logger, inventoryService, paymentsService, stockGen, salesGen, jobsClient)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		InventoryHandler: inventoryHandler,
		StockHandler:     stockHandler,
		PurchasesHandler: purchasesHandler,
		PaymentsHandler:  paymentsHandler,
		ReportHandler:    reportHandler,
		JobsHandler:      jobsHandler,
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
