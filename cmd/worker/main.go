package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/tcr-trading/backoffice/internal/app"
	"github.com/tcr-trading/backoffice/internal/inventory"
	"github.com/tcr-trading/backoffice/internal/platform/cache"
	"github.com/tcr-trading/backoffice/internal/platform/db"
	"github.com/tcr-trading/backoffice/internal/report"
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
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

	inventoryRepo := inventory.NewRepository(pool)
	inventoryCache := inventory.NewCache(redisClient, 10*time.Minute)
	inventoryService := inventory.NewService(inventoryRepo, inventoryCache, logger)

	company := report.Company{
		Name:    cfg.CompanyName,
		Address: cfg.CompanyAddress,
		Phone:   cfg.CompanyPhone,
		Email:   cfg.CompanyEmail,
	}
	stockGen := report.NewStockListGenerator(company, cfg.FontDir, cfg.BaseURL)
	stockJob := jobs.NewStockReportJob(inventoryService, stockGen, cfg.ExportDir, logger)

	nightlyTask, err := jobs.NewStockReportTask(jobs.StockReportPayload{RequestedAt: time.Now()})
	if err != nil {
		logger.Error("build stock report task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskStockReport, Handler: stockJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 1 * * *", Task: nightlyTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started")
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
