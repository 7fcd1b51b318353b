package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/abhismart8/resume-builder/internal/config"
	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/metrics"
	"github.com/abhismart8/resume-builder/internal/pdf"
	"github.com/abhismart8/resume-builder/internal/storage"
	"github.com/abhismart8/resume-builder/internal/store"
	"github.com/abhismart8/resume-builder/internal/tasks"
	"github.com/abhismart8/resume-builder/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	logger.Info("database connection ready for worker")

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	logger.Info("storage client ready", slog.String("bucket", cfg.MinIO.Bucket))

	redisClient := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Redis.Addr()},
		Password: cfg.Redis.Password,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues:      map[string]int{"default": 1},
		},
	)

	resumes := store.NewResumeStore(db)
	templates := store.NewTemplateStore(db)
	printer := pdf.NewPrinter()

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypePDFExport, worker.NewPDFTaskHandler(
		resumes, templates, storageClient, printer, worker.NewRedisNotifier(redisClient), logger,
	))
	mux.Handle(tasks.TypeTemplateThumbnail, worker.NewTemplatePreviewHandler(
		templates, storageClient, printer, logger,
	))

	logger.Info("worker service started",
		slog.String("redis_addr", cfg.Redis.Addr()),
		slog.Int("concurrency", cfg.Worker.Concurrency),
	)
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}
