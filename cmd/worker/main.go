package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-screening-backend/config"
	"go-screening-backend/database"
	"go-screening-backend/internal/repository/postgres"
	"go-screening-backend/internal/scheduler"
	"go-screening-backend/internal/usecase"
	"go-screening-backend/internal/vectorindex"
	pkgdatabase "go-screening-backend/pkg/database"
	"go-screening-backend/pkg/logger"
	"go-screening-backend/pkg/redis"
	"go-screening-backend/pkg/singleflight"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting screening consistency worker", "sync_hour", cfg.SyncHour)

	// 3. Setup Database
	dbPool, err := pkgdatabase.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.MigrateUp(context.Background(), dbPool); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 4. Setup Repositories and Vector Index Client
	// The status/locking usecases are constructed by the web application;
	// this worker only owns the reconciliation path.
	resumeRepo := postgres.NewResumeRepository(dbPool)
	indexClient := vectorindex.NewClient(
		cfg.VectorIndexURL,
		cfg.VectorIndexAPIKey,
		time.Duration(cfg.VectorIndexTimeoutSeconds)*time.Second,
	)

	// 5. Setup UseCases
	reconciliationUC := usecase.NewReconciliationUsecase(resumeRepo, indexClient, cfg.SyncWorkers)

	// 6. Setup Single-Flight Guard
	// Redis keeps the guard exclusive across worker instances; without it
	// the in-process guard only covers a single-instance deployment.
	var guard singleflight.Guard = singleflight.NewLocalGuard()
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, falling back to in-process guard", "error", err)
		} else {
			guard = singleflight.NewRedisGuard(
				redis.Client(),
				"screening:reconciliation:running",
				time.Duration(cfg.SyncGuardTTLMinutes)*time.Minute,
			)
			defer redis.Close()
		}
	}

	// 7. Start Scheduler
	sched := scheduler.New(
		reconciliationUC,
		guard,
		cfg.SyncHour,
		time.Duration(cfg.SyncTimeoutMinutes)*time.Minute,
	)
	sched.Start()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down worker...")

	sched.Stop()
	logger.Log.Info("Worker exiting")
}
